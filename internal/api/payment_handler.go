package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-center/internal/service"
)

// PaymentHandler serves the mock checkout and the membership history.
type PaymentHandler struct {
	purchases service.PurchaseService
}

func NewPaymentHandler(purchases service.PurchaseService) *PaymentHandler {
	return &PaymentHandler{purchases: purchases}
}

// GetQuote godoc
// @Summary Price a membership plan
// @Description Unknown plan ids are priced as the basic plan. Currency defaults to USD.
// @Tags Payment
// @Produce json
// @Param plan query string false "Plan id"
// @Param currency query string false "INR | USD"
// @Success 200 {object} service.Quote
// @Failure 400 {object} gin.H "Unsupported currency"
// @Router /payment/quote [get]
func (h *PaymentHandler) GetQuote(c *gin.Context) {
	quote, err := h.purchases.Quote(c.Request.Context(), c.Query("plan"), c.Query("currency"))
	if err != nil {
		respondError(c, "price the plan", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Pay godoc
// @Summary Buy a membership
// @Description Validates the mock card form and records an active purchase.
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body service.PaymentForm true "Checkout form"
// @Success 201 {object} domain.MembershipPurchase
// @Failure 400 {object} gin.H "Invalid card details"
// @Failure 500 {object} gin.H "Purchase could not be recorded"
// @Router /payment [post]
func (h *PaymentHandler) Pay(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	var form service.PaymentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	purchase, err := h.purchases.Purchase(c.Request.Context(), userID, form)
	if err != nil {
		respondError(c, "record the purchase", err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// MyMemberships returns the caller's current membership and purchase history.
func (h *PaymentHandler) MyMemberships(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	history, err := h.purchases.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "load memberships", err)
		return
	}
	c.JSON(http.StatusOK, history)
}
