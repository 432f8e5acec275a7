package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"alcyxob/fitness-center/internal/storage"
)

// AdminHandler serves the admin console. Every route runs behind
// AdminSessionMiddleware, so the session's console is in the context.
type AdminHandler struct {
	users    service.ListReader[domain.User]
	uploader *storage.ImageUploader // nil when object storage is not configured
}

func NewAdminHandler(users service.ListReader[domain.User], uploader *storage.ImageUploader) *AdminHandler {
	return &AdminHandler{users: users, uploader: uploader}
}

// workflowOf picks one screen's workflow from the session console.
type workflowOf[T any] func(*service.AdminConsole) *service.Workflow[T]

func trainersScreen(c *service.AdminConsole) *service.Workflow[domain.Trainer] { return c.Trainers }

func schedulesScreen(c *service.AdminConsole) *service.Workflow[domain.ClassSchedule] {
	return c.Schedules
}

func mealPlansScreen(c *service.AdminConsole) *service.Workflow[domain.MealPlan] { return c.MealPlans }

func membershipsScreen(c *service.AdminConsole) *service.Workflow[domain.MembershipPlan] {
	return c.Memberships
}

func consoleWorkflow[T any](c *gin.Context, pick workflowOf[T]) (*service.Workflow[T], bool) {
	console, err := getConsoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return pick(console), true
}

// adminList loads the screen's list. On failure the previous list is kept
// and returned alongside the error.
func adminList[T any](pick workflowOf[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := consoleWorkflow(c, pick)
		if !ok {
			return
		}
		items, err := w.Load(c.Request.Context())
		if err != nil {
			c.JSON(statusFor(err), gin.H{
				"error": fmt.Sprintf("Failed to load %s: %v", w.Entity(), err),
				"data":  w.Items(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

// adminSave creates the record, or updates it when the route has an :id.
func adminSave[T any, F service.Form[T]](pick workflowOf[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := consoleWorkflow(c, pick)
		if !ok {
			return
		}
		var form F
		if err := c.ShouldBindJSON(&form); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
			return
		}

		id := c.Param("id")
		rec, err := w.Submit(c.Request.Context(), id, form)
		if err != nil {
			if errors.Is(err, service.ErrRefreshFailed) {
				c.JSON(http.StatusOK, gin.H{"data": rec, "warning": err.Error()})
				return
			}
			respondError(c, "save "+w.Entity(), err)
			return
		}

		code := http.StatusOK
		if id == "" {
			code = http.StatusCreated
		}
		c.JSON(code, gin.H{"data": rec, "items": w.Items()})
	}
}

// adminDelete requires ?confirm=true.
func adminDelete[T any](pick workflowOf[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := consoleWorkflow(c, pick)
		if !ok {
			return
		}
		err := w.Delete(c.Request.Context(), c.Param("id"), c.Query("confirm") == "true")
		if err != nil {
			if errors.Is(err, service.ErrRefreshFailed) {
				c.JSON(http.StatusOK, gin.H{"warning": err.Error()})
				return
			}
			respondError(c, "delete "+w.Entity(), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": w.Items()})
	}
}

// ListUsers godoc
// @Summary List accounts
// @Tags Admin
// @Produce json
// @Success 200 {object} gin.H "{data: [UserResponse]}"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, "list users", err)
		return
	}
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type UploadRequest struct {
	Folder      string `json:"folder" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// CreateUpload godoc
// @Summary Presign an image upload
// @Description Returns a URL to PUT the image to and the address to store in image_url.
// @Tags Admin
// @Accept json
// @Produce json
// @Param upload body UploadRequest true "Folder (trainers | meal-plans) and content type"
// @Success 201 {object} storage.ImageUpload
// @Failure 400 {object} gin.H "Unsupported folder or content type"
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /admin/uploads [post]
func (h *AdminHandler) CreateUpload(c *gin.Context) {
	if h.uploader == nil {
		abortWithError(c, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	up, err := h.uploader.PresignImage(c.Request.Context(), req.Folder, req.ContentType)
	if err != nil {
		respondError(c, "create an upload", err)
		return
	}
	c.JSON(http.StatusCreated, up)
}

// DeleteUpload removes an image that was uploaded but never saved.
// The object key is the wildcard path, e.g. /admin/uploads/trainers/<uuid>.jpg.
func (h *AdminHandler) DeleteUpload(c *gin.Context) {
	if h.uploader == nil {
		abortWithError(c, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}
	key := c.Param("key")
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	if err := h.uploader.Discard(c.Request.Context(), key); err != nil {
		respondError(c, "delete the upload", err)
		return
	}
	c.Status(http.StatusNoContent)
}
