package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"alcyxob/fitness-center/internal/storage"
)

// Services are the dependencies of the HTTP surface. Exercises and Uploader
// may be nil when the document store or object storage is disabled.
type Services struct {
	Auth      service.AuthService
	Catalog   service.CatalogService
	Purchases service.PurchaseService
	Exercises service.ExerciseService
	Sessions  *service.AdminSessions
	Users     service.ListReader[domain.User]
	Uploader  *storage.ImageUploader
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	catalogHandler := NewCatalogHandler(svc.Catalog)
	proHandler := NewProHandler(svc.Catalog)
	paymentHandler := NewPaymentHandler(svc.Purchases)
	exerciseHandler := NewExerciseHandler(svc.Exercises)
	adminHandler := NewAdminHandler(svc.Users, svc.Uploader)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Read/query endpoint with server-side source fallback
	router.GET("/api/data", catalogHandler.GetData)

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		apiV1.GET("/trainers", catalogHandler.ListTrainers)
		apiV1.GET("/memberships", catalogHandler.ListMemberships)
		apiV1.GET("/meal-plans", catalogHandler.ListMealPlans)
		apiV1.GET("/schedules", catalogHandler.ListSchedules)

		proGroup := apiV1.Group("/pro")
		{
			proGroup.POST("/bmi", proHandler.ComputeBMI)
			proGroup.GET("/timetable", proHandler.Timetable)
			proGroup.GET("/exercise-options", exerciseHandler.ListOptions)
		}

		apiV1.GET("/payment/quote", paymentHandler.GetQuote)
		apiV1.POST("/admin/login", authHandler.AdminLogin)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.GET("/me/memberships", paymentHandler.MyMemberships)
		protected.POST("/payment", paymentHandler.Pay)

		// --- Exercise Logger ---
		exerciseGroup := protected.Group("/pro/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.LogExercise)
			exerciseGroup.GET("", exerciseHandler.GetHistory)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteEntry)
			exerciseGroup.DELETE("/workouts/:date", exerciseHandler.DeleteWorkout)
		}

		// --- Admin Console ---
		// Requires the admin role AND an open admin session.
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin), AdminSessionMiddleware(svc.Sessions))
		{
			adminGroup.POST("/logout", authHandler.AdminLogout)
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.POST("/uploads", adminHandler.CreateUpload)
			adminGroup.DELETE("/uploads/*key", adminHandler.DeleteUpload)

			trainers := adminGroup.Group("/trainers")
			trainers.GET("", adminList[domain.Trainer](trainersScreen))
			trainers.POST("", adminSave[domain.Trainer, service.TrainerForm](trainersScreen))
			trainers.PUT("/:id", adminSave[domain.Trainer, service.TrainerForm](trainersScreen))
			trainers.DELETE("/:id", adminDelete[domain.Trainer](trainersScreen))

			schedules := adminGroup.Group("/schedules")
			schedules.GET("", adminList[domain.ClassSchedule](schedulesScreen))
			schedules.POST("", adminSave[domain.ClassSchedule, service.ScheduleForm](schedulesScreen))
			schedules.PUT("/:id", adminSave[domain.ClassSchedule, service.ScheduleForm](schedulesScreen))
			schedules.DELETE("/:id", adminDelete[domain.ClassSchedule](schedulesScreen))

			mealPlans := adminGroup.Group("/meal-plans")
			mealPlans.GET("", adminList[domain.MealPlan](mealPlansScreen))
			mealPlans.POST("", adminSave[domain.MealPlan, service.MealPlanForm](mealPlansScreen))
			mealPlans.PUT("/:id", adminSave[domain.MealPlan, service.MealPlanForm](mealPlansScreen))
			mealPlans.DELETE("/:id", adminDelete[domain.MealPlan](mealPlansScreen))

			memberships := adminGroup.Group("/memberships")
			memberships.GET("", adminList[domain.MembershipPlan](membershipsScreen))
			memberships.POST("", adminSave[domain.MembershipPlan, service.MembershipForm](membershipsScreen))
			memberships.PUT("/:id", adminSave[domain.MembershipPlan, service.MembershipForm](membershipsScreen))
			memberships.DELETE("/:id", adminDelete[domain.MembershipPlan](membershipsScreen))
		}
	}
}
