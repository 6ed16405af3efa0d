package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tintuc/newsapi/internal/middleware"
	"github.com/tintuc/newsapi/internal/models"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, h *Handlers) {
	authLimiter := middleware.NewRateLimiter(h.cfg.AuthRateWindow, h.cfg.AuthRateMax)

	// API group with versioning
	v1 := app.Group("/api/v1")

	// Health check endpoint
	v1.Get("/health", h.HealthCheck)

	// News endpoints
	news := v1.Group("/news")
	{
		news.Get("/", h.GetNews)
		news.Get("/home-page", h.GetHomepageNews)
		news.Get("/:id", h.GetDetailNews)
		news.Get("/:id/related", h.GetRelatedNews)
		news.Post("/upload",
			h.auth.VerifyJWT(),
			middleware.RequireRole(models.RoleEditor),
			middleware.VerifyCSRF(),
			h.UploadNews,
		)
	}

	// Auth endpoints
	auth := v1.Group("/auth")
	{
		auth.Post("/register", authLimiter.Handler(), h.Register)
		auth.Post("/", authLimiter.Handler(), h.Login)
		auth.Post("/logout", h.auth.VerifyJWT(), middleware.VerifyCSRF(), h.Logout)
		auth.Get("/heartbeat", h.auth.VerifyJWT(), h.Heartbeat)
		auth.Get("/csrf-token", h.CSRFToken)
	}

	// User management endpoints
	users := v1.Group("/users", h.auth.VerifyJWT())
	{
		users.Get("/", middleware.RequireRole(models.RoleAdmin), h.GetAllUsers)
		users.Get("/:id", middleware.RequireRole(models.RoleAdmin), h.GetUserByID)
		users.Put("/:id", middleware.RequireRole(models.RoleAdmin), middleware.VerifyCSRF(), h.UpdateUser)
		users.Delete("/:id", middleware.RequireRole(models.RoleAdmin), middleware.VerifyCSRF(), h.DeleteUser)
		users.Put("/:id/change-password", middleware.VerifyCSRF(), h.ChangePassword)
	}

	// Category endpoints
	categories := v1.Group("/categories")
	{
		categories.Get("/", h.GetCategories)
		categories.Post("/",
			h.auth.VerifyJWT(),
			middleware.RequireRole(models.RoleEditor),
			middleware.VerifyCSRF(),
			h.CreateCategory,
		)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Endpoint not found",
		})
	})
}
