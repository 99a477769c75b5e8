package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/api/middleware"
	"github.com/ESPSA/El-Wataneya/internal/handlers"
)

func SetupAuthRoutes(e *echo.Echo, db *gorm.DB) {
	authHandler := handlers.NewAuthHandler(db)

	auth := e.Group("/api/auth")

	// Public routes (no auth required)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// Protected auth routes (require authentication)
	authMiddleware := middleware.NewAuthMiddleware(db)
	auth.GET("/me", authHandler.GetMe, authMiddleware.Middleware())

	// Account self-service, owner only
	users := e.Group("/api/users", authMiddleware.Middleware())
	users.PUT("/:id/avatar", authHandler.UpdateAvatar, middleware.RequireOwner("id"))
}
