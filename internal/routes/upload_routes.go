package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/api/middleware"
	"github.com/ESPSA/El-Wataneya/internal/handlers"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// SetupUploadRoutes wires image uploads for artisans and admins. Shoppers
// have nothing to upload.
func SetupUploadRoutes(e *echo.Echo, db *gorm.DB, auth *middleware.AuthMiddleware) {
	log := logger.New("upload_routes")

	uploadHandler := handlers.NewUploadHandler(db)

	uploads := e.Group("/api/uploads")
	uploads.Use(auth.Middleware())
	uploads.Use(middleware.RequireType(models.UserTypeArtisan, models.UserTypeAdmin))

	uploads.POST("", uploadHandler.UploadFile)
	uploads.GET("", uploadHandler.ListOwn)

	log.Success("Upload routes initialized successfully")
}
