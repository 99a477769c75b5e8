package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ESPSA/El-Wataneya/docs/swagger"

	"github.com/ESPSA/El-Wataneya/internal/api/controllers"
	"github.com/ESPSA/El-Wataneya/internal/api/middleware"
	"github.com/ESPSA/El-Wataneya/internal/handlers"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/routes"
	"github.com/ESPSA/El-Wataneya/internal/services"
	"github.com/ESPSA/El-Wataneya/internal/tasks/rate"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "El-Wataneya API")
	})
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Services
	offerService := services.NewOfferService(s.db)
	productService := services.NewProductService(s.db, offerService)
	projectService := services.NewProjectService(s.db)
	articleService := services.NewArticleService(s.db)

	// Handlers
	productHandler := handlers.NewProductHandler(productService)
	projectHandler := handlers.NewProjectHandler(projectService)
	articleHandler := handlers.NewArticleHandler(articleService)
	offerHandler := handlers.NewOfferHandler(offerService)
	artisanHandler := handlers.NewArtisanHandler(s.db, projectService)
	adminHandler := handlers.NewAdminHandler(s.db)
	homeHandler := handlers.NewHomeHandler(productService, projectService, articleService, offerService)

	var contactLimiter *rate.Limiter
	if s.taskClient != nil {
		// Three submissions per IP per hour.
		contactLimiter = rate.NewLimiter(s.taskClient.Redis(), "contact", rate.Limit{
			Window: time.Hour,
			Max:    3,
		})
	}
	contactHandler := handlers.NewContactHandler(s.db, s.taskClient, contactLimiter)

	routes.SetupAuthRoutes(s.echo, s.db)

	auth := middleware.NewAuthMiddleware(s.db)

	// Public surface
	pub := s.echo.Group("/api")
	pub.GET("/home", homeHandler.Get)
	pub.GET("/products", productHandler.ListPublic)
	pub.GET("/products/:id", productHandler.GetPublic)
	pub.GET("/projects", projectHandler.ListPublic)
	pub.GET("/projects/:id", projectHandler.GetPublic)
	pub.GET("/articles", articleHandler.ListPublic)
	pub.GET("/articles/:id", articleHandler.GetPublic)
	pub.GET("/artisans", artisanHandler.ListPublic)
	pub.GET("/artisans/:id", artisanHandler.GetPublic)
	pub.GET("/offers", offerHandler.ListPublic)
	pub.POST("/contact", contactHandler.Submit)

	// Artisan surface: ownership-scoped portfolio management
	artisan := s.echo.Group("/api/artisan")
	artisan.Use(auth.Middleware())
	artisan.Use(middleware.RequireType(models.UserTypeArtisan))
	artisan.GET("/projects", projectHandler.ListOwn)
	artisan.GET("/projects/:id", projectHandler.GetOwn)
	artisan.POST("/projects", projectHandler.Submit)
	artisan.PUT("/projects/:id", projectHandler.UpdateOwn)
	artisan.PATCH("/projects/:id/active", projectHandler.SetActive)
	artisan.DELETE("/projects/:id", projectHandler.DeleteOwn)
	artisan.PUT("/profile", artisanHandler.UpdateProfile)

	// Admin surface: every group is gated on its own capability
	admin := s.echo.Group("/api/admin")
	admin.Use(auth.Middleware())
	admin.Use(middleware.RequireType(models.UserTypeAdmin))

	adminProducts := admin.Group("/products", middleware.RequireCapability(middleware.CapManageProducts))
	adminProducts.GET("", productHandler.ListAdmin)
	adminProducts.GET("/:id", productHandler.GetAdmin)
	adminProducts.POST("", productHandler.Create)
	adminProducts.PUT("/:id", productHandler.Update)
	adminProducts.PATCH("/:id/status", productHandler.SetStatus)
	adminProducts.DELETE("/:id", productHandler.Delete)

	adminProjects := admin.Group("/projects", middleware.RequireCapability(middleware.CapManageProjects))
	adminProjects.GET("", projectHandler.ListAdmin)
	adminProjects.GET("/:id", projectHandler.GetAdmin)
	adminProjects.POST("", projectHandler.CreateAdmin)
	adminProjects.PUT("/:id", projectHandler.UpdateAdmin)
	adminProjects.PATCH("/:id/status", projectHandler.SetStatus)
	adminProjects.DELETE("/:id", projectHandler.DeleteAdmin)

	adminArticles := admin.Group("/articles", middleware.RequireCapability(middleware.CapManageArticles))
	adminArticles.GET("", articleHandler.ListAdmin)
	adminArticles.POST("", articleHandler.Create)
	adminArticles.PUT("/:id", articleHandler.Update)
	adminArticles.DELETE("/:id", articleHandler.Delete)

	adminOffers := admin.Group("/offers", middleware.RequireCapability(middleware.CapManageOffers))
	adminOffers.GET("", offerHandler.ListAdmin)
	adminOffers.POST("", offerHandler.Create)
	adminOffers.PUT("/:id", offerHandler.Update)
	adminOffers.DELETE("/:id", offerHandler.Delete)

	adminUsers := admin.Group("/users", middleware.RequireCapability(middleware.CapManageUsers))
	adminUsers.GET("", adminHandler.ListUsers)
	adminUsers.DELETE("/:id", adminHandler.DeleteUser)

	// Admin roster management is reserved for the primary admin.
	adminAdmins := admin.Group("/admins", middleware.RequirePrimaryAdmin(s.db))
	adminAdmins.GET("", adminHandler.ListAdmins)
	adminAdmins.POST("", adminHandler.CreateAdmin)
	adminAdmins.PUT("/:id", adminHandler.UpdateAdmin)
	adminAdmins.DELETE("/:id", adminHandler.DeleteAdmin)

	// Contact inbox: generic read/delete, newest first by default
	contactController := controllers.NewBaseController(services.NewBaseService(s.db, models.ContactMessage{}))
	adminMessages := admin.Group("/messages", middleware.RequireCapability(middleware.CapManageUsers))
	adminMessages.GET("", contactController.List)
	adminMessages.GET("/:id", contactController.Get)
	adminMessages.DELETE("/:id", contactController.Delete)

	routes.SetupUploadRoutes(s.echo, s.db, auth)
}
