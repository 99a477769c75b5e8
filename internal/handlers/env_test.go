package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ESPSA/El-Wataneya/internal/api/middleware"
	"github.com/ESPSA/El-Wataneya/internal/api/validator"
	"github.com/ESPSA/El-Wataneya/internal/config"
	appdb "github.com/ESPSA/El-Wataneya/internal/db"
	"github.com/ESPSA/El-Wataneya/internal/handlers"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/services"
	"github.com/ESPSA/El-Wataneya/internal/utils"
)

type testEnv struct {
	echo *echo.Echo
	db   *gorm.DB
}

// newTestEnv builds the full route surface against an in-memory database.
// Redis-backed pieces (contact limiter, task queue) are left nil; the
// handlers treat them as optional.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.LoadTestConfig()
	t.Setenv("JWT_SECRET", cfg.JWT.Secret)
	t.Setenv("REFRESH_SECRET", cfg.JWT.RefreshSecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, appdb.Migrate(db))

	e := echo.New()
	e.Validator = validator.NewValidator()

	offerService := services.NewOfferService(db)
	productService := services.NewProductService(db, offerService)
	projectService := services.NewProjectService(db)
	articleService := services.NewArticleService(db)

	productHandler := handlers.NewProductHandler(productService)
	projectHandler := handlers.NewProjectHandler(projectService)
	articleHandler := handlers.NewArticleHandler(articleService)
	offerHandler := handlers.NewOfferHandler(offerService)
	artisanHandler := handlers.NewArtisanHandler(db, projectService)
	adminHandler := handlers.NewAdminHandler(db)
	authHandler := handlers.NewAuthHandler(db)
	contactHandler := handlers.NewContactHandler(db, nil, nil)
	homeHandler := handlers.NewHomeHandler(productService, projectService, articleService, offerService)

	auth := middleware.NewAuthMiddleware(db)

	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.GetMe, auth.Middleware())

	users := e.Group("/api/users", auth.Middleware())
	users.PUT("/:id/avatar", authHandler.UpdateAvatar, middleware.RequireOwner("id"))

	pub := e.Group("/api")
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

	artisan := e.Group("/api/artisan")
	artisan.Use(auth.Middleware())
	artisan.Use(middleware.RequireType(models.UserTypeArtisan))
	artisan.GET("/projects", projectHandler.ListOwn)
	artisan.GET("/projects/:id", projectHandler.GetOwn)
	artisan.POST("/projects", projectHandler.Submit)
	artisan.PUT("/projects/:id", projectHandler.UpdateOwn)
	artisan.PATCH("/projects/:id/active", projectHandler.SetActive)
	artisan.DELETE("/projects/:id", projectHandler.DeleteOwn)
	artisan.PUT("/profile", artisanHandler.UpdateProfile)

	admin := e.Group("/api/admin")
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

	adminAdmins := admin.Group("/admins", middleware.RequirePrimaryAdmin(db))
	adminAdmins.GET("", adminHandler.ListAdmins)
	adminAdmins.POST("", adminHandler.CreateAdmin)
	adminAdmins.PUT("/:id", adminHandler.UpdateAdmin)
	adminAdmins.DELETE("/:id", adminHandler.DeleteAdmin)

	return &testEnv{echo: e, db: db}
}

func (env *testEnv) createUser(t *testing.T, name, email string, userType models.UserType) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Type:         userType,
	}
	require.NoError(t, env.db.Create(user).Error)

	if userType == models.UserTypeArtisan {
		require.NoError(t, env.db.Create(&models.ArtisanProfile{UserID: user.ID}).Error)
	}
	return user
}

func (env *testEnv) createAdmin(t *testing.T, email string, primary bool, perms models.AdminPermissions) *models.User {
	t.Helper()
	admin := env.createUser(t, "Admin "+email, email, models.UserTypeAdmin)
	require.NoError(t, env.db.Model(admin).Updates(map[string]interface{}{
		"is_primary":          primary,
		"can_manage_products": perms.CanManageProducts,
		"can_manage_projects": perms.CanManageProjects,
		"can_manage_users":    perms.CanManageUsers,
		"can_manage_admins":   perms.CanManageAdmins,
		"can_manage_articles": perms.CanManageArticles,
	}).Error)
	admin.IsPrimary = primary
	admin.Permissions = perms
	return admin
}

func (env *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(user)
	require.NoError(t, err)
	return token
}

// request performs an HTTP round trip through the full middleware stack.
func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func floatPtr(f float64) *float64 { return &f }

func dayRange(from, to int) (time.Time, time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, from), now.AddDate(0, 0, to)
}
