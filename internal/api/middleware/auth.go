package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/utils"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

var log = logger.New("auth_middleware")

// AuthMiddleware verifies bearer tokens and attaches request-scoped
// identity to the echo context. There is no ambient session state: every
// request carries its own verified subject.
type AuthMiddleware struct {
	db *gorm.DB
}

func NewAuthMiddleware(db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{db: db}
}

func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := utils.ParseAccessToken(tokenParts[1])
			if err != nil {
				log.Warn("Rejected access token: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
			}

			// The token is only a claim; the account itself must still
			// exist. Permissions are read from this fresh row, never from
			// the token snapshot.
			user, err := models.GetUserByID(m.db, claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}

			c.Set("userID", user.ID)
			c.Set("userType", user.Type)
			c.Set("user", user)
			c.Set("capabilities", ComputeCapabilities(user))

			return next(c)
		}
	}
}

// RequireType restricts a route group to the given account types.
func RequireType(types ...models.UserType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t := GetUserType(c)
			for _, allowed := range types {
				if t == allowed {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
		}
	}
}

// GetUserID Helper functions to get values from context
func GetUserID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}

func GetUserType(c echo.Context) models.UserType {
	if t, ok := c.Get("userType").(models.UserType); ok {
		return t
	}
	return ""
}

func GetUser(c echo.Context) *models.User {
	if u, ok := c.Get("user").(*models.User); ok {
		return u
	}
	return nil
}

func GetCapabilities(c echo.Context) CapabilitySet {
	if caps, ok := c.Get("capabilities").(CapabilitySet); ok {
		return caps
	}
	return nil
}
