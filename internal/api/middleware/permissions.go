package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

// Capability names an action class the caller is allowed to perform. The
// set is computed once at the authentication boundary from the fresh user
// row, so handlers gate on capabilities instead of re-deriving role checks.
type Capability string

const (
	CapManageProducts Capability = "manage:products"
	CapManageProjects Capability = "manage:projects"
	CapManageUsers    Capability = "manage:users"
	CapManageAdmins   Capability = "manage:admins"
	CapManageArticles Capability = "manage:articles"
	CapManageOffers   Capability = "manage:offers"
)

type CapabilitySet map[Capability]bool

func (s CapabilitySet) Has(cap Capability) bool {
	return s[cap]
}

// ComputeCapabilities maps an account to its capability set. Non-admin
// accounts hold no management capabilities; their allowed actions are
// ownership-scoped and checked against the resource's owner id.
func ComputeCapabilities(u *models.User) CapabilitySet {
	caps := CapabilitySet{}
	if u == nil || !u.IsAdmin() {
		return caps
	}
	if u.Permissions.CanManageProducts {
		caps[CapManageProducts] = true
		// Offers discount products, so they ride on the products grant.
		caps[CapManageOffers] = true
	}
	if u.Permissions.CanManageProjects {
		caps[CapManageProjects] = true
	}
	if u.Permissions.CanManageUsers {
		caps[CapManageUsers] = true
	}
	if u.Permissions.CanManageAdmins {
		caps[CapManageAdmins] = true
	}
	if u.Permissions.CanManageArticles {
		caps[CapManageArticles] = true
	}
	return caps
}

// RequireCapability rejects callers whose capability set lacks the grant.
func RequireCapability(cap Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !GetCapabilities(c).Has(cap) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}

// RequirePrimaryAdmin guards admin-management routes. The is_primary flag
// is re-read from storage rather than trusted from the request context,
// since it can be revoked after token issuance.
func RequirePrimaryAdmin(db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := models.GetUserByID(db, GetUserID(c))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}
			if !user.IsAdmin() || !user.IsPrimary {
				return echo.NewHTTPError(http.StatusForbidden, "only the primary admin may manage admin accounts")
			}
			return next(c)
		}
	}
}

// RequireOwner compares the authenticated subject with a path parameter
// owner id. This is an identity equality check, nothing more.
func RequireOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Param(param) != GetUserID(c) {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
