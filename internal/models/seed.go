package models

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/config"
	console "github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

var log = console.New("SEEDER")

// FullAdminPermissions is the permission set held by the primary admin.
var FullAdminPermissions = AdminPermissions{
	CanManageProducts: true,
	CanManageProjects: true,
	CanManageUsers:    true,
	CanManageAdmins:   true,
	CanManageArticles: true,
}

// EnsurePrimaryAdmin creates the primary admin account from the environment
// on first start. Exactly one account may carry is_primary; if one already
// exists this is a no-op, and any stray extra primary flags are cleared.
func EnsurePrimaryAdmin(db *gorm.DB, cfg *config.Config) error {
	var primary User
	err := db.Where("type = ? AND is_primary = true AND is_deleted = false", UserTypeAdmin).
		Order("created_at asc").First(&primary).Error

	if err == nil {
		// Enforce the single-primary invariant in case a row was flipped
		// out-of-band.
		if err := db.Model(&User{}).
			Where("is_primary = true AND id <> ?", primary.ID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return fmt.Errorf("no primary admin exists and PRIMARY_ADMIN_EMAIL/PRIMARY_ADMIN_PASSWORD are not set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash primary admin password: %w", err)
	}

	admin := User{
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		PasswordHash: string(hash),
		Type:         UserTypeAdmin,
		Permissions:  FullAdminPermissions,
		IsPrimary:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create primary admin: %w", err)
	}

	log.Success("Created primary admin %s", admin.Email)
	return nil
}
