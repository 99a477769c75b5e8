package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// AdminHandler covers account administration: the customer/artisan account
// registry and the admin roster itself.
type AdminHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db, log: logger.New("AdminHandler")}
}

type CreateAdminRequest struct {
	Name        string                  `json:"name" validate:"required,min=2"`
	Email       string                  `json:"email" validate:"required,email"`
	Password    string                  `json:"password" validate:"required,min=8"`
	Permissions models.AdminPermissions `json:"permissions"`
}

type UpdateAdminRequest struct {
	Name        string                   `json:"name"`
	Permissions *models.AdminPermissions `json:"permissions"`
}

// ListUsers returns shopper and artisan accounts.
// @Summary List accounts
// @Tags admin
// @Produce json
// @Param type query string false "Account type filter (user|artisan)"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, limit := pagination(c)

	var users []models.User
	var total int64

	query := h.db.Model(&models.User{}).
		Where("type <> ? AND is_deleted = ?", models.UserTypeAdmin, false)
	if t := c.QueryParam("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	if err := query.Count(&total).Error; err != nil {
		return serviceError(c, err)
	}

	err := query.Preload("Profile").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error
	if err != nil {
		return serviceError(c, err)
	}

	return listResponse(c, users, total, page, limit)
}

// DeleteUser soft-deletes a shopper or artisan account and revokes its
// refresh tokens in the same transaction.
// @Summary Delete an account
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Target is an admin"
// @Router /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	user, err := models.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	if user.IsAdmin() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Admins are managed separately"})
	}

	if err := h.deleteAccount(user); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListAdmins returns the admin roster with permission sets.
// @Summary List admins
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/admins [get]
func (h *AdminHandler) ListAdmins(c echo.Context) error {
	var admins []models.User
	err := h.db.Where("type = ? AND is_deleted = ?", models.UserTypeAdmin, false).
		Order("is_primary DESC, created_at ASC").
		Find(&admins).Error
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": admins, "total": len(admins)})
}

// CreateAdmin adds a secondary admin with an explicit permission set. New
// admins are never primary; the primary flag is set only at bootstrap.
// @Summary Create an admin
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateAdminRequest true "Admin details"
// @Success 201 {object} models.User
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /api/admin/admins [post]
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	var req CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	taken, err := models.EmailTaken(h.db, req.Email)
	if err != nil {
		return serviceError(c, err)
	}
	if taken {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	// Admin management stays with the primary account alone.
	req.Permissions.CanManageAdmins = false

	admin := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Type:         models.UserTypeAdmin,
		Permissions:  req.Permissions,
		IsPrimary:    false,
	}

	if err := h.db.Create(&admin).Error; err != nil {
		return serviceError(c, err)
	}

	h.log.Info("Admin account created: %s", admin.Email)
	return c.JSON(http.StatusCreated, admin)
}

// UpdateAdmin edits a secondary admin's name or permission set. The
// primary admin's record is immutable through this route.
// @Summary Update an admin
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Param request body UpdateAdminRequest true "Changes"
// @Success 200 {object} models.User
// @Failure 409 {object} map[string]string "Target is the primary admin"
// @Router /api/admin/admins/{id} [put]
func (h *AdminHandler) UpdateAdmin(c echo.Context) error {
	admin, err := models.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	if !admin.IsAdmin() {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	if admin.IsPrimary {
		return c.JSON(http.StatusConflict, map[string]string{"error": "The primary admin cannot be modified"})
	}

	var req UpdateAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	changes := map[string]interface{}{}
	if req.Name != "" {
		changes["name"] = req.Name
	}
	if req.Permissions != nil {
		changes["can_manage_products"] = req.Permissions.CanManageProducts
		changes["can_manage_projects"] = req.Permissions.CanManageProjects
		changes["can_manage_users"] = req.Permissions.CanManageUsers
		changes["can_manage_articles"] = req.Permissions.CanManageArticles
		// Admin management stays with the primary account alone.
		changes["can_manage_admins"] = false
	}

	if len(changes) > 0 {
		if err := h.db.Model(&models.User{}).Where("id = ?", admin.ID).Updates(changes).Error; err != nil {
			return serviceError(c, err)
		}
	}

	updated, err := models.GetUserByID(h.db, admin.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteAdmin removes a secondary admin. The primary admin can never be
// deleted, itself included.
// @Summary Delete an admin
// @Tags admin
// @Produce json
// @Param id path string true "Admin ID"
// @Success 200 {object} map[string]bool
// @Failure 409 {object} map[string]string "Target is the primary admin"
// @Router /api/admin/admins/{id} [delete]
func (h *AdminHandler) DeleteAdmin(c echo.Context) error {
	admin, err := models.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	if !admin.IsAdmin() {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	if admin.IsPrimary {
		return c.JSON(http.StatusConflict, map[string]string{"error": "The primary admin cannot be deleted"})
	}

	if err := h.deleteAccount(admin); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// deleteAccount soft-deletes the account and pulls every live refresh
// token, closing any open sessions.
func (h *AdminHandler) deleteAccount(user *models.User) error {
	return h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.RefreshToken{}).
			Where("user_id = ? AND revoked = ?", user.ID, false).
			Update("revoked", true).Error
	})
}
