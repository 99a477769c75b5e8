package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/api/middleware"
	"github.com/ESPSA/El-Wataneya/internal/events"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/utils"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

type AuthHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db, log: logger.New("AuthHandler")}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Type     string `json:"type" validate:"required,account_type"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Type     string `json:"type" validate:"required,user_type"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AvatarRequest struct {
	AvatarURL string `json:"avatarUrl" validate:"required,url"`
}

// Register creates a shopper or artisan account. Artisan accounts get an
// empty profile row in the same transaction so the pair never splits.
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]interface{} "Tokens and account"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	taken, err := models.EmailTaken(h.db, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if taken {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Type:         models.UserType(req.Type),
	}

	tx := h.db.Begin()
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start transaction"})
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create account"})
	}

	if user.Type == models.UserTypeArtisan {
		profile := models.ArtisanProfile{
			UserID: user.ID,
			Phone:  req.Phone,
		}
		if err := tx.Create(&profile).Error; err != nil {
			tx.Rollback()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create artisan profile"})
		}
		user.Profile = &profile
	}

	if err := tx.Commit().Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to commit transaction"})
	}

	events.Emit("users.created", &user)

	return h.issueTokens(c, http.StatusCreated, &user)
}

// Login authenticates against email, password AND declared account type.
// The type is part of the lookup key: a shopper's credentials never open
// an artisan or admin session.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Tokens and account"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := models.GetUserByEmailAndType(h.db, req.Email, models.UserType(req.Type))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	return h.issueTokens(c, http.StatusOK, user)
}

// Refresh exchanges a refresh token for a new token pair. The token must
// still exist server-side, unexpired and unrevoked; the old row is revoked
// so each refresh token is single-use.
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]interface{} "New tokens"
// @Failure 401 {object} map[string]string "Invalid or revoked token"
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	claims, err := utils.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var stored models.RefreshToken
	err = h.db.Where("token = ? AND revoked = ? AND expires_at > ?", req.RefreshToken, false, time.Now()).
		First(&stored).Error
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	user, err := models.GetUserByID(h.db, claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
	}

	if err := h.db.Model(&stored).Update("revoked", true).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return h.issueTokens(c, http.StatusOK, user)
}

// Logout revokes the presented refresh token. Access tokens simply expire.
// @Summary Logout
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]bool
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.db.Model(&models.RefreshToken{}).
		Where("token = ?", req.RefreshToken).
		Update("revoked", true)

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// GetMe returns the authenticated account, artisan profile included.
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/auth/me [get]
func (h *AuthHandler) GetMe(c echo.Context) error {
	var user models.User
	err := h.db.Preload("Profile").
		Where("id = ? AND is_deleted = ?", middleware.GetUserID(c), false).
		First(&user).Error
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAvatar sets the account's avatar image. Routed behind an owner
// check, so the path id always matches the authenticated subject.
// @Summary Update avatar
// @Tags auth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body AvatarRequest true "Avatar URL"
// @Success 200 {object} models.User
// @Failure 403 {object} map[string]string "Not the account owner"
// @Router /api/users/{id}/avatar [put]
func (h *AuthHandler) UpdateAvatar(c echo.Context) error {
	var req AvatarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	err := h.db.Model(&models.User{}).
		Where("id = ?", c.Param("id")).
		Update("avatar_url", req.AvatarURL).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update avatar"})
	}

	user, err := models.GetUserByID(h.db, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) issueTokens(c echo.Context, status int, user *models.User) error {
	accessToken, err := utils.GenerateAccessToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	refreshToken, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	stored := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(utils.RefreshTokenTTL),
	}
	if err := h.db.Create(&stored).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to persist refresh token"})
	}

	return c.JSON(status, map[string]interface{}{
		"token":        accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}
