package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/api/middleware"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/services"
)

type ArtisanHandler struct {
	db       *gorm.DB
	projects *services.ProjectService
}

func NewArtisanHandler(db *gorm.DB, projects *services.ProjectService) *ArtisanHandler {
	return &ArtisanHandler{db: db, projects: projects}
}

type ProfileUpdateRequest struct {
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Bio         *models.Bilingual `json:"bio"`
	Location    *models.Bilingual `json:"location"`
	Specialties []models.Bilingual `json:"specialties"`
	Experience  *int              `json:"experience"`
	AvatarURL   string            `json:"avatarUrl"`
}

// ListPublic returns the artisan directory with profiles.
// @Summary List artisans
// @Tags artisans
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/artisans [get]
func (h *ArtisanHandler) ListPublic(c echo.Context) error {
	page, limit := pagination(c)

	var artisans []models.User
	var total int64

	query := h.db.Model(&models.User{}).
		Where("type = ? AND is_deleted = ?", models.UserTypeArtisan, false)

	if err := query.Count(&total).Error; err != nil {
		return serviceError(c, err)
	}

	err := query.Preload("Profile").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&artisans).Error
	if err != nil {
		return serviceError(c, err)
	}

	return listResponse(c, artisans, total, page, limit)
}

// GetPublic returns one artisan with their publicly visible projects.
// @Summary Get an artisan
// @Tags artisans
// @Produce json
// @Param id path string true "Artisan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/artisans/{id} [get]
func (h *ArtisanHandler) GetPublic(c echo.Context) error {
	var artisan models.User
	err := h.db.Preload("Profile").
		Where("id = ? AND type = ? AND is_deleted = ?", c.Param("id"), models.UserTypeArtisan, false).
		First(&artisan).Error
	if err != nil {
		return serviceError(c, err)
	}

	var projects []models.Project
	err = h.db.Where("artisan_id = ? AND status = ? AND is_active = ? AND is_deleted = ?",
		artisan.ID, models.StatusApproved, true, false).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"artisan":  artisan,
		"projects": projects,
	})
}

// UpdateProfile edits the calling artisan's own profile. Profile edits do
// not pass through moderation.
// @Summary Update own profile
// @Tags artisan
// @Accept json
// @Produce json
// @Param request body ProfileUpdateRequest true "Profile changes"
// @Success 200 {object} models.User
// @Router /api/artisan/profile [put]
func (h *ArtisanHandler) UpdateProfile(c echo.Context) error {
	var req ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	userID := middleware.GetUserID(c)

	profile, err := models.GetArtisanProfile(h.db, userID)
	if err != nil {
		return serviceError(c, err)
	}

	tx := h.db.Begin()
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start transaction"})
	}

	userChanges := map[string]interface{}{}
	if req.Name != "" {
		userChanges["name"] = req.Name
	}
	if req.AvatarURL != "" {
		userChanges["avatar_url"] = req.AvatarURL
	}
	if len(userChanges) > 0 {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(userChanges).Error; err != nil {
			tx.Rollback()
			return serviceError(c, err)
		}
	}

	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Specialties != nil {
		profile.Specialties = models.NewSpecialties(req.Specialties)
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}

	if err := tx.Save(profile).Error; err != nil {
		tx.Rollback()
		return serviceError(c, err)
	}

	if err := tx.Commit().Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to commit transaction"})
	}

	var user models.User
	if err := h.db.Preload("Profile").Where("id = ?", userID).First(&user).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
