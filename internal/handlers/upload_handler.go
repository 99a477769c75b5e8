package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/api/middleware"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

const maxUploadSize = 10 << 20 // 10 MiB

type UploadHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUploadHandler(db *gorm.DB) *UploadHandler {
	return &UploadHandler{
		db:  db,
		log: logger.New("upload_handler"),
	}
}

// UploadFile stores an image in object storage and records it.
// @Summary Upload a file
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} models.Upload
// @Failure 400 {object} map[string]string "Missing or oversized file"
// @Router /api/uploads [post]
func (h *UploadHandler) UploadFile(c echo.Context) error {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Content-Type must be multipart/form-data",
		})
	}

	storage := GetStorageHandler()
	if storage == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Storage handler not configured",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "No file provided",
		})
	}

	if file.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "File exceeds the 10MB limit",
		})
	}

	fileType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(fileType, "image/") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Only image uploads are accepted",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to read file",
		})
	}

	key, url, err := storage.UploadFile(c.Request().Context(), content, file.Filename, fileType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to upload file",
		})
	}

	upload := models.Upload{
		UserID: middleware.GetUserID(c),
		Key:    key,
		Name:   file.Filename,
		Size:   file.Size,
		Type:   fileType,
		URL:    url,
	}

	if err := h.db.Create(&upload).Error; err != nil {
		return serviceError(c, err)
	}

	h.log.Success("File uploaded: %s", url)
	return c.JSON(http.StatusCreated, upload)
}

// ListOwn returns the caller's uploads with fresh signed URLs.
// @Summary List own uploads
// @Tags uploads
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/uploads [get]
func (h *UploadHandler) ListOwn(c echo.Context) error {
	page, limit := pagination(c)

	var uploads []models.Upload
	var total int64

	query := h.db.Model(&models.Upload{}).
		Where("user_id = ? AND is_deleted = ?", middleware.GetUserID(c), false)

	if err := query.Count(&total).Error; err != nil {
		return serviceError(c, err)
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&uploads).Error
	if err != nil {
		return serviceError(c, err)
	}

	return listResponse(c, uploads, total, page, limit)
}
