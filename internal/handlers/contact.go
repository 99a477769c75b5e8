package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/tasks"
	"github.com/ESPSA/El-Wataneya/internal/tasks/rate"
	"github.com/ESPSA/El-Wataneya/internal/utils"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// ContactHandler accepts public contact-form submissions. Submissions are
// rate limited per client IP and staff are notified asynchronously.
type ContactHandler struct {
	db      *gorm.DB
	client  *tasks.TaskClient
	limiter *rate.Limiter
	log     *logger.Logger
}

func NewContactHandler(db *gorm.DB, client *tasks.TaskClient, limiter *rate.Limiter) *ContactHandler {
	return &ContactHandler{
		db:      db,
		client:  client,
		limiter: limiter,
		log:     logger.New("ContactHandler"),
	}
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required,min=10"`
}

// Submit stores a contact message and queues the staff notification.
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Message"
// @Success 201 {object} map[string]bool
// @Failure 429 {object} map[string]string "Too many submissions"
// @Router /api/contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ip := utils.GetIPAddress(c.Request())
	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.Request().Context(), ip)
		if err != nil {
			// Redis being down should not block the contact form.
			h.log.Warn("rate limiter unavailable: %v", err)
		} else if !allowed {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many submissions, try again later"})
		}
	}

	msg := models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		IPAddress: ip,
	}

	if err := h.db.Create(&msg).Error; err != nil {
		return serviceError(c, err)
	}

	if h.client != nil {
		if err := h.client.EnqueueContactNotify(c.Request().Context(), msg.ID); err != nil {
			h.log.Warn("failed to enqueue contact notification: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, map[string]bool{"success": true})
}
