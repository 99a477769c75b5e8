package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/services"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// TaskHandler processes queued and scheduled jobs.
type TaskHandler struct {
	db     *gorm.DB
	offers *services.OfferService
	logger *logger.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		db:     db,
		offers: services.NewOfferService(db),
		logger: logger.New("task_handler"),
	}
}

// HandleOffersRefresh recomputes every offer's stored status so listings
// stay in step with the calendar.
func (h *TaskHandler) HandleOffersRefresh(ctx context.Context, t *asynq.Task) error {
	changed, err := h.offers.RefreshStatuses(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("offers refresh: %w", err)
	}

	h.logger.Info("offers refresh complete, %d statuses updated", changed)
	return nil
}

// HandleTokensCleanup hard-deletes refresh token rows that can never be
// redeemed again: expired, or revoked more than a day ago.
func (h *TaskHandler) HandleTokensCleanup(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-24 * time.Hour)

	result := h.db.WithContext(ctx).
		Where("expires_at < ? OR (revoked = ? AND updated_at < ?)", time.Now(), true, cutoff).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		return fmt.Errorf("tokens cleanup: %w", result.Error)
	}

	h.logger.Info("tokens cleanup complete, %d rows removed", result.RowsAffected)
	return nil
}

// HandleContactNotify surfaces a stored contact message to staff. Delivery
// is a log line; the message itself is already queryable from the admin
// inbox, so a lost notification loses nothing.
func (h *TaskHandler) HandleContactNotify(ctx context.Context, t *asynq.Task) error {
	var payload ContactNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("contact notify: bad payload: %w", err)
	}

	var msg models.ContactMessage
	if err := h.db.WithContext(ctx).First(&msg, "id = ?", payload.MessageID).Error; err != nil {
		return fmt.Errorf("contact notify: message %s not found: %w", payload.MessageID, err)
	}

	h.logger.Info("📨 contact message from %s <%s>: %s", msg.Name, msg.Email, msg.Subject)
	return nil
}
