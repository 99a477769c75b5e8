package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

// ProjectService owns artisan portfolio projects. Visibility is the
// intersection of moderation (status) and the artisan's own toggle
// (is_active); both must hold for a project to appear publicly.
type ProjectService struct {
	BaseService[models.Project]
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{
		BaseService: NewBaseService(db, models.Project{}),
		db:          db,
	}
}

// PublicList returns approved, active projects, optionally filtered by style.
func (s *ProjectService) PublicList(ctx context.Context, styleKey string, page, limit int) ([]models.Project, int64, error) {
	filters := map[string]interface{}{
		"status":    models.StatusApproved,
		"is_active": true,
	}
	if styleKey != "" {
		filters["style_key"] = styleKey
	}
	return s.List(ctx, page, limit, filters, []string{"created_at"}, "desc", "Artisan")
}

// PublicGet returns a project only when it is approved and active.
func (s *ProjectService) PublicGet(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.Get(ctx, id, "Artisan")
	if err != nil {
		return nil, err
	}
	if project.Status != models.StatusApproved || !project.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return project, nil
}

// ListByArtisan returns every project owned by the artisan, all statuses.
func (s *ProjectService) ListByArtisan(ctx context.Context, artisanID string, page, limit int) ([]models.Project, int64, error) {
	return s.List(ctx, page, limit, map[string]interface{}{"artisan_id": artisanID}, []string{"created_at"}, "desc")
}

// GetOwn returns one of the artisan's projects regardless of status.
func (s *ProjectService) GetOwn(ctx context.Context, artisanID, id string) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.ArtisanID != artisanID {
		return nil, ErrNotOwner
	}
	return project, nil
}

// Submit creates a project for the artisan. New submissions always enter
// the moderation queue as pending.
func (s *ProjectService) Submit(ctx context.Context, artisanID string, project *models.Project) error {
	project.ArtisanID = artisanID
	project.Status = models.StatusPending
	project.IsActive = true
	return s.Create(ctx, project)
}

// UpdateOwn edits an artisan's own project. Any content edit sends the
// project back through moderation: previously approved work must be
// re-reviewed before it reappears publicly.
func (s *ProjectService) UpdateOwn(ctx context.Context, artisanID, id string, changes *models.Project) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.ArtisanID != artisanID {
		return nil, ErrNotOwner
	}

	changes.ArtisanID = project.ArtisanID
	changes.Status = models.StatusPending
	if err := s.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// AdminCreate adds a project on an artisan's behalf. The caller picks the
// owner and visibility toggle, but the project still starts pending.
func (s *ProjectService) AdminCreate(ctx context.Context, project *models.Project) error {
	var owner models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND type = ? AND is_deleted = ?", project.ArtisanID, models.UserTypeArtisan, false).
		First(&owner).Error
	if err != nil {
		return err
	}

	project.Status = models.StatusPending
	return s.Create(ctx, project)
}

// AdminUpdate edits a project without touching its moderation status.
func (s *ProjectService) AdminUpdate(ctx context.Context, id string, changes *models.Project) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes.ArtisanID = project.ArtisanID
	changes.Status = project.Status
	if err := s.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetActive flips the artisan's visibility toggle. The toggle only has
// meaning for approved projects; anything else is a conflict.
func (s *ProjectService) SetActive(ctx context.Context, artisanID, id string, active bool) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.ArtisanID != artisanID {
		return nil, ErrNotOwner
	}
	if project.Status != models.StatusApproved {
		return nil, ErrNotApproved
	}

	err = s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Update("is_active", active).Error
	if err != nil {
		return nil, err
	}
	project.IsActive = active
	return project, nil
}

// DeleteOwn removes an artisan's own project.
func (s *ProjectService) DeleteOwn(ctx context.Context, artisanID, id string) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if project.ArtisanID != artisanID {
		return ErrNotOwner
	}
	return s.Delete(ctx, id)
}

// AdminList returns all projects, pending first.
func (s *ProjectService) AdminList(ctx context.Context, status string, page, limit int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Project{}).Where("is_deleted = ?", false)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Artisan").
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at DESC")
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// SetStatus applies a moderation decision to a project.
func (s *ProjectService) SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.Project, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidStatus
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Status == status {
		return nil, ErrSameStatus
	}

	err = s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	project.Status = status
	return project, nil
}
