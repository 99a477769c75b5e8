package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

// ProductService owns the product catalog: public reads see only approved
// items with discounts resolved, admin reads see everything pending-first.
type ProductService struct {
	BaseService[models.Product]
	db     *gorm.DB
	offers *OfferService
}

func NewProductService(db *gorm.DB, offers *OfferService) *ProductService {
	return &ProductService{
		BaseService: NewBaseService(db, models.Product{}),
		db:          db,
		offers:      offers,
	}
}

// PublicList returns approved products, optionally filtered by category,
// with active-offer discounts applied.
func (s *ProductService) PublicList(ctx context.Context, categoryKey string, page, limit int) ([]models.Product, int64, error) {
	filters := map[string]interface{}{"status": models.StatusApproved}
	if categoryKey != "" {
		filters["category_key"] = categoryKey
	}

	products, total, err := s.List(ctx, page, limit, filters, []string{"created_at"}, "desc")
	if err != nil {
		return nil, 0, err
	}

	if err := s.offers.ApplyDiscounts(ctx, products, time.Now()); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// PublicGet returns a single product only if it is approved.
func (s *ProductService) PublicGet(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Status != models.StatusApproved {
		return nil, gorm.ErrRecordNotFound
	}

	if offer, err := s.offers.ActiveOfferFor(ctx, product.ID, time.Now()); err == nil && offer != nil {
		discounted := product.Price.Discounted(offer.DiscountPercentage)
		product.DiscountedPrice = &discounted
	}
	return product, nil
}

// AdminList returns all products regardless of status, pending first so
// the moderation queue surfaces at the top.
func (s *ProductService) AdminList(ctx context.Context, status string, page, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Product{}).Where("is_deleted = ?", false)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at DESC")
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// SetStatus applies a moderation decision. Only approved and rejected are
// reachable, and the decision must change the current status.
func (s *ProductService) SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.Product, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidStatus
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Status == status {
		return nil, ErrSameStatus
	}

	err = s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	product.Status = status
	return product, nil
}
