package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// OfferService layers discount resolution on top of plain offer CRUD.
type OfferService struct {
	BaseService[models.Offer]
	db  *gorm.DB
	log *logger.Logger
}

func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{
		BaseService: NewBaseService(db, models.Offer{}),
		db:          db,
		log:         logger.New("offer_service"),
	}
}

// ActiveOffers returns all offers whose date range covers now.
func (s *OfferService) ActiveOffers(ctx context.Context, now time.Time) ([]models.Offer, error) {
	var offers []models.Offer
	err := s.db.WithContext(ctx).
		Where("is_deleted = ? AND start_date <= ? AND end_date >= ?", false, now, now).
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// ActiveOfferFor returns the active offer covering the product, if any.
// When several offers overlap the same product, the deepest discount wins.
func (s *OfferService) ActiveOfferFor(ctx context.Context, productID string, now time.Time) (*models.Offer, error) {
	offers, err := s.ActiveOffers(ctx, now)
	if err != nil {
		return nil, err
	}

	var best *models.Offer
	for i := range offers {
		if !offers[i].AppliesTo(productID, now) {
			continue
		}
		if best == nil || offers[i].DiscountPercentage > best.DiscountPercentage {
			best = &offers[i]
		}
	}
	return best, nil
}

// ApplyDiscounts fills DiscountedPrice on each product covered by an active
// offer. Products without a numeric price keep a nil discount amount so the
// "Trade Pricing" display is preserved.
func (s *OfferService) ApplyDiscounts(ctx context.Context, products []models.Product, now time.Time) error {
	offers, err := s.ActiveOffers(ctx, now)
	if err != nil {
		return err
	}
	if len(offers) == 0 {
		return nil
	}

	for i := range products {
		var best *models.Offer
		for j := range offers {
			if !offers[j].AppliesTo(products[i].ID, now) {
				continue
			}
			if best == nil || offers[j].DiscountPercentage > best.DiscountPercentage {
				best = &offers[j]
			}
		}
		if best != nil {
			discounted := products[i].Price.Discounted(best.DiscountPercentage)
			products[i].DiscountedPrice = &discounted
		}
	}
	return nil
}

// RefreshStatuses recomputes the stored status of every offer from its date
// range. Run hourly by the background worker so listings stay truthful
// without computing status on every read.
func (s *OfferService) RefreshStatuses(ctx context.Context, now time.Time) (int64, error) {
	var offers []models.Offer
	if err := s.db.WithContext(ctx).Where("is_deleted = ?", false).Find(&offers).Error; err != nil {
		return 0, err
	}

	var changed int64
	for i := range offers {
		effective := offers[i].EffectiveStatus(now)
		if offers[i].Status == effective {
			continue
		}
		err := s.db.WithContext(ctx).Model(&models.Offer{}).
			Where("id = ?", offers[i].ID).
			Update("status", effective).Error
		if err != nil {
			return changed, err
		}
		changed++
	}

	if changed > 0 {
		s.log.Info("Refreshed %d offer statuses", changed)
	}
	return changed, nil
}
