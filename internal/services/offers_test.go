package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Offer{}))
	return db
}

func seedOffer(t *testing.T, db *gorm.DB, discount float64, from, to time.Time, productIDs ...string) *models.Offer {
	t.Helper()
	offer := &models.Offer{
		Title:              models.Bilingual{En: "Offer"},
		DiscountPercentage: discount,
		ProductIDs:         datatypes.JSONSlice[string](productIDs),
		StartDate:          from,
		EndDate:            to,
	}
	require.NoError(t, db.Create(offer).Error)
	return offer
}

func TestActiveOfferForPicksDeepestDiscount(t *testing.T) {
	db := newTestDB(t)
	svc := NewOfferService(db)
	now := time.Now()

	seedOffer(t, db, 10, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), "p1")
	seedOffer(t, db, 25, now.AddDate(0, 0, -2), now.AddDate(0, 0, 2), "p1")
	// deeper, but expired
	seedOffer(t, db, 50, now.AddDate(0, 0, -10), now.AddDate(0, 0, -5), "p1")

	best, err := svc.ActiveOfferFor(context.Background(), "p1", now)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 25.0, best.DiscountPercentage)

	none, err := svc.ActiveOfferFor(context.Background(), "p2", now)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestApplyDiscountsSkipsTradePricing(t *testing.T) {
	db := newTestDB(t)
	svc := NewOfferService(db)
	now := time.Now()

	priced := models.Product{
		Name:        models.Bilingual{En: "Priced"},
		CategoryKey: "aluminum",
		Price:       models.Price{Amount: floatPtr(200), Currency: "EGP"},
		Status:      models.StatusApproved,
	}
	onRequest := models.Product{
		Name:        models.Bilingual{En: "On request"},
		CategoryKey: "kitchen",
		Status:      models.StatusApproved,
	}
	require.NoError(t, db.Create(&priced).Error)
	require.NoError(t, db.Create(&onRequest).Error)

	seedOffer(t, db, 10, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), priced.ID, onRequest.ID)

	products := []models.Product{priced, onRequest}
	require.NoError(t, svc.ApplyDiscounts(context.Background(), products, now))

	require.NotNil(t, products[0].DiscountedPrice)
	assert.Equal(t, 180.0, *products[0].DiscountedPrice.Amount)

	// Trade-pricing products still show as covered, with no numeric amount
	require.NotNil(t, products[1].DiscountedPrice)
	assert.Nil(t, products[1].DiscountedPrice.Amount)
}

func TestRefreshStatusesReconcilesStoredColumn(t *testing.T) {
	db := newTestDB(t)
	svc := NewOfferService(db)
	now := time.Now()

	expired := seedOffer(t, db, 10, now.AddDate(0, 0, -10), now.AddDate(0, 0, -5))
	active := seedOffer(t, db, 10, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	scheduled := seedOffer(t, db, 10, now.AddDate(0, 0, 5), now.AddDate(0, 0, 10))

	// Creation hooks already derive the right status, so force drift
	require.NoError(t, db.Model(expired).Update("status", models.OfferActive).Error)

	changed, err := svc.RefreshStatuses(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	var reloadedExpired models.Offer
	require.NoError(t, db.First(&reloadedExpired, "id = ?", expired.ID).Error)
	assert.Equal(t, models.OfferExpired, reloadedExpired.Status)

	var reloadedActive models.Offer
	require.NoError(t, db.First(&reloadedActive, "id = ?", active.ID).Error)
	assert.Equal(t, models.OfferActive, reloadedActive.Status)

	var reloadedScheduled models.Offer
	require.NoError(t, db.First(&reloadedScheduled, "id = ?", scheduled.ID).Error)
	assert.Equal(t, models.OfferScheduled, reloadedScheduled.Status)
}

func floatPtr(f float64) *float64 { return &f }
