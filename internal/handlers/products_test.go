package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

func seedProduct(t *testing.T, env *testEnv, name string, amount float64, status models.ContentStatus) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        models.Bilingual{Ar: name, En: name},
		CategoryKey: "aluminum",
		Price:       models.Price{Amount: floatPtr(amount), Currency: "EGP"},
		Status:      status,
	}
	require.NoError(t, env.db.Create(product).Error)
	return product
}

func TestPublicCatalogShowsOnlyApproved(t *testing.T) {
	env := newTestEnv(t)
	approved := seedProduct(t, env, "Window frame", 500, models.StatusApproved)
	pending := seedProduct(t, env, "Door frame", 700, models.StatusPending)
	rejected := seedProduct(t, env, "Bad frame", 100, models.StatusRejected)

	rec := env.request(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, approved.ID)
	assert.NotContains(t, body, pending.ID)
	assert.NotContains(t, body, rejected.ID)

	// Direct fetch of unapproved items is a 404, not a 403
	rec = env.request(t, http.MethodGet, "/api/products/"+pending.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActiveOfferDiscountsPublicProduct(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Sliding window", 1000, models.StatusApproved)

	start, end := dayRange(-1, 1)
	offer := &models.Offer{
		Title:              models.Bilingual{En: "Summer sale"},
		DiscountPercentage: 15,
		ProductIDs:         datatypes.JSONSlice[string]{product.ID},
		StartDate:          start,
		EndDate:            end,
	}
	require.NoError(t, env.db.Create(offer).Error)

	rec := env.request(t, http.MethodGet, "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	discounted, ok := body["discountedPrice"].(map[string]interface{})
	require.True(t, ok, "expected discountedPrice on offer-covered product")
	assert.Equal(t, float64(850), discounted["amount"])

	// Expired offers leave the price alone
	require.NoError(t, env.db.Model(offer).Updates(map[string]interface{}{
		"start_date": time.Now().AddDate(0, 0, -10),
		"end_date":   time.Now().AddDate(0, 0, -5),
	}).Error)

	rec = env.request(t, http.MethodGet, "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, ok = decodeBody(t, rec)["discountedPrice"]
	assert.False(t, ok)
}

func TestAdminProductEditPreservesStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "catalog@example.com", false, models.AdminPermissions{CanManageProducts: true})
	product := seedProduct(t, env, "Profile bar", 250, models.StatusApproved)

	rec := env.request(t, http.MethodPut, "/api/admin/products/"+product.ID, env.token(t, admin), map[string]interface{}{
		"name":        map[string]string{"ar": "قطاع", "en": "Profile bar v2"},
		"categoryKey": "aluminum",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", decodeBody(t, rec)["status"])
}

func TestCapabilityGateOnAdminSurface(t *testing.T) {
	env := newTestEnv(t)
	// This admin moderates projects only
	admin := env.createAdmin(t, "projects-only@example.com", false, models.AdminPermissions{CanManageProjects: true})
	token := env.token(t, admin)

	rec := env.request(t, http.MethodGet, "/api/admin/products", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/admin/projects", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Offers ride on the products grant, which this admin lacks
	rec = env.request(t, http.MethodGet, "/api/admin/offers", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOfferValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "offers@example.com", false, models.AdminPermissions{CanManageProducts: true})
	token := env.token(t, admin)

	start, end := dayRange(-1, 1)

	// Inverted date range
	rec := env.request(t, http.MethodPost, "/api/admin/offers", token, map[string]interface{}{
		"title":              map[string]string{"en": "Backwards"},
		"discountPercentage": 10,
		"startDate":          end,
		"endDate":            start,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Discount outside (0, 100]
	rec = env.request(t, http.MethodPost, "/api/admin/offers", token, map[string]interface{}{
		"title":              map[string]string{"en": "Too deep"},
		"discountPercentage": 150,
		"startDate":          start,
		"endDate":            end,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/admin/offers", token, map[string]interface{}{
		"title":              map[string]string{"en": "Valid"},
		"discountPercentage": 20,
		"startDate":          start,
		"endDate":            end,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "active", decodeBody(t, rec)["status"])
}
