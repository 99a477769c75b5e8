package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

func TestComputeCapabilitiesNonAdminsHaveNone(t *testing.T) {
	shopper := &models.User{Type: models.UserTypeShopper}
	artisan := &models.User{Type: models.UserTypeArtisan}

	assert.Empty(t, ComputeCapabilities(shopper))
	assert.Empty(t, ComputeCapabilities(artisan))
	assert.Empty(t, ComputeCapabilities(nil))
}

func TestComputeCapabilitiesFollowsGrants(t *testing.T) {
	admin := &models.User{
		Type: models.UserTypeAdmin,
		Permissions: models.AdminPermissions{
			CanManageProjects: true,
			CanManageArticles: true,
		},
	}

	caps := ComputeCapabilities(admin)
	assert.True(t, caps.Has(CapManageProjects))
	assert.True(t, caps.Has(CapManageArticles))
	assert.False(t, caps.Has(CapManageProducts))
	assert.False(t, caps.Has(CapManageUsers))
	assert.False(t, caps.Has(CapManageAdmins))
}

func TestOffersCapabilityRidesOnProducts(t *testing.T) {
	admin := &models.User{
		Type:        models.UserTypeAdmin,
		Permissions: models.AdminPermissions{CanManageProducts: true},
	}

	caps := ComputeCapabilities(admin)
	assert.True(t, caps.Has(CapManageProducts))
	assert.True(t, caps.Has(CapManageOffers))

	withoutProducts := ComputeCapabilities(&models.User{
		Type:        models.UserTypeAdmin,
		Permissions: models.AdminPermissions{CanManageProjects: true},
	})
	assert.False(t, withoutProducts.Has(CapManageOffers))
}
