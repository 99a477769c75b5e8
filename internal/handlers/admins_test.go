package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

func TestAdminRosterReservedForPrimary(t *testing.T) {
	env := newTestEnv(t)
	primary := env.createAdmin(t, "primary@example.com", true, models.FullAdminPermissions)
	// Even a secondary admin with every permission bit set is refused
	secondary := env.createAdmin(t, "secondary@example.com", false, models.FullAdminPermissions)

	rec := env.request(t, http.MethodGet, "/api/admin/admins", env.token(t, secondary), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/admin/admins", env.token(t, primary), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPrimaryAdminCannotBeDeletedOrModified(t *testing.T) {
	env := newTestEnv(t)
	primary := env.createAdmin(t, "primary2@example.com", true, models.FullAdminPermissions)
	token := env.token(t, primary)

	rec := env.request(t, http.MethodDelete, "/api/admin/admins/"+primary.ID, token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(t, http.MethodPut, "/api/admin/admins/"+primary.ID, token, map[string]interface{}{
		"permissions": models.AdminPermissions{},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateAndScopeSecondaryAdmin(t *testing.T) {
	env := newTestEnv(t)
	primary := env.createAdmin(t, "primary3@example.com", true, models.FullAdminPermissions)
	token := env.token(t, primary)

	rec := env.request(t, http.MethodPost, "/api/admin/admins", token, map[string]interface{}{
		"name":     "Content Admin",
		"email":    "content@example.com",
		"password": "password123",
		"permissions": models.AdminPermissions{
			CanManageArticles: true,
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["isPrimary"])

	created, err := models.GetUserByEmailAndType(env.db, "content@example.com", models.UserTypeAdmin)
	require.NoError(t, err)
	newToken := env.token(t, created)

	// Granted surface works, everything else is refused
	rec = env.request(t, http.MethodGet, "/api/admin/articles", newToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.request(t, http.MethodGet, "/api/admin/users", newToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSecondaryAdminCannotReceiveAdminManagement(t *testing.T) {
	env := newTestEnv(t)
	primary := env.createAdmin(t, "primary4@example.com", true, models.FullAdminPermissions)
	token := env.token(t, primary)

	rec := env.request(t, http.MethodPost, "/api/admin/admins", token, map[string]interface{}{
		"name":     "Over Reach",
		"email":    "overreach@example.com",
		"password": "password123",
		"permissions": models.AdminPermissions{
			CanManageAdmins: true,
			CanManageUsers:  true,
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created, err := models.GetUserByEmailAndType(env.db, "overreach@example.com", models.UserTypeAdmin)
	require.NoError(t, err)
	assert.False(t, created.Permissions.CanManageAdmins)
	assert.True(t, created.Permissions.CanManageUsers)

	// The grant cannot be smuggled in through an update either
	rec = env.request(t, http.MethodPut, "/api/admin/admins/"+created.ID, token, map[string]interface{}{
		"permissions": models.AdminPermissions{CanManageAdmins: true, CanManageUsers: true},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	reloaded, err := models.GetUserByID(env.db, created.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Permissions.CanManageAdmins)
}

func TestDeleteUserClosesSessions(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createAdmin(t, "staff@example.com", false, models.AdminPermissions{CanManageUsers: true})
	env.createUser(t, "Target", "target@example.com", models.UserTypeShopper)

	// The target logs in, holding a live refresh token
	rec := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "target@example.com",
		"password": "password123",
		"type":     "user",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	loginBody := decodeBody(t, rec)
	refreshToken := loginBody["refreshToken"].(string)
	accessToken := loginBody["token"].(string)
	targetID := loginBody["user"].(map[string]interface{})["id"].(string)

	rec = env.request(t, http.MethodDelete, "/api/admin/users/"+targetID, env.token(t, staff), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The deleted account can neither refresh nor use its live access token
	rec = env.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/auth/me", accessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteUserRefusesAdmins(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createAdmin(t, "staff2@example.com", false, models.AdminPermissions{CanManageUsers: true})
	other := env.createAdmin(t, "other-admin@example.com", false, models.AdminPermissions{})

	rec := env.request(t, http.MethodDelete, "/api/admin/users/"+other.ID, env.token(t, staff), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
