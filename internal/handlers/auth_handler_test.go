package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

func TestRegisterCreatesArtisanWithProfile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Fatma Hassan",
		"email":    "fatma@example.com",
		"password": "password123",
		"type":     "artisan",
		"phone":    "+20100000000",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["refreshToken"])

	var profile models.ArtisanProfile
	require.NoError(t, env.db.First(&profile).Error)
	assert.Equal(t, "+20100000000", profile.Phone)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Sara", "sara@example.com", models.UserTypeShopper)

	rec := env.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Sara Again",
		"email":    "sara@example.com",
		"password": "password123",
		"type":     "artisan",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterRejectsAdminType(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "password123",
		"type":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginScopedByAccountType(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Omar", "omar@example.com", models.UserTypeShopper)

	// Correct credentials under the right type
	rec := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "omar@example.com",
		"password": "password123",
		"type":     "user",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Same credentials under the wrong claimed type must fail
	rec = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "omar@example.com",
		"password": "password123",
		"type":     "artisan",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong password
	rec = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "omar@example.com",
		"password": "wrong-password",
		"type":     "user",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshRotatesAndRevokes(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Nour", "nour@example.com", models.UserTypeShopper)

	rec := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nour@example.com",
		"password": "password123",
		"type":     "user",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	refreshToken := decodeBody(t, rec)["refreshToken"].(string)

	// First exchange succeeds
	rec = env.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// A refresh token is single-use
	rec = env.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Hana", "hana@example.com", models.UserTypeShopper)

	rec := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "hana@example.com",
		"password": "password123",
		"type":     "user",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	refreshToken := decodeBody(t, rec)["refreshToken"].(string)

	rec = env.request(t, http.MethodPost, "/api/auth/logout", "", map[string]string{
		"refreshToken": refreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Adel", "adel@example.com", models.UserTypeShopper)

	rec := env.request(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/auth/me", env.token(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "adel@example.com", body["email"])
	// The password hash never leaves the server
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAvatarUpdateIsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Dina", "dina@example.com", models.UserTypeShopper)
	other := env.createUser(t, "Samir", "samir@example.com", models.UserTypeShopper)

	rec := env.request(t, http.MethodPut, "/api/users/"+user.ID+"/avatar", env.token(t, user),
		map[string]string{"avatarUrl": "https://cdn.example.com/avatars/dina.png"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://cdn.example.com/avatars/dina.png", decodeBody(t, rec)["avatarUrl"])

	// Another account's id is rejected before any write
	rec = env.request(t, http.MethodPut, "/api/users/"+user.ID+"/avatar", env.token(t, other),
		map[string]string{"avatarUrl": "https://cdn.example.com/avatars/hijack.png"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
