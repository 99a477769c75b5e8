package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

func TestContactSubmissionStored(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Quotation",
		"message": "I would like a quote for ten windows.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg models.ContactMessage
	require.NoError(t, env.db.First(&msg).Error)
	assert.Equal(t, "visitor@example.com", msg.Email)
	// The sender IP is recorded for abuse handling but never serialized
	assert.NotContains(t, rec.Body.String(), "ipAddress")
}

func TestContactValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "V",
		"email":   "not-an-email",
		"message": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHomeAggregateSections(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Featured frame", 300, models.StatusApproved)
	seedProduct(t, env, "Hidden frame", 300, models.StatusPending)

	article := &models.Article{
		Title:    models.Bilingual{En: "Care guide"},
		AuthorID: "00000000-0000-0000-0000-000000000000",
		Status:   models.ArticlePublished,
	}
	require.NoError(t, env.db.Create(article).Error)

	rec := env.request(t, http.MethodGet, "/api/home", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Len(t, body["products"], 1)
	assert.Len(t, body["articles"], 1)
	// Empty sections are empty arrays, not nulls
	assert.NotNil(t, body["projects"])
	assert.NotNil(t, body["offers"])
}
