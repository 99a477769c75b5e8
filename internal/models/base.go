package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt time.Time `gorm:"index;default:NULL" json:"-" validate:"omitempty"`
	IsDeleted bool      `json:"-" default:"false"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// UserType is the role a credential record belongs to. It is part of the
// login lookup key, not just a claim on the issued token.
type UserType string

const (
	UserTypeShopper UserType = "user"
	UserTypeArtisan UserType = "artisan"
	UserTypeAdmin   UserType = "admin"
)

// IsValidUserType checks if a given account type is valid
func IsValidUserType(t UserType) bool {
	switch t {
	case UserTypeShopper, UserTypeArtisan, UserTypeAdmin:
		return true
	default:
		return false
	}
}

// ContentStatus is the moderation state of products and projects.
type ContentStatus string

const (
	StatusPending  ContentStatus = "pending"
	StatusApproved ContentStatus = "approved"
	StatusRejected ContentStatus = "rejected"
)

// ArticleStatus is the editorial state of articles.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
)

// OfferStatus is the persisted lifecycle state of an offer. The effective
// state is always re-derived from the date range at read time; the stored
// column is reconciled by a scheduled task.
type OfferStatus string

const (
	OfferActive    OfferStatus = "active"
	OfferScheduled OfferStatus = "scheduled"
	OfferExpired   OfferStatus = "expired"
)
