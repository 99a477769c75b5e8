package models

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	Base
	Name        Bilingual                  `gorm:"serializer:json" json:"name" validate:"required"`
	CategoryKey string                     `gorm:"not null" json:"categoryKey" validate:"required,oneof=aluminum kitchen"`
	Category    Bilingual                  `gorm:"serializer:json" json:"category"`
	ImageURLs   datatypes.JSONSlice[string] `json:"imageUrls"`
	Price       Price                      `gorm:"serializer:json" json:"price"`
	Origin      Bilingual                  `gorm:"serializer:json" json:"origin"`
	Description Bilingual                  `gorm:"serializer:json" json:"description"`
	Status      ContentStatus              `gorm:"not null;default:'pending';index" json:"status"`
	// DiscountedPrice is filled on public reads when an offer applies.
	DiscountedPrice *Price `gorm:"-" json:"discountedPrice,omitempty"`
}

type Project struct {
	Base
	Title        Bilingual                  `gorm:"serializer:json" json:"title" validate:"required"`
	ImageURLs    datatypes.JSONSlice[string] `json:"imageUrls"`
	ArtisanID    string                     `gorm:"type:uuid;not null;index" json:"artisanId"`
	Artisan      *User                      `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty"`
	Location     Bilingual                  `gorm:"serializer:json" json:"location"`
	StyleKey     string                     `gorm:"not null" json:"styleKey" validate:"required,oneof=modern classic neo"`
	Style        Bilingual                  `gorm:"serializer:json" json:"style"`
	ProductsUsed datatypes.JSONSlice[string] `json:"productsUsed"`
	Status       ContentStatus              `gorm:"not null;default:'pending';index" json:"status"`
	// IsActive is the artisan-controlled visibility toggle. Orthogonal to
	// Status and only actionable once the project is approved.
	IsActive bool `gorm:"default:true" json:"isActive"`
}

type Article struct {
	Base
	Title      Bilingual     `gorm:"serializer:json" json:"title" validate:"required"`
	Summary    Bilingual     `gorm:"serializer:json" json:"summary"`
	Content    Bilingual     `gorm:"serializer:json" json:"content"`
	ImageURL   string        `json:"imageUrl"`
	AuthorID   string        `gorm:"type:uuid;not null" json:"authorId"`
	AuthorName string        `json:"authorName"`
	Status     ArticleStatus `gorm:"not null;default:'draft';index" json:"status"`
}

type Offer struct {
	Base
	Title              Bilingual                  `gorm:"serializer:json" json:"title" validate:"required"`
	Description        Bilingual                  `gorm:"serializer:json" json:"description"`
	DiscountPercentage float64                    `gorm:"not null" json:"discountPercentage" validate:"required,gt=0,lte=100"`
	ProductIDs         datatypes.JSONSlice[string] `json:"productIds"`
	StartDate          time.Time                  `gorm:"not null" json:"startDate" validate:"required"`
	EndDate            time.Time                  `gorm:"not null" json:"endDate" validate:"required"`
	Status             OfferStatus                `gorm:"not null;default:'scheduled'" json:"status"`
}

// EffectiveStatus derives the offer state from its date range. Both bounds
// are inclusive.
func (o *Offer) EffectiveStatus(now time.Time) OfferStatus {
	if now.Before(o.StartDate) {
		return OfferScheduled
	}
	if now.After(o.EndDate) {
		return OfferExpired
	}
	return OfferActive
}

// AppliesTo reports whether the offer discounts the given product right now.
func (o *Offer) AppliesTo(productID string, now time.Time) bool {
	if o.EffectiveStatus(now) != OfferActive {
		return false
	}
	for _, id := range o.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// ArtisanProfile is the 1:1 extension of an artisan-type user.
type ArtisanProfile struct {
	Base
	UserID      string                        `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	User        *User                         `json:"user,omitempty"`
	Phone       string                        `json:"phone"`
	Bio         Bilingual                     `gorm:"serializer:json" json:"bio"`
	Location    Bilingual                     `gorm:"serializer:json" json:"location"`
	Specialties datatypes.JSONType[[]Bilingual] `json:"specialties"`
	Experience  int                           `json:"experience"`
	IsCertified bool                          `gorm:"default:false" json:"isCertified"`
}

// NewSpecialties wraps a specialty list for JSON column storage.
func NewSpecialties(list []Bilingual) datatypes.JSONType[[]Bilingual] {
	return datatypes.NewJSONType(list)
}

type ContactMessage struct {
	Base
	Name      string `gorm:"not null" json:"name" validate:"required"`
	Email     string `gorm:"not null" json:"email" validate:"required,email"`
	Subject   string `json:"subject"`
	Message   string `gorm:"not null" json:"message" validate:"required"`
	IPAddress string `json:"-"`
}

// Upload records an object stored in S3-compatible storage.
type Upload struct {
	Base
	UserID    string `gorm:"type:uuid;not null;index" json:"userId"`
	Key       string `gorm:"not null" json:"key"`
	Name      string `gorm:"not null" json:"name"`
	Size      int64  `gorm:"not null" json:"size"`
	Type      string `gorm:"not null" json:"type"`
	URL       string `json:"url"`
	SignedURL string `gorm:"-" json:"signedUrl,omitempty"` // Virtual field
}
