package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/events"
)

func (p *Product) AfterCreate(tx *gorm.DB) error {
	events.Emit("products.submitted", p)
	return nil
}

func (p *Project) AfterCreate(tx *gorm.DB) error {
	events.Emit("projects.submitted", p)
	return nil
}

func (m *ContactMessage) AfterCreate(tx *gorm.DB) error {
	events.Emit("contact.received", m)
	return nil
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if err := o.Base.BeforeCreate(tx); err != nil {
		return err
	}
	o.Status = o.EffectiveStatus(time.Now())
	return nil
}

func (u *Upload) AfterFind(tx *gorm.DB) error {
	registryMu.RLock()
	generator := urlGenerator
	registryMu.RUnlock()

	if generator != nil {
		// Generate URL with 1-hour expiry
		url, err := generator.GetSignedURL(tx.Statement.Context, u.Key, time.Hour)
		if err != nil {
			return fmt.Errorf("failed to generate signed URL: %w", err)
		}
		u.SignedURL = url
	}
	return nil
}
