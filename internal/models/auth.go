package models

import (
	"time"
)

// AdminPermissions is the per-admin permission set. Stored as embedded
// boolean columns so admin listing and permission checks stay plain reads.
type AdminPermissions struct {
	CanManageProducts bool `json:"canManageProducts"`
	CanManageProjects bool `json:"canManageProjects"`
	CanManageUsers    bool `json:"canManageUsers"`
	CanManageAdmins   bool `json:"canManageAdmins"`
	CanManageArticles bool `json:"canManageArticles"`
}

type User struct {
	Base
	Name         string           `gorm:"not null" json:"name" validate:"required,min=2"`
	Email        string           `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string           `gorm:"not null" json:"-"`
	Type         UserType         `gorm:"not null;default:'user'" json:"type"`
	AvatarURL    string           `json:"avatarUrl,omitempty"`
	Permissions  AdminPermissions `gorm:"embedded" json:"permissions"`
	// IsPrimary marks the single admin account allowed to manage other
	// admins. Checked fresh from storage on every admin-management call.
	IsPrimary bool            `gorm:"default:false" json:"isPrimary"`
	Profile   *ArtisanProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// IsAdmin reports whether the account is an administrator of any kind.
func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

// RefreshToken is a persisted long-lived credential. Refresh is only honored
// while the row exists, is unexpired and unrevoked, so tokens can be pulled
// server-side without waiting for JWT expiry.
type RefreshToken struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}
