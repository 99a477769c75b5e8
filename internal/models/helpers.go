package models

import (
	"gorm.io/gorm"
)

// GetUserByEmailAndType retrieves a credential record scoped to one account
// type; the type is part of the lookup key so a valid password under the
// wrong claimed role still fails.
func GetUserByEmailAndType(db *gorm.DB, email string, t UserType) (*User, error) {
	user := &User{}
	if err := db.Where("email = ? AND type = ? AND is_deleted = false", email, t).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *gorm.DB, id string) (*User, error) {
	user := &User{}
	if err := db.Where("id = ? AND is_deleted = false", id).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetArtisanProfile(db *gorm.DB, userID string) (*ArtisanProfile, error) {
	profile := &ArtisanProfile{}
	if err := db.Where("user_id = ? AND is_deleted = false", userID).First(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// EmailTaken reports whether any live account already uses the email,
// regardless of account type.
func EmailTaken(db *gorm.DB, email string) (bool, error) {
	var count int64
	if err := db.Model(&User{}).Where("email = ? AND is_deleted = false", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
