package models

import "gorm.io/gorm"

// User represents a user in the system.
type User struct {
	gorm.Model
	Username     string  `gorm:"size:100;unique;not null"`
	Email        string  `gorm:"size:255;unique;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	AvatarURL    *string `gorm:"size:512"`
}

// All lists every model handled by AutoMigrate.
func All() []interface{} {
	return []interface{}{&User{}, &Friendship{}, &StatusUpdate{}}
}
