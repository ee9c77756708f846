package models

import "time"

const (
	ProviderPassword  = "password"
	ProviderGoogle    = "google"
	ProviderAnonymous = "anonymous"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	DisplayName  string
	PhotoURL     string
	Provider     string `gorm:"not null;default:password"`
	Anonymous    bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
}
