package models

import "time"

// HighlightsCacheEntry caches one document-extraction result per user and
// document content hash, so an unchanged upload never triggers a second
// provider call.
type HighlightsCacheEntry struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;uniqueIndex:uidx_user_document"`
	ContentHash string `gorm:"not null;uniqueIndex:uidx_user_document"`
	PayloadJSON string `gorm:"not null"`
	CreatedAt   time.Time
}
