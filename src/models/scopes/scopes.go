package scopes

import (
	"time"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

// PendingStatus narrows a query to rows still waiting on payment capture.
func PendingStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "pending")
}

// OlderThan keeps rows created before now minus d.
func OlderThan(d time.Duration) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at < ?", time.Now().Add(-d))
	}
}
