package models

import (
	"time"

	"evbook/src/types"
)

type Event struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Title          string    `json:"title,omitempty"`
	Slug           string    `gorm:"index" json:"slug,omitempty"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category,omitempty"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	Date           time.Time `json:"date,omitempty"`
	AvailableSeats uint      `json:"availableSeats"`
	BookedSeats    uint      `gorm:"default:0" json:"bookedSeats"`
	Price          float64   `json:"price"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	OrganizerID    uint      `json:"organizer_id,omitempty"`

	Organizer *User    `gorm:"foreignKey:organizer_id" json:"organizer,omitempty"`
	Reviews   []Review `gorm:"foreignKey:event_id" json:"reviews,omitempty"`

	types.Timestamps
}
