package models

import "evbook/src/types"

type Review struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	EventID    uint   `json:"event_id,omitempty"`
	UserID     uint   `json:"user_id,omitempty"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText,omitempty"`

	Event *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}
