package models

import "evbook/src/types"

type Booking struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	EventID       uint                `json:"event_id,omitempty"`
	UserID        uint                `json:"user_id,omitempty"`
	NumberOfSeats uint                `json:"numberOfSeats,omitempty"`
	TotalPrice    float64             `json:"totalPrice"`
	PaymentStatus types.PaymentStatus `gorm:"default:'pending'" json:"paymentStatus,omitempty"`
	Status        types.BookingStatus `gorm:"default:'confirmed'" json:"status,omitempty"`

	Event *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}
