package models

import "evbook/src/types"

// Order is the local record of a provider checkout, written when the
// provider order is created and looked up by ProviderOrderID at capture
// time. It replaces round-tripping purchase metadata through the provider.
type Order struct {
	ID              uint              `gorm:"primarykey" json:"id"`
	ProviderOrderID string            `gorm:"uniqueIndex" json:"provider_order_id,omitempty"`
	UserID          uint              `json:"user_id,omitempty"`
	EventID         uint              `json:"event_id,omitempty"`
	Quantity        uint              `json:"quantity,omitempty"`
	UnitPrice       float64           `json:"unit_price"`
	Total           float64           `json:"total"`
	Status          types.OrderStatus `gorm:"default:'pending'" json:"status,omitempty"`
	BookingID       *uint             `json:"booking_id,omitempty"`

	Event   *Event   `gorm:"foreignKey:event_id" json:"event,omitempty"`
	User    *User    `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Booking *Booking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`

	types.Timestamps
}
