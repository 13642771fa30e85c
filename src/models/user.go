package models

import "evbook/src/types"

type User struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	Username       string  `gorm:"uniqueIndex" json:"username,omitempty"`
	Email          string  `gorm:"uniqueIndex" json:"email,omitempty"`
	Password       string  `json:"-"`
	Role           string  `gorm:"default:'user'" json:"role,omitempty"`
	ProfilePicture string  `json:"profile_picture"`
	Balance        float64 `json:"balance"`

	Events   []Event   `gorm:"foreignKey:organizer_id" json:"events,omitempty"`
	Bookings []Booking `gorm:"foreignKey:user_id" json:"bookings,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:user_id" json:"reviews,omitempty"`

	types.Timestamps
}

// PublicUser is the identity shape returned to callers. The password hash
// never leaves the model layer.
type PublicUser struct {
	ID             uint    `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	ProfilePicture string  `json:"profile_picture"`
	Balance        float64 `json:"balance"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Balance:        u.Balance,
	}
}
