package types

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenTTL is how long a login token stays valid.
const TokenTTL = 7 * 24 * time.Hour

type PaymentStatus string
type BookingStatus string
type OrderStatus string

const (
	PAYMENT_PENDING PaymentStatus = "pending"
	PAYMENT_PAID    PaymentStatus = "paid"

	BOOKING_CONFIRMED BookingStatus = "confirmed"

	ORDER_PENDING  OrderStatus = "pending"
	ORDER_CAPTURED OrderStatus = "captured"
	ORDER_EXPIRED  OrderStatus = "expired"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterRequestBody struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequestBody carries the identifier in "email"; it may hold either an
// email address or a username.
type LoginRequestBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type EventListQuery struct {
	Category string `form:"category"`
	Location string `form:"location"`
	Name     string `form:"name"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=9"`
}

// CreateEventForm is bound from multipart form data; the image file travels
// separately under the "file" field.
type CreateEventForm struct {
	Title          string  `form:"title" binding:"required"`
	Description    string  `form:"description" binding:"required"`
	Category       string  `form:"category" binding:"required"`
	Date           string  `form:"date" binding:"required,calendardate"`
	Time           string  `form:"time"`
	AvailableSeats uint    `form:"availableSeats" binding:"required"`
	Price          float64 `form:"price"`
	Location       string  `form:"location"` // JSON {"lat":..,"lng":..}
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CreateReviewRequestBody struct {
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	ReviewText string `json:"reviewText"`
}

type CreateOrderRequestBody struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	EventName string  `json:"eventName" binding:"required"`
	EventID   uint    `json:"eventId" binding:"required"`
}

type CaptureOrderRequestBody struct {
	OrderID string `json:"orderId" binding:"required"`
}
