package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking lifecycle statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
	BookingNoShow    = "no_show"
)

// Payment statuses; written by the payment integration, read here.
const (
	PaymentPending       = "pending"
	PaymentPaid          = "paid"
	PaymentPartiallyPaid = "partially_paid"
	PaymentRefunded      = "refunded"
	PaymentFailed        = "failed"
)

// Booking is a guest's reservation of a unit for [CheckIn, CheckOut).
// The pricing snapshot is computed at creation time and never
// recomputed; date range and pricing are immutable after creation.
type Booking struct {
	gorm.Model
	ReferenceCode string `json:"referenceCode" gorm:"size:36;uniqueIndex"`
	UnitType      string `json:"unitType" gorm:"size:12;not null;index:idx_booking_unit"`
	UnitID        uint   `json:"unitID" gorm:"not null;index:idx_booking_unit"`
	GuestID       uint   `json:"guestID" gorm:"not null;index"`

	CheckIn  time.Time `json:"checkIn" gorm:"type:date;not null"`
	CheckOut time.Time `json:"checkOut" gorm:"type:date;not null"`
	Quantity int       `json:"quantity" gorm:"not null;default:1"`

	GuestDetails datatypes.JSON `json:"guestDetails"` // names, contact, special requests

	// Pricing snapshot
	BasePrice     float64 `json:"basePrice"`
	Nights        int     `json:"nights"`
	Subtotal      float64 `json:"subtotal"`
	Taxes         float64 `json:"taxes"`
	ServiceCharge float64 `json:"serviceCharge"`
	TotalPrice    float64 `json:"totalPrice"`
	Currency      string  `json:"currency" gorm:"type:varchar(3)"`

	BookingStatus string `json:"bookingStatus" gorm:"type:varchar(16);default:pending;index"`
	PaymentStatus string `json:"paymentStatus" gorm:"type:varchar(16);default:pending;index"`

	// Cancellation metadata, populated only on cancellation.
	CancelledAt        *time.Time `json:"cancelledAt"`
	CancelledBy        string     `json:"cancelledBy"` // role of the cancelling actor
	CancellationReason string     `json:"cancellationReason"`
	RefundAmount       *float64   `json:"refundAmount"`

	Guest *User `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}
