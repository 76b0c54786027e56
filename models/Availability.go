package models

import (
	"time"

	"gorm.io/datatypes"
)

// Day statuses for a calendar row. Anything other than "available"
// blocks new bookings for that day.
const (
	DayAvailable     = "available"
	DayBooked        = "booked"
	DayOfflineBooked = "offline_booked"
	DayMaintenance   = "maintenance"
	DayBlocked       = "blocked"
	DayOutOfOrder    = "out_of_order"
)

// UnitAvailability is the per-(unit, calendar day) state record.
// Exactly one row may exist per unit and day; absence of a row means
// "available at full capacity, base price". We prefer per-day rows for
// simplicity and fast range queries.
type UnitAvailability struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	UnitType string    `json:"unitType" gorm:"size:12;not null;uniqueIndex:idx_unit_day"`
	UnitID   uint      `json:"unitID" gorm:"not null;uniqueIndex:idx_unit_day"`
	Date     time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_unit_day"`

	Status         string `json:"status" gorm:"size:16;index;default:available"`
	AvailableUnits int    `json:"availableUnits"`
	TotalUnits     int    `json:"totalUnits"`

	// Optional per-day rate override; nil means base price applies.
	PriceOverride *float64 `json:"priceOverride"`
	Currency      string   `json:"currency" gorm:"type:varchar(3)"`

	// Status-specific payload: offline guest info, maintenance
	// reason/priority or a blocking reason. Shape depends on Status.
	Detail datatypes.JSON `json:"detail"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsBlocking reports whether the status forbids new bookings on the day.
func IsBlocking(status string) bool {
	switch status {
	case DayBooked, DayOfflineBooked, DayMaintenance, DayBlocked, DayOutOfOrder:
		return true
	}
	return false
}

// Detail payload variants, one per non-available status.

type OfflineBookingDetail struct {
	GuestName  string `json:"guestName"`
	GuestPhone string `json:"guestPhone,omitempty"`
	Source     string `json:"source,omitempty"` // walk-in, phone, agency
	Note       string `json:"note,omitempty"`
}

type MaintenanceDetail struct {
	Reason   string `json:"reason"`
	Priority string `json:"priority,omitempty"` // low, medium, high
}

type BlockDetail struct {
	Reason string `json:"reason"`
}

// DayView is the materialized per-day state: persisted rows merged with
// synthesized defaults for days that have no row yet.
type DayView struct {
	Date           time.Time `json:"date"`
	Status         string    `json:"status"`
	AvailableUnits int       `json:"availableUnits"`
	TotalUnits     int       `json:"totalUnits"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	Persisted      bool      `json:"persisted"`
}
