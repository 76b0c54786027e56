package models

import (
	"gorm.io/gorm"
)

// Room is a hotel room type with a count of identical physical rooms.
// TotalUnits is the inventory the availability calendar snapshots per day.
type Room struct {
	gorm.Model
	HotelID     uint    `json:"hotelID" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description" gorm:"type:text"`
	MaxGuests   int     `json:"maxGuests" gorm:"default:2"`
	TotalUnits  int     `json:"totalUnits" gorm:"not null;check:total_units >= 1"`
	BasePrice   float64 `json:"basePrice" gorm:"not null"` // nightly rate
	Currency    string  `json:"currency" gorm:"type:varchar(3);default:LKR"`
	Status      string  `json:"status" gorm:"type:varchar(20);default:active;index"` // active, inactive, maintenance

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

// AsUnit builds the booking-core snapshot. Hotel must be preloaded for
// owner and cancellation policy.
func (r *Room) AsUnit() Unit {
	u := Unit{
		Type:       UnitTypeRoom,
		ID:         r.ID,
		Name:       r.Name,
		TotalUnits: r.TotalUnits,
		BasePrice:  r.BasePrice,
		Currency:   r.Currency,
		Status:     r.Status,
	}
	if r.Hotel != nil {
		u.OwnerID = r.Hotel.OwnerID
		u.CancellationPolicy = r.Hotel.CancellationPolicy
	}
	return u
}
