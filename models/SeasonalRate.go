package models

import (
	"time"

	"gorm.io/gorm"
)

// SeasonalRate scales a unit's base price inside a date window.
// UnitID nil applies the rate to every unit of the type (e.g. peak
// season for all rooms). Windows are inclusive of both end days.
type SeasonalRate struct {
	gorm.Model
	Name       string    `json:"name" gorm:"not null"`
	UnitType   string    `json:"unitType" gorm:"size:12;not null;index"`
	UnitID     *uint     `json:"unitID" gorm:"index"`
	StartDate  time.Time `json:"startDate" gorm:"type:date;not null"`
	EndDate    time.Time `json:"endDate" gorm:"type:date;not null"`
	Multiplier float64   `json:"multiplier" gorm:"not null"` // 1.0 = base price
	IsActive   bool      `json:"isActive" gorm:"default:true;index"`
}

// AppliesTo reports whether the rate covers the given unit and day.
func (r *SeasonalRate) AppliesTo(unitType string, unitID uint, day time.Time) bool {
	if !r.IsActive || r.UnitType != unitType {
		return false
	}
	if r.UnitID != nil && *r.UnitID != unitID {
		return false
	}
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}
