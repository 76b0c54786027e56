package models

import (
	"gorm.io/gorm"
)

// Vehicle is a rentable vehicle model; TotalUnits counts identical
// vehicles in the owner's fleet. BasePrice is a per-day rate.
type Vehicle struct {
	gorm.Model
	OwnerID            uint    `json:"ownerID" gorm:"not null;index"`
	Name               string  `json:"name" gorm:"not null"`
	VehicleType        string  `json:"vehicleType" gorm:"type:varchar(20);index"` // car, van, tuk_tuk, bus
	Seats              int     `json:"seats" gorm:"default:4"`
	WithDriver         bool    `json:"withDriver" gorm:"default:true"`
	TotalUnits         int     `json:"totalUnits" gorm:"not null;check:total_units >= 1"`
	BasePrice          float64 `json:"basePrice" gorm:"not null"`
	Currency           string  `json:"currency" gorm:"type:varchar(3);default:LKR"`
	CancellationPolicy string  `json:"cancellationPolicy" gorm:"type:varchar(20);default:flexible"`
	Status             string  `json:"status" gorm:"type:varchar(20);default:active;index"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (v *Vehicle) AsUnit() Unit {
	return Unit{
		Type:               UnitTypeVehicle,
		ID:                 v.ID,
		Name:               v.Name,
		OwnerID:            v.OwnerID,
		TotalUnits:         v.TotalUnits,
		BasePrice:          v.BasePrice,
		Currency:           v.Currency,
		Status:             v.Status,
		CancellationPolicy: v.CancellationPolicy,
	}
}
