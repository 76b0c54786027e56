package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tour is a guided tour listing. Capacity is seats per departure day;
// a departure books through the shared calendar as a single night.
type Tour struct {
	gorm.Model
	OperatorID         uint           `json:"operatorID" gorm:"not null;index"`
	GuideID            *uint          `json:"guideID" gorm:"index"`
	Title              string         `json:"title" gorm:"not null"`
	Description        string         `json:"description" gorm:"type:text"`
	Itinerary          datatypes.JSON `json:"itinerary"` // ordered day-by-day stops
	DurationDays       int            `json:"durationDays" gorm:"default:1"`
	Capacity           int            `json:"capacity" gorm:"not null;check:capacity >= 1"` // seats per departure
	PricePerSeat       float64        `json:"pricePerSeat" gorm:"not null"`
	Currency           string         `json:"currency" gorm:"type:varchar(3);default:LKR"`
	CancellationPolicy string         `json:"cancellationPolicy" gorm:"type:varchar(20);default:moderate"`
	Status             string         `json:"status" gorm:"type:varchar(20);default:active;index"`

	Operator *User  `json:"operator,omitempty" gorm:"foreignKey:OperatorID"`
	Guide    *Guide `json:"guide,omitempty" gorm:"foreignKey:GuideID"`
}

func (t *Tour) AsUnit() Unit {
	return Unit{
		Type:               UnitTypeTour,
		ID:                 t.ID,
		Name:               t.Title,
		OwnerID:            t.OperatorID,
		TotalUnits:         t.Capacity,
		BasePrice:          t.PricePerSeat,
		Currency:           t.Currency,
		Status:             t.Status,
		CancellationPolicy: t.CancellationPolicy,
	}
}
