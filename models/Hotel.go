package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Hotel struct {
	gorm.Model
	OwnerID            uint           `json:"ownerID" gorm:"not null;index"`
	Name               string         `json:"name" gorm:"not null"`
	Description        string         `json:"description" gorm:"type:text"`
	AddressLine1       string         `json:"addressLine1"`
	City               string         `json:"city" gorm:"index"`
	Country            string         `json:"country"`
	Lat                float32        `json:"lat"`
	Lng                float32        `json:"lng"`
	StarRating         int            `json:"starRating"`
	Amenities          datatypes.JSON `json:"amenities"`
	CancellationPolicy string         `json:"cancellationPolicy" gorm:"type:varchar(20);default:flexible"` // flexible, moderate, strict
	Status             string         `json:"status" gorm:"type:varchar(20);default:active;index"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
	Owner *User  `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
