package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Platform roles. Tourists book; owners manage their own inventory;
// staff and admin manage everything.
const (
	RoleTourist      = "tourist"
	RoleHotelOwner   = "hotel_owner"
	RoleVehicleOwner = "vehicle_owner"
	RoleGuide        = "guide"
	RoleStaff        = "staff"
	RoleAdmin        = "admin"
)

type User struct {
	gorm.Model
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Email       string         `json:"email" gorm:"uniqueIndex"`
	PhoneNumber string         `json:"phoneNumber"`
	AvatarURL   string         `json:"avatarURL"`
	Languages   datatypes.JSON `json:"languages"`
	IsVerified  *bool          `json:"isVerified"`
	Role        string         `json:"role" gorm:"type:varchar(20);default:tourist;index"`
}

// Custom JSON marshaling so Languages renders as an array instead of raw bytes
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Languages []string `json:"languages"`
		*Alias
	}{
		Languages: []string{},
		Alias:     (*Alias)(u),
	}

	if u.Languages != nil {
		var languages []string
		if err := json.Unmarshal(u.Languages, &languages); err == nil {
			aux.Languages = languages
		}
	}

	return json.Marshal(aux)
}

// IsStaff reports whether the role may act on any unit or booking.
func IsStaff(role string) bool {
	return role == RoleStaff || role == RoleAdmin
}
