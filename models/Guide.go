package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Guide is a tour guide profile. Guides are catalog entries referenced
// by tours; their own identity lives in the users table.
type Guide struct {
	gorm.Model
	UserID     uint           `json:"userID" gorm:"not null;uniqueIndex"`
	Bio        string         `json:"bio" gorm:"type:text"`
	Languages  datatypes.JSON `json:"languages"`
	Regions    datatypes.JSON `json:"regions"` // areas the guide covers
	DailyRate  float64        `json:"dailyRate"`
	Currency   string         `json:"currency" gorm:"type:varchar(3);default:LKR"`
	LicenseNo  string         `json:"licenseNo"`
	IsVerified bool           `json:"isVerified" gorm:"default:false"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:active;index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (g *Guide) MarshalJSON() ([]byte, error) {
	type Alias Guide
	aux := &struct {
		Languages []string `json:"languages"`
		Regions   []string `json:"regions"`
		*Alias
	}{
		Languages: []string{},
		Regions:   []string{},
		Alias:     (*Alias)(g),
	}

	if g.Languages != nil {
		var languages []string
		if err := json.Unmarshal(g.Languages, &languages); err == nil {
			aux.Languages = languages
		}
	}
	if g.Regions != nil {
		var regions []string
		if err := json.Unmarshal(g.Regions, &regions); err == nil {
			aux.Regions = regions
		}
	}

	return json.Marshal(aux)
}
