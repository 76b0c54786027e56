package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PermissionTemplate is a named set of permissions staff can assign to
// a role. Stored as rows, not process-wide state, so edits survive
// restarts and replicas agree.
type PermissionTemplate struct {
	gorm.Model
	Name        string         `json:"name" gorm:"not null;uniqueIndex"`
	Role        string         `json:"role" gorm:"type:varchar(20);not null;index"`
	Description string         `json:"description"`
	Permissions datatypes.JSON `json:"permissions"` // list of permission keys
	IsDefault   bool           `json:"isDefault" gorm:"default:false"`
}

func (p *PermissionTemplate) MarshalJSON() ([]byte, error) {
	type Alias PermissionTemplate
	aux := &struct {
		Permissions []string `json:"permissions"`
		*Alias
	}{
		Permissions: []string{},
		Alias:       (*Alias)(p),
	}

	if p.Permissions != nil {
		var perms []string
		if err := json.Unmarshal(p.Permissions, &perms); err == nil {
			aux.Permissions = perms
		}
	}

	return json.Marshal(aux)
}
