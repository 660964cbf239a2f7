package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
	RoleViewer     Role = "viewer"
)

// CanSeeAllContacts reports whether the role's contact scope is the
// whole collection rather than self-owned rows only. Viewer is
// deliberately included: viewers browse everything but cannot mutate.
func (r Role) CanSeeAllContacts() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Known reports whether r is one of the four defined roles.
func (r Role) Known() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

func (r Role) CanMutateContacts() bool {
	return r != RoleViewer
}

func (r Role) CanManageUsers() bool {
	return r == RoleSuperadmin || r == RoleAdmin
}

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         Role   `gorm:"index" json:"role"`
	IsActive     bool   `json:"isActive"`
	Phone        string `json:"phone,omitempty"`
	Website      string `json:"website,omitempty"`
	Address      string `json:"address,omitempty"`
	Company      string `json:"company,omitempty"`
	Title        string `json:"title,omitempty"`
	// Notification IDs this user has dismissed. Clearing never deletes
	// the notification row itself.
	ClearedNotifications datatypes.JSONSlice[string] `json:"clearedNotifications"`
	DateAdded            time.Time                   `json:"dateAdded"`
}
