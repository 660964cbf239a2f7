package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationContactAdd  = "contact_add"
	NotificationAdminCustom = "admin_custom"
)

// Notification is append-only: rows are created and read, never
// updated. A user "clears" one by recording its ID on their own row.
type Notification struct {
	ID             string                      `gorm:"primaryKey" json:"id"`
	Message        string                      `json:"message"`
	SenderID       string                      `gorm:"index" json:"senderId"`
	SenderName     string                      `json:"senderName"`
	Type           string                      `json:"type"`
	ExcludeUserIDs datatypes.JSONSlice[string] `json:"excludeUserIds"`
	CreatedAt      time.Time                   `json:"createdAt"`
}

// VisibleTo applies the visibility invariant: not excluded by the
// sender, not already cleared by the viewer.
func (n Notification) VisibleTo(u *User) bool {
	if u == nil {
		return false
	}
	for _, id := range n.ExcludeUserIDs {
		if id == u.ID {
			return false
		}
	}
	for _, id := range u.ClearedNotifications {
		if id == n.ID {
			return false
		}
	}
	return true
}
