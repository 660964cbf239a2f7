package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys published to the topic exchange.
const (
	RKContactAdded        = "contact.added"
	RKNotificationCreated = "notification.created"
)

// ContactAdded carries enough for the fan-out worker to compose the
// broadcast message without a store lookup.
type ContactAdded struct {
	ContactID   string `json:"contact_id"`
	ContactName string `json:"contact_name"`
	ActorID     string `json:"actor_id"`
	ActorName   string `json:"actor_name"`
}

type NotificationCreated struct {
	NotificationID string `json:"notification_id"`
	Message        string `json:"message"`
	SenderID       string `json:"sender_id"`
	SenderName     string `json:"sender_name"`
	Type           string `json:"type"`
}

func MustUnmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
