package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/supplykingmv/vcard/internal/domain"
	"github.com/supplykingmv/vcard/internal/events"
)

type NotificationSvc struct {
	notifications NotificationStore
	users         UserStore
	pub           Publisher   // AMQP fan-out, optional
	feed          Broadcaster // Redis live feed, optional
}

func NewNotificationSvc(notifications NotificationStore, users UserStore, pub Publisher, feed Broadcaster) *NotificationSvc {
	return &NotificationSvc{notifications: notifications, users: users, pub: pub, feed: feed}
}

// Create stores a notification and pushes it to the live feed and the
// fan-out exchange. Push failures are logged, not returned: the row is
// the source of truth and readers will still see it on next fetch.
func (s *NotificationSvc) Create(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	if err := s.notifications.Create(ctx, &n); err != nil {
		return nil, err
	}
	if s.feed != nil {
		if err := s.feed.Publish(ctx, n); err != nil {
			log.Printf("[notifications] feed publish: %v", err)
		}
	}
	if s.pub != nil {
		ev := events.NotificationCreated{
			NotificationID: n.ID,
			Message:        n.Message,
			SenderID:       n.SenderID,
			SenderName:     n.SenderName,
			Type:           n.Type,
		}
		if err := s.pub.PublishJSON(ctx, events.RKNotificationCreated, ev); err != nil {
			log.Printf("[notifications] publish %s: %v", events.RKNotificationCreated, err)
		}
	}
	return &n, nil
}

// BroadcastContactAdded is the system notification sent when someone
// adds a contact, excluding the actor from the recipients.
func (s *NotificationSvc) BroadcastContactAdded(ctx context.Context, actor *domain.User) (*domain.Notification, error) {
	return s.Create(ctx, domain.Notification{
		Message:        fmt.Sprintf("%s added a new contact.", actor.Name),
		SenderID:       actor.ID,
		SenderName:     actor.Name,
		Type:           domain.NotificationContactAdd,
		ExcludeUserIDs: []string{actor.ID},
	})
}

// VisibleFor lists the notifications the user has neither been
// excluded from nor cleared, newest first.
func (s *NotificationSvc) VisibleFor(ctx context.Context, u *domain.User, limit int) ([]domain.Notification, error) {
	all, err := s.notifications.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Notification, 0, len(all))
	for _, n := range all {
		if n.VisibleTo(u) {
			out = append(out, n)
		}
	}
	return out, nil
}

// Clear dismisses one notification for one user by appending to their
// cleared list; the notification row is untouched.
func (s *NotificationSvc) Clear(ctx context.Context, userID, notificationID string) (*domain.User, error) {
	return s.users.AppendCleared(ctx, userID, notificationID)
}

// Subscriber is the live-feed subscription surface (internal/feed.Feed
// satisfies it).
type Subscriber interface {
	Subscribe(ctx context.Context, fn func([]byte)) func()
}

// Live attaches fn to the notification stream via sub and returns the
// unsubscribe handle. Payloads that fail to decode are dropped.
func Live(ctx context.Context, sub Subscriber, fn func(domain.Notification)) func() {
	return sub.Subscribe(ctx, func(b []byte) {
		var n domain.Notification
		if err := json.Unmarshal(b, &n); err != nil {
			log.Printf("[notifications] bad live payload: %v", err)
			return
		}
		fn(n)
	})
}
