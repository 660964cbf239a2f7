package service

import (
	"context"

	"github.com/supplykingmv/vcard/internal/domain"
)

// Store interfaces cover exactly what the services call; the gorm
// repos satisfy them, tests substitute in-memory fakes.

type ContactStore interface {
	Create(ctx context.Context, c *domain.Contact) error
	ByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, userID string, seeAll bool) ([]domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	UpsertByEmail(ctx context.Context, u *domain.User) error
	ByID(ctx context.Context, id string) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	List(ctx context.Context, query, role string) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	AppendCleared(ctx context.Context, userID, notificationID string) (*domain.User, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, limit int) ([]domain.Notification, error)
}

// Publisher is the AMQP fan-out side (pkg/mq.Publisher).
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Broadcaster is the live-feed side (internal/feed.Feed).
type Broadcaster interface {
	Publish(ctx context.Context, v any) error
}
