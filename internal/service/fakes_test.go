package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/supplykingmv/vcard/internal/domain"
)

// In-memory fakes for the store interfaces. Not concurrency safe; each
// test builds its own.

var errNotFound = errors.New("not found")

type memUsers struct {
	rows   map[string]*domain.User
	nextID atomic.Int64
	failOn string // method name that should error
}

func newMemUsers() *memUsers { return &memUsers{rows: map[string]*domain.User{}} }

func (m *memUsers) fail(method string) error {
	if m.failOn == method {
		return fmt.Errorf("forced %s failure", method)
	}
	return nil
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	if err := m.fail("Create"); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = fmt.Sprintf("u%d", m.nextID.Add(1))
	}
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) UpsertByEmail(_ context.Context, u *domain.User) error {
	for _, row := range m.rows {
		if row.Email == u.Email {
			return nil
		}
	}
	if u.ID == "" {
		u.ID = fmt.Sprintf("u%d", m.nextID.Add(1))
	}
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) ByID(_ context.Context, id string) (*domain.User, error) {
	if err := m.fail("ByID"); err != nil {
		return nil, err
	}
	u, ok := m.rows[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) ByEmail(_ context.Context, email string) (*domain.User, error) {
	if err := m.fail("ByEmail"); err != nil {
		return nil, err
	}
	email = strings.ToLower(email)
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (m *memUsers) UpdateFields(_ context.Context, id string, fields map[string]any) (*domain.User, error) {
	if err := m.fail("UpdateFields"); err != nil {
		return nil, err
	}
	u, ok := m.rows[id]
	if !ok {
		return nil, errNotFound
	}
	for k, v := range fields {
		switch k {
		case "password_hash":
			u.PasswordHash = v.(string)
		case "name":
			u.Name = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "website":
			u.Website = v.(string)
		case "address":
			u.Address = v.(string)
		case "company":
			u.Company = v.(string)
		case "title":
			u.Title = v.(string)
		case "role":
			u.Role = domain.Role(v.(string))
		case "is_active":
			u.IsActive = v.(bool)
		}
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) List(_ context.Context, query, role string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.rows {
		if role != "" && string(u.Role) != role {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(query)) &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(query)) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return errNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memUsers) AppendCleared(_ context.Context, userID, notificationID string) (*domain.User, error) {
	u, ok := m.rows[userID]
	if !ok {
		return nil, errNotFound
	}
	for _, id := range u.ClearedNotifications {
		if id == notificationID {
			cp := *u
			return &cp, nil
		}
	}
	u.ClearedNotifications = append(u.ClearedNotifications, notificationID)
	cp := *u
	return &cp, nil
}

type memContacts struct {
	rows   map[string]*domain.Contact
	nextID atomic.Int64
	failOn string
}

func newMemContacts() *memContacts { return &memContacts{rows: map[string]*domain.Contact{}} }

func (m *memContacts) fail(method string) error {
	if m.failOn == method {
		return fmt.Errorf("forced %s failure", method)
	}
	return nil
}

func (m *memContacts) Create(_ context.Context, c *domain.Contact) error {
	if err := m.fail("Create"); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = fmt.Sprintf("c%d", m.nextID.Add(1))
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memContacts) ByID(_ context.Context, id string) (*domain.Contact, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memContacts) List(_ context.Context, userID string, seeAll bool) ([]domain.Contact, error) {
	if err := m.fail("List"); err != nil {
		return nil, err
	}
	var out []domain.Contact
	for _, c := range m.rows {
		if seeAll || c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memContacts) Update(_ context.Context, c *domain.Contact) error {
	if _, ok := m.rows[c.ID]; !ok {
		return errNotFound
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memContacts) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return errNotFound
	}
	delete(m.rows, id)
	return nil
}

type memNotifications struct {
	rows   []domain.Notification
	nextID atomic.Int64
	failOn string
}

func (m *memNotifications) Create(_ context.Context, n *domain.Notification) error {
	if m.failOn == "Create" {
		return errors.New("forced Create failure")
	}
	if n.ID == "" {
		n.ID = fmt.Sprintf("n%d", m.nextID.Add(1))
	}
	m.rows = append(m.rows, *n)
	return nil
}

func (m *memNotifications) List(_ context.Context, limit int) ([]domain.Notification, error) {
	out := make([]domain.Notification, len(m.rows))
	copy(out, m.rows)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// capturePub records published AMQP events.
type capturePub struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (p *capturePub) PublishJSON(_ context.Context, key string, v any) error {
	if p.err != nil {
		return p.err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.keys = append(p.keys, key)
	p.bodies = append(p.bodies, b)
	return nil
}

// captureFeed records live-feed broadcasts.
type captureFeed struct {
	payloads [][]byte
	err      error
}

func (f *captureFeed) Publish(_ context.Context, v any) error {
	if f.err != nil {
		return f.err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.payloads = append(f.payloads, b)
	return nil
}

// captureMailer records password-reset sends.
type captureMailer struct {
	emails []string
	tokens []string
}

func (m *captureMailer) SendPasswordReset(email, token string) error {
	m.emails = append(m.emails, email)
	m.tokens = append(m.tokens, token)
	return nil
}
