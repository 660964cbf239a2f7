package service

import (
	"context"
	"errors"
	"log"

	"github.com/supplykingmv/vcard/internal/domain"
	"github.com/supplykingmv/vcard/internal/events"
	"github.com/supplykingmv/vcard/internal/vcard"
	"github.com/supplykingmv/vcard/internal/view"
)

var (
	ErrReadOnlyRole = errors.New("role cannot modify contacts")
	ErrNotFound     = errors.New("contact not found")
)

type ContactSvc struct {
	contacts ContactStore
	pub      Publisher // nil disables event publishing
}

func NewContactSvc(contacts ContactStore, pub Publisher) *ContactSvc {
	return &ContactSvc{contacts: contacts, pub: pub}
}

// List returns the viewer's visible scope, raw and unordered by the
// pipeline (callers wanting render order use View).
func (s *ContactSvc) List(ctx context.Context, viewer *domain.User) ([]domain.Contact, error) {
	return s.contacts.List(ctx, viewer.ID, viewer.Role.CanSeeAllContacts())
}

// View runs the full derivation pipeline over the viewer's scope.
func (s *ContactSvc) View(ctx context.Context, viewer *domain.User, q view.Query) ([]view.Group, error) {
	contacts, err := s.List(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return view.Derive(contacts, q, viewer), nil
}

// Get fetches one contact the viewer is allowed to see.
func (s *ContactSvc) Get(ctx context.Context, viewer *domain.User, id string) (*domain.Contact, error) {
	c, err := s.contacts.ByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !viewer.Role.CanSeeAllContacts() && c.UserID != viewer.ID {
		return nil, ErrNotFound
	}
	return c, nil
}

// Create stores a new contact owned by the actor and publishes the
// contact.added event for the notification fan-out. A publish failure
// never fails the create; the write already happened.
func (s *ContactSvc) Create(ctx context.Context, actor *domain.User, d domain.Draft) (*domain.Contact, error) {
	if !actor.Role.CanMutateContacts() {
		return nil, ErrReadOnlyRole
	}
	if d.Category == "" {
		d.Category = domain.CategoryWork
	}
	c := &domain.Contact{
		UserID:   actor.ID,
		Name:     d.Name,
		Title:    d.Title,
		Company:  d.Company,
		Email:    d.Email,
		Phone:    d.Phone,
		Category: d.Category,
		Notes:    d.Notes,
		Website:  d.Website,
		Address:  d.Address,
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	if s.pub != nil {
		ev := events.ContactAdded{
			ContactID:   c.ID,
			ContactName: c.Name,
			ActorID:     actor.ID,
			ActorName:   actor.Name,
		}
		if err := s.pub.PublishJSON(ctx, events.RKContactAdded, ev); err != nil {
			log.Printf("[contacts] publish %s: %v", events.RKContactAdded, err)
		}
	}
	return c, nil
}

// Import decodes scanned/pasted text (vCard or JSON) and creates the
// resulting contact. Decode failures come back untouched so handlers
// can show the reason inline.
func (s *ContactSvc) Import(ctx context.Context, actor *domain.User, text string) (*domain.Contact, error) {
	d, err := vcard.Decode(text)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, actor, d)
}

// Update replaces a contact's fields. Ownership rules match Get;
// viewers are rejected outright.
func (s *ContactSvc) Update(ctx context.Context, actor *domain.User, c *domain.Contact) (*domain.Contact, error) {
	if !actor.Role.CanMutateContacts() {
		return nil, ErrReadOnlyRole
	}
	existing, err := s.Get(ctx, actor, c.ID)
	if err != nil {
		return nil, err
	}
	c.UserID = existing.UserID
	c.DateAdded = existing.DateAdded
	if err := s.contacts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContactSvc) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !actor.Role.CanMutateContacts() {
		return ErrReadOnlyRole
	}
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}

// VCardText renders the contact as its shareable vCard payload.
func (s *ContactSvc) VCardText(ctx context.Context, viewer *domain.User, id string) (string, error) {
	c, err := s.Get(ctx, viewer, id)
	if err != nil {
		return "", err
	}
	return vcard.Encode(*c), nil
}
