package service

import (
	"context"
	"errors"
	"strings"

	"github.com/supplykingmv/vcard/internal/domain"
)

var (
	ErrDeleteSelf  = errors.New("cannot delete your own account")
	ErrUnknownRole = errors.New("unknown role")
)

type UserSvc struct{ users UserStore }

func NewUserSvc(users UserStore) *UserSvc { return &UserSvc{users: users} }

func (s *UserSvc) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.ByID(ctx, id)
}

func (s *UserSvc) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.ByEmail(ctx, email)
}

func (s *UserSvc) List(ctx context.Context, query, role string) ([]domain.User, error) {
	return s.users.List(ctx, query, role)
}

// ProfileUpdate is the self-service profile edit. Email is identity
// and not editable here.
type ProfileUpdate struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Address string `json:"address"`
	Company string `json:"company"`
	Title   string `json:"title"`
}

// Validate returns per-field messages; an empty map means the update
// may be submitted.
func (p ProfileUpdate) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "Name is required"
	}
	if p.Website != "" && !strings.Contains(p.Website, ".") {
		errs["website"] = "Enter a valid website"
	}
	return errs
}

func (s *UserSvc) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (*domain.User, error) {
	return s.users.UpdateFields(ctx, id, map[string]any{
		"name":    strings.TrimSpace(p.Name),
		"phone":   p.Phone,
		"website": p.Website,
		"address": p.Address,
		"company": p.Company,
		"title":   p.Title,
	})
}

// AdminUpdate lets a privileged user change role/active state along
// with the profile fields. Keys use the same casing the API serializes
// with; only non-empty fields are applied, and a role outside the
// defined set is rejected before anything is written.
func (s *UserSvc) AdminUpdate(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	clean := map[string]any{}
	for k, v := range fields {
		switch k {
		case "name", "phone", "website", "address", "company", "title":
			if sv, ok := v.(string); ok && sv != "" {
				clean[k] = sv
			}
		case "role":
			if sv, ok := v.(string); ok && sv != "" {
				if !domain.Role(sv).Known() {
					return nil, ErrUnknownRole
				}
				clean[k] = sv
			}
		case "isActive":
			if b, ok := v.(bool); ok {
				clean["is_active"] = b
			}
		}
	}
	if len(clean) == 0 {
		return s.users.ByID(ctx, id)
	}
	return s.users.UpdateFields(ctx, id, clean)
}

// Delete removes the metadata row only, and never the caller's own.
func (s *UserSvc) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrDeleteSelf
	}
	return s.users.Delete(ctx, id)
}

// EnsureSeedAdmin mirrors a bootstrap superadmin row so a fresh
// deployment has a way in. No-op when the email already exists.
func (s *UserSvc) EnsureSeedAdmin(ctx context.Context, email, name, passwordHash string) error {
	if email == "" {
		return nil
	}
	return s.users.UpsertByEmail(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         domain.RoleSuperadmin,
		IsActive:     true,
	})
}
