package service

import (
	"context"
	"errors"
	"testing"

	"github.com/supplykingmv/vcard/internal/domain"
)

func TestProfileUpdateValidate(t *testing.T) {
	tests := []struct {
		name       string
		update     ProfileUpdate
		wantFields []string
	}{
		{name: "valid", update: ProfileUpdate{Name: "Ada", Website: "ada.example.com"}},
		{name: "name required", update: ProfileUpdate{Name: "   "}, wantFields: []string{"name"}},
		{name: "bad website", update: ProfileUpdate{Name: "Ada", Website: "nodots"}, wantFields: []string{"website"}},
		{name: "empty website ok", update: ProfileUpdate{Name: "Ada"}},
		{
			name:       "multiple failures",
			update:     ProfileUpdate{Name: "", Website: "x"},
			wantFields: []string{"name", "website"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.update.Validate()
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %v, want errors on %v", errs, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if errs[f] == "" {
					t.Errorf("missing message for field %s", f)
				}
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	users := newMemUsers()
	u := &domain.User{Email: "a@x.com", Name: "Old", Role: domain.RoleEditor, IsActive: true}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	svc := NewUserSvc(users)

	got, err := svc.UpdateProfile(context.Background(), u.ID, ProfileUpdate{
		Name:    "  New Name  ",
		Phone:   "555",
		Company: "Acme",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("name = %q, want trimmed", got.Name)
	}
	if got.Phone != "555" || got.Company != "Acme" {
		t.Errorf("got %+v", got)
	}
	if got.Email != "a@x.com" {
		t.Error("email must never change through a profile update")
	}
}

func TestAdminUpdate(t *testing.T) {
	newSvc := func(t *testing.T) (*UserSvc, *domain.User) {
		t.Helper()
		users := newMemUsers()
		u := &domain.User{Email: "a@x.com", Name: "Name", Role: domain.RoleViewer, IsActive: true}
		if err := users.Create(context.Background(), u); err != nil {
			t.Fatal(err)
		}
		return NewUserSvc(users), u
	}

	t.Run("role and active state", func(t *testing.T) {
		svc, u := newSvc(t)
		got, err := svc.AdminUpdate(context.Background(), u.ID, map[string]any{
			"role":     "editor",
			"isActive": false,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Role != domain.RoleEditor {
			t.Errorf("role = %s", got.Role)
		}
		if got.IsActive {
			t.Error("isActive not applied")
		}
	})

	t.Run("unknown role rejected before writing", func(t *testing.T) {
		svc, u := newSvc(t)
		_, err := svc.AdminUpdate(context.Background(), u.ID, map[string]any{
			"role": "overlord",
			"name": "Changed",
		})
		if !errors.Is(err, ErrUnknownRole) {
			t.Fatalf("err = %v, want ErrUnknownRole", err)
		}
		got, err := svc.GetByID(context.Background(), u.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "Name" || got.Role != domain.RoleViewer {
			t.Errorf("rejected update still wrote fields: %+v", got)
		}
	})

	t.Run("empty strings ignored", func(t *testing.T) {
		svc, u := newSvc(t)
		got, err := svc.AdminUpdate(context.Background(), u.ID, map[string]any{
			"name": "",
			"role": "",
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Name != "Name" || got.Role != domain.RoleViewer {
			t.Errorf("blank fields applied: %+v", got)
		}
	})

	t.Run("unknown keys dropped", func(t *testing.T) {
		svc, u := newSvc(t)
		got, err := svc.AdminUpdate(context.Background(), u.ID, map[string]any{
			"password_hash": "sneaky",
			"email":         "new@x.com",
			"is_active":     false, // column casing is not part of the contract
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Email != "a@x.com" || got.PasswordHash != "" {
			t.Errorf("protected fields changed: %+v", got)
		}
		if !got.IsActive {
			t.Error("column-cased key must be ignored")
		}
	})
}

func TestUserDelete(t *testing.T) {
	users := newMemUsers()
	a := &domain.User{Email: "a@x.com", Role: domain.RoleAdmin, IsActive: true}
	b := &domain.User{Email: "b@x.com", Role: domain.RoleViewer, IsActive: true}
	for _, u := range []*domain.User{a, b} {
		if err := users.Create(context.Background(), u); err != nil {
			t.Fatal(err)
		}
	}
	svc := NewUserSvc(users)

	if err := svc.Delete(context.Background(), a.ID, a.ID); !errors.Is(err, ErrDeleteSelf) {
		t.Fatalf("self delete err = %v, want ErrDeleteSelf", err)
	}
	if err := svc.Delete(context.Background(), a.ID, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), b.ID); err == nil {
		t.Error("deleted user still readable")
	}
}

func TestEnsureSeedAdmin(t *testing.T) {
	users := newMemUsers()
	svc := NewUserSvc(users)
	ctx := context.Background()

	if err := svc.EnsureSeedAdmin(ctx, "", "x", "hash"); err != nil {
		t.Fatalf("empty email must be a no-op: %v", err)
	}
	if len(users.rows) != 0 {
		t.Fatal("no-op created a row")
	}

	if err := svc.EnsureSeedAdmin(ctx, "root@x.com", "Super Admin", "hash"); err != nil {
		t.Fatal(err)
	}
	u, err := svc.GetByEmail(ctx, "root@x.com")
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	if u.Role != domain.RoleSuperadmin || !u.IsActive {
		t.Errorf("seeded %+v", u)
	}

	// second boot leaves the existing row alone
	if err := svc.EnsureSeedAdmin(ctx, "root@x.com", "Other", "other-hash"); err != nil {
		t.Fatal(err)
	}
	again, err := svc.GetByEmail(ctx, "root@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if again.Name != "Super Admin" {
		t.Errorf("seed overwrote existing row: %+v", again)
	}
}
