package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplykingmv/vcard/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.User{})
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.DateAdded.IsZero() {
		u.DateAdded = time.Now()
	}
	u.Email = strings.ToLower(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

// UpsertByEmail mirrors the auth identity into a metadata row on first
// sign-in, leaving an existing row's profile fields alone.
func (r *UserRepo) UpsertByEmail(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.DateAdded.IsZero() {
		u.DateAdded = time.Now()
	}
	u.Email = strings.ToLower(u.Email)
	return r.db.WithContext(ctx).
		Where("email = ?", u.Email).
		FirstOrCreate(u).Error
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(email)).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

func (r *UserRepo) List(ctx context.Context, query, role string) ([]domain.User, error) {
	qb := r.db.WithContext(ctx).Model(&domain.User{})
	if role != "" {
		qb = qb.Where("role = ?", strings.ToLower(role))
	}
	if q := strings.TrimSpace(query); q != "" {
		qb = qb.Where("(email ILIKE ? OR name ILIKE ?)", "%"+q+"%", "%"+q+"%")
	}
	var users []domain.User
	if err := qb.Order("date_added DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes only the user's metadata row; their contacts and any
// notifications they sent are left in place.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id).Error
}

// AppendCleared records a dismissed notification on the user's row.
// Appending twice is a no-op, so duplicate clear requests are safe.
func (r *UserRepo) AppendCleared(ctx context.Context, userID, notificationID string) (*domain.User, error) {
	u, err := r.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range u.ClearedNotifications {
		if id == notificationID {
			return u, nil
		}
	}
	u.ClearedNotifications = append(u.ClearedNotifications, notificationID)
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}
