package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplykingmv/vcard/internal/domain"
)

type ContactRepo struct{ db *gorm.DB }

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Contact{})
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.DateAdded.IsZero() {
		c.DateAdded = time.Now()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContactRepo) ByID(ctx context.Context, id string) (*domain.Contact, error) {
	var c domain.Contact
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the caller's visible scope: the whole collection for
// privileged roles, own rows otherwise.
func (r *ContactRepo) List(ctx context.Context, userID string, seeAll bool) ([]domain.Contact, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Contact{})
	if !seeAll {
		qb = qb.Where("user_id = ?", userID)
	}
	var out []domain.Contact
	if err := qb.Order("date_added DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the full row; edits replace every mutable field, which
// is the last-write-wins behavior the store had.
func (r *ContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Contact{}, "id = ?", id).Error
}
