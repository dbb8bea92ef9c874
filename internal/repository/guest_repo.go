package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/hotel-reservations/internal/domain"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *domain.Guest) error
	Save(ctx context.Context, guest *domain.Guest) error
	Delete(ctx context.Context, id string) error
	ByID(ctx context.Context, id string) (*domain.Guest, error)
	ByEmail(ctx context.Context, email string) (*domain.Guest, error)
	List(ctx context.Context, page, size int) ([]domain.Guest, int64, error)
}

type GuestRepo struct{ db *gorm.DB }

func NewGuestRepo(db *gorm.DB) *GuestRepo {
	return &GuestRepo{db: db}
}

func (r *GuestRepo) Create(ctx context.Context, guest *domain.Guest) error {
	if guest.ID == "" {
		guest.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *GuestRepo) Save(ctx context.Context, guest *domain.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

func (r *GuestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Guest{}, "id = ?", id).Error
}

func (r *GuestRepo) ByID(ctx context.Context, id string) (*domain.Guest, error) {
	var g domain.Guest
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepo) ByEmail(ctx context.Context, email string) (*domain.Guest, error) {
	var g domain.Guest
	if err := r.db.WithContext(ctx).First(&g, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepo) List(ctx context.Context, page, size int) ([]domain.Guest, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Guest{})
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Guest
	if err := qb.Order("last_name ASC").Limit(size).Offset(page * size).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
