package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/hotel-reservations/internal/domain"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *domain.Hotel) error
	Save(ctx context.Context, hotel *domain.Hotel) error
	Delete(ctx context.Context, id string) error
	ByID(ctx context.Context, id string) (*domain.Hotel, error)
	ByCity(ctx context.Context, city string) ([]domain.Hotel, error)
	SearchByName(ctx context.Context, name string) ([]domain.Hotel, error)
	ListPaged(ctx context.Context, page, size int) ([]domain.Hotel, error)
}

type HotelRepo struct{ db *gorm.DB }

func NewHotelRepo(db *gorm.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// Migrate creates the schema for every entity the service owns.
func (r *HotelRepo) Migrate() error {
	return r.db.AutoMigrate(
		&domain.Hotel{},
		&domain.Room{},
		&domain.Guest{},
		&domain.Reservation{},
	)
}

func (r *HotelRepo) Create(ctx context.Context, hotel *domain.Hotel) error {
	if hotel.ID == "" {
		hotel.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(hotel).Error
}

func (r *HotelRepo) Save(ctx context.Context, hotel *domain.Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

func (r *HotelRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Hotel{}, "id = ?", id).Error
}

func (r *HotelRepo) ByID(ctx context.Context, id string) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *HotelRepo) ByCity(ctx context.Context, city string) ([]domain.Hotel, error) {
	var out []domain.Hotel
	err := r.db.WithContext(ctx).Where("city = ?", city).Find(&out).Error
	return out, err
}

func (r *HotelRepo) SearchByName(ctx context.Context, name string) ([]domain.Hotel, error) {
	var out []domain.Hotel
	err := r.db.WithContext(ctx).Where("name LIKE ?", "%"+name+"%").Find(&out).Error
	return out, err
}

func (r *HotelRepo) ListPaged(ctx context.Context, page, size int) ([]domain.Hotel, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	var out []domain.Hotel
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(size).Offset(page * size).
		Find(&out).Error
	return out, err
}
