package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/hotel-reservations/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	Save(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id string) error
	ByID(ctx context.Context, id string) (*domain.Room, error)
	ByHotel(ctx context.Context, hotelID string) ([]domain.Room, error)
	// FindAvailable lists a hotel's bookable rooms free over [checkIn, checkOut).
	FindAvailable(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]domain.Room, error)
}

type RoomRepo struct{ db *gorm.DB }

func NewRoomRepo(db *gorm.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

func (r *RoomRepo) Create(ctx context.Context, room *domain.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepo) Save(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Room{}, "id = ?", id).Error
}

func (r *RoomRepo) ByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepo) ByHotel(ctx context.Context, hotelID string) ([]domain.Room, error) {
	var out []domain.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("room_number ASC").
		Find(&out).Error
	return out, err
}

func (r *RoomRepo) FindAvailable(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]domain.Room, error) {
	tx := r.db.WithContext(ctx)
	taken := tx.Model(&domain.Reservation{}).
		Select("room_id").
		Where("status NOT IN ?", inactiveStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)

	var out []domain.Room
	err := tx.
		Where("hotel_id = ? AND is_available = ?", hotelID, true).
		Where("id NOT IN (?)", taken).
		Order("room_number ASC").
		Find(&out).Error
	return out, err
}
