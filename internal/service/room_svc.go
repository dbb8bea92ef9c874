package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/repository"
	"github.com/you/hotel-reservations/pkg/cache"
	"github.com/you/hotel-reservations/pkg/config"
)

type RoomSvc struct {
	rooms  repository.RoomRepository
	hotels repository.HotelRepository
	cache  cache.Cache
	cfg    config.App
}

func NewRoomSvc(rooms repository.RoomRepository, hotels repository.HotelRepository, c cache.Cache, cfg config.App) *RoomSvc {
	return &RoomSvc{rooms: rooms, hotels: hotels, cache: c, cfg: cfg}
}

func (s *RoomSvc) ByID(ctx context.Context, id string) (*domain.Room, error) {
	key := cachePrefixRoom + id
	if r, ok, err := cache.GetJSON[domain.Room](ctx, s.cache, key); err == nil && ok {
		return &r, nil
	}

	r, err := s.rooms.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("room", id)
		}
		return nil, domain.ErrInternal("load room", err)
	}

	if err := cache.PutJSON(ctx, s.cache, key, r, s.cfg.CacheTTL()); err != nil {
		log.Printf("[room] cache put %s failed: %v", key, err)
	}
	return r, nil
}

func (s *RoomSvc) ByHotel(ctx context.Context, hotelID string) ([]domain.Room, error) {
	rs, err := s.rooms.ByHotel(ctx, hotelID)
	if err != nil {
		return nil, domain.ErrInternal("list rooms", err)
	}
	return rs, nil
}

// FindAvailable lists bookable rooms for a hotel and stay window. The result
// is cached under a parameter-derived key; it goes stale only until the TTL
// runs out, nothing invalidates it on writes.
func (s *RoomSvc) FindAvailable(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]domain.Room, error) {
	key := fmt.Sprintf("%s%s:%s:%s", cachePrefixAvailability, hotelID,
		checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
	if rs, ok, err := cache.GetJSON[[]domain.Room](ctx, s.cache, key); err == nil && ok {
		return rs, nil
	}

	rs, err := s.rooms.FindAvailable(ctx, hotelID, checkIn, checkOut)
	if err != nil {
		return nil, domain.ErrInternal("find available rooms", err)
	}
	if err := cache.PutJSON(ctx, s.cache, key, rs, s.cfg.CacheTTL()); err != nil {
		log.Printf("[room] cache put %s failed: %v", key, err)
	}
	return rs, nil
}

func (s *RoomSvc) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if _, err := s.hotels.ByID(ctx, room.HotelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("hotel", room.HotelID)
		}
		return nil, domain.ErrInternal("load hotel", err)
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, domain.ErrInternal("create room", err)
	}
	log.Printf("[room] created id=%s number=%s", room.ID, room.RoomNumber)
	return room, nil
}

func (s *RoomSvc) Update(ctx context.Context, id string, in *domain.Room) (*domain.Room, error) {
	existing, err := s.rooms.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("room", id)
		}
		return nil, domain.ErrInternal("load room", err)
	}

	existing.RoomNumber = in.RoomNumber
	existing.RoomType = in.RoomType
	existing.PricePerNight = in.PricePerNight
	existing.MaxOccupancy = in.MaxOccupancy
	existing.Description = in.Description
	existing.IsAvailable = in.IsAvailable
	existing.FloorNumber = in.FloorNumber

	if err := s.rooms.Save(ctx, existing); err != nil {
		return nil, domain.ErrInternal("save room", err)
	}
	s.invalidate(ctx, id)
	log.Printf("[room] updated id=%s", id)
	return existing, nil
}

func (s *RoomSvc) Delete(ctx context.Context, id string) error {
	if _, err := s.rooms.ByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound("room", id)
		}
		return domain.ErrInternal("load room", err)
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return domain.ErrInternal("delete room", err)
	}
	s.invalidate(ctx, id)
	log.Printf("[room] deleted id=%s", id)
	return nil
}

func (s *RoomSvc) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cachePrefixRoom+id); err != nil {
		log.Printf("[room] cache delete %s failed: %v", id, err)
	}
}
