package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/repository"
	"github.com/you/hotel-reservations/pkg/cache"
	"github.com/you/hotel-reservations/pkg/config"
)

type HotelSvc struct {
	hotels repository.HotelRepository
	cache  cache.Cache
	cfg    config.App
}

func NewHotelSvc(hotels repository.HotelRepository, c cache.Cache, cfg config.App) *HotelSvc {
	return &HotelSvc{hotels: hotels, cache: c, cfg: cfg}
}

func (s *HotelSvc) ByID(ctx context.Context, id string) (*domain.Hotel, error) {
	key := cachePrefixHotel + id
	if h, ok, err := cache.GetJSON[domain.Hotel](ctx, s.cache, key); err == nil && ok {
		return &h, nil
	}

	h, err := s.hotels.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("hotel", id)
		}
		return nil, domain.ErrInternal("load hotel", err)
	}

	if err := cache.PutJSON(ctx, s.cache, key, h, s.cfg.CacheTTL()); err != nil {
		log.Printf("[hotel] cache put %s failed: %v", key, err)
	}
	return h, nil
}

func (s *HotelSvc) List(ctx context.Context, page, size int) ([]domain.Hotel, error) {
	key := fmt.Sprintf("%sall:%d:%d", cachePrefixHotel, page, size)
	if hs, ok, err := cache.GetJSON[[]domain.Hotel](ctx, s.cache, key); err == nil && ok {
		return hs, nil
	}

	hs, err := s.hotels.ListPaged(ctx, page, size)
	if err != nil {
		return nil, domain.ErrInternal("list hotels", err)
	}
	if err := cache.PutJSON(ctx, s.cache, key, hs, s.cfg.CacheTTL()); err != nil {
		log.Printf("[hotel] cache put %s failed: %v", key, err)
	}
	return hs, nil
}

func (s *HotelSvc) ByCity(ctx context.Context, city string) ([]domain.Hotel, error) {
	hs, err := s.hotels.ByCity(ctx, city)
	if err != nil {
		return nil, domain.ErrInternal("list hotels", err)
	}
	return hs, nil
}

func (s *HotelSvc) SearchByName(ctx context.Context, name string) ([]domain.Hotel, error) {
	hs, err := s.hotels.SearchByName(ctx, name)
	if err != nil {
		return nil, domain.ErrInternal("search hotels", err)
	}
	return hs, nil
}

func (s *HotelSvc) Create(ctx context.Context, hotel *domain.Hotel) (*domain.Hotel, error) {
	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, domain.ErrInternal("create hotel", err)
	}
	log.Printf("[hotel] created id=%s name=%s", hotel.ID, hotel.Name)
	return hotel, nil
}

func (s *HotelSvc) Update(ctx context.Context, id string, in *domain.Hotel) (*domain.Hotel, error) {
	existing, err := s.hotels.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("hotel", id)
		}
		return nil, domain.ErrInternal("load hotel", err)
	}

	existing.Name = in.Name
	existing.Address = in.Address
	existing.City = in.City
	existing.Country = in.Country
	existing.StarRating = in.StarRating
	existing.Description = in.Description
	existing.Latitude = in.Latitude
	existing.Longitude = in.Longitude
	existing.PhoneNumber = in.PhoneNumber
	existing.Email = in.Email

	if err := s.hotels.Save(ctx, existing); err != nil {
		return nil, domain.ErrInternal("save hotel", err)
	}
	s.invalidate(ctx, id)
	log.Printf("[hotel] updated id=%s", id)
	return existing, nil
}

func (s *HotelSvc) Delete(ctx context.Context, id string) error {
	if _, err := s.hotels.ByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound("hotel", id)
		}
		return domain.ErrInternal("load hotel", err)
	}
	if err := s.hotels.Delete(ctx, id); err != nil {
		return domain.ErrInternal("delete hotel", err)
	}
	s.invalidate(ctx, id)
	log.Printf("[hotel] deleted id=%s", id)
	return nil
}

func (s *HotelSvc) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cachePrefixHotel+id); err != nil {
		log.Printf("[hotel] cache delete %s failed: %v", id, err)
	}
}
