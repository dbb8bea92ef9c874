package service

import (
	"context"
	"errors"
	"log"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/repository"
)

type GuestSvc struct {
	guests repository.GuestRepository
}

func NewGuestSvc(guests repository.GuestRepository) *GuestSvc {
	return &GuestSvc{guests: guests}
}

func (s *GuestSvc) ByID(ctx context.Context, id string) (*domain.Guest, error) {
	g, err := s.guests.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("guest", id)
		}
		return nil, domain.ErrInternal("load guest", err)
	}
	return g, nil
}

func (s *GuestSvc) ByEmail(ctx context.Context, email string) (*domain.Guest, error) {
	g, err := s.guests.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("guest", email)
		}
		return nil, domain.ErrInternal("load guest", err)
	}
	return g, nil
}

func (s *GuestSvc) List(ctx context.Context, page, size int) ([]domain.Guest, int64, error) {
	gs, total, err := s.guests.List(ctx, page, size)
	if err != nil {
		return nil, 0, domain.ErrInternal("list guests", err)
	}
	return gs, total, nil
}

func (s *GuestSvc) Create(ctx context.Context, guest *domain.Guest) (*domain.Guest, error) {
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, domain.ErrInternal("create guest", err)
	}
	log.Printf("[guest] created id=%s email=%s", guest.ID, guest.Email)
	return guest, nil
}

func (s *GuestSvc) Update(ctx context.Context, id string, in *domain.Guest) (*domain.Guest, error) {
	existing, err := s.guests.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("guest", id)
		}
		return nil, domain.ErrInternal("load guest", err)
	}

	existing.FirstName = in.FirstName
	existing.LastName = in.LastName
	existing.Email = in.Email
	existing.PhoneNumber = in.PhoneNumber
	existing.DocumentType = in.DocumentType
	existing.DocumentNumber = in.DocumentNumber
	existing.Nationality = in.Nationality

	if err := s.guests.Save(ctx, existing); err != nil {
		return nil, domain.ErrInternal("save guest", err)
	}
	log.Printf("[guest] updated id=%s", id)
	return existing, nil
}

func (s *GuestSvc) Delete(ctx context.Context, id string) error {
	if _, err := s.guests.ByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound("guest", id)
		}
		return domain.ErrInternal("load guest", err)
	}
	if err := s.guests.Delete(ctx, id); err != nil {
		return domain.ErrInternal("delete guest", err)
	}
	log.Printf("[guest] deleted id=%s", id)
	return nil
}
