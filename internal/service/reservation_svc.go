package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/events"
	"github.com/you/hotel-reservations/internal/repository"
	"github.com/you/hotel-reservations/pkg/cache"
	"github.com/you/hotel-reservations/pkg/config"
)

// EventPublisher delivers reservation events; the service never blocks on or
// retries a failed delivery.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type CreateReservationInput struct {
	GuestID         string
	RoomID          string
	CheckIn         time.Time
	CheckOut        time.Time
	NumberOfGuests  int
	SpecialRequests string
}

type UpdateReservationInput struct {
	CheckIn         *time.Time
	CheckOut        *time.Time
	NumberOfGuests  *int
	SpecialRequests *string
}

// ReservationSvc orchestrates the booking use cases: date policy, overlap
// check, weather gate, pricing, persistence and event emission.
type ReservationSvc struct {
	reservations repository.ReservationRepository
	rooms        repository.RoomRepository
	guests       repository.GuestRepository
	hotels       repository.HotelRepository
	weather      *WeatherSvc
	cache        cache.Cache
	pub          EventPublisher
	cfg          config.App
	now          func() time.Time
}

func NewReservationSvc(
	reservations repository.ReservationRepository,
	rooms repository.RoomRepository,
	guests repository.GuestRepository,
	hotels repository.HotelRepository,
	weatherSvc *WeatherSvc,
	c cache.Cache,
	pub EventPublisher,
	cfg config.App,
) *ReservationSvc {
	return &ReservationSvc{
		reservations: reservations,
		rooms:        rooms,
		guests:       guests,
		hotels:       hotels,
		weather:      weatherSvc,
		cache:        c,
		pub:          pub,
		cfg:          cfg,
		now:          time.Now,
	}
}

// WithClock overrides the service clock; refund amounts and the expiry sweep
// depend on it.
func (s *ReservationSvc) WithClock(now func() time.Time) *ReservationSvc {
	s.now = now
	return s
}

func (s *ReservationSvc) Create(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error) {
	if err := validateDateRange(in.CheckIn, in.CheckOut, s.cfg.MaxReservationDays); err != nil {
		return nil, err
	}

	guest, err := s.guests.ByID(ctx, in.GuestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("guest", in.GuestID)
		}
		return nil, domain.ErrInternal("load guest", err)
	}

	room, err := s.rooms.ByID(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("room", in.RoomID)
		}
		return nil, domain.ErrInternal("load room", err)
	}

	overlapping, err := s.reservations.FindOverlapping(ctx, room.ID, in.CheckIn, in.CheckOut, "")
	if err != nil {
		return nil, domain.ErrInternal("check availability", err)
	}
	if len(overlapping) > 0 {
		return nil, domain.ErrRoomNotAvailable(room.ID)
	}

	hotel, err := s.hotels.ByID(ctx, room.HotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("hotel", room.HotelID)
		}
		return nil, domain.ErrInternal("load hotel", err)
	}

	assessment, err := s.weather.Assess(ctx, hotel.Latitude, hotel.Longitude, in.CheckIn)
	if err != nil {
		return nil, err
	}
	if !assessment.SuitableForTravel {
		return nil, domain.ErrWeatherCheckFailed(fmt.Sprintf(
			"weather is not suitable for travel: %s (temp: %.1f°C, wind: %.1f km/h)",
			assessment.Description, assessment.Temperature, assessment.WindSpeed), nil)
	}

	res := &domain.Reservation{
		ConfirmationCode: domain.NewConfirmationCode(),
		CheckInDate:      in.CheckIn,
		CheckOutDate:     in.CheckOut,
		NumberOfGuests:   in.NumberOfGuests,
		TotalPrice:       TotalPrice(room.PricePerNight, in.CheckIn, in.CheckOut),
		Status:           domain.StatusPending,
		PaymentStatus:    domain.PaymentPending,
		SpecialRequests:  in.SpecialRequests,
		WeatherChecked:   true,
		WeatherSummary: fmt.Sprintf("%s | Temp: %.1f°C | Wind: %.1f km/h",
			assessment.Description, assessment.Temperature, assessment.WindSpeed),
		GuestID: guest.ID,
		RoomID:  room.ID,
	}

	// The insert re-checks overlap under a row lock; a lost race surfaces here.
	if err := s.reservations.CreateWithNoOverlap(ctx, res); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, domain.ErrRoomNotAvailable(room.ID)
		}
		return nil, domain.ErrInternal("create reservation", err)
	}

	log.Printf("[reservation] created id=%s code=%s", res.ID, res.ConfirmationCode)
	s.publish(ctx, events.TypeCreated, res, guest.Email)
	return res, nil
}

func (s *ReservationSvc) Confirm(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.StatusConfirmed, events.TypeConfirmed)
}

func (s *ReservationSvc) CheckIn(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.StatusCheckedIn, events.TypeCheckedIn)
}

func (s *ReservationSvc) CheckOut(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.StatusCheckedOut, events.TypeCheckedOut)
}

// Cancel transitions to CANCELLED and replaces the total price with the
// refund amount under the cancellation policy.
func (s *ReservationSvc) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := res.Transition(domain.StatusCancelled); err != nil {
		return nil, err
	}

	res.TotalPrice = RefundAmount(res.TotalPrice, res.CheckInDate, s.cfg.CancellationHoursBefore, s.now())

	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, domain.ErrInternal("save reservation", err)
	}
	s.invalidate(ctx, res.ID)
	log.Printf("[reservation] cancelled id=%s code=%s refund=%s", res.ID, res.ConfirmationCode, res.TotalPrice)
	s.publish(ctx, events.TypeCancelled, res, "")
	return res, nil
}

func (s *ReservationSvc) transition(ctx context.Context, id string, next domain.ReservationStatus, evType events.EventType) (*domain.Reservation, error) {
	res, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := res.Transition(next); err != nil {
		return nil, err
	}
	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, domain.ErrInternal("save reservation", err)
	}
	s.invalidate(ctx, res.ID)
	log.Printf("[reservation] %s id=%s code=%s", next, res.ID, res.ConfirmationCode)
	s.publish(ctx, evType, res, "")
	return res, nil
}

func (s *ReservationSvc) Update(ctx context.Context, id string, in UpdateReservationInput) (*domain.Reservation, error) {
	res, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status.Terminal() {
		return nil, domain.ErrInvalidStateTransition(string(res.Status), string(res.Status))
	}

	datesChanged := in.CheckIn != nil && in.CheckOut != nil
	if datesChanged {
		if err := validateDateRange(*in.CheckIn, *in.CheckOut, s.cfg.MaxReservationDays); err != nil {
			return nil, err
		}
		overlapping, err := s.reservations.FindOverlapping(ctx, res.RoomID, *in.CheckIn, *in.CheckOut, res.ID)
		if err != nil {
			return nil, domain.ErrInternal("check availability", err)
		}
		if len(overlapping) > 0 {
			return nil, domain.ErrRoomNotAvailable(res.RoomID)
		}

		room, err := s.rooms.ByID(ctx, res.RoomID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, domain.ErrNotFound("room", res.RoomID)
			}
			return nil, domain.ErrInternal("load room", err)
		}
		res.CheckInDate = *in.CheckIn
		res.CheckOutDate = *in.CheckOut
		res.TotalPrice = TotalPrice(room.PricePerNight, *in.CheckIn, *in.CheckOut)
	}

	if in.NumberOfGuests != nil {
		res.NumberOfGuests = *in.NumberOfGuests
	}
	if in.SpecialRequests != nil {
		res.SpecialRequests = *in.SpecialRequests
	}

	if datesChanged {
		err = s.reservations.SaveWithNoOverlap(ctx, res)
	} else {
		err = s.reservations.Save(ctx, res)
	}
	if err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, domain.ErrRoomNotAvailable(res.RoomID)
		}
		return nil, domain.ErrInternal("save reservation", err)
	}

	s.invalidate(ctx, res.ID)
	log.Printf("[reservation] updated id=%s code=%s", res.ID, res.ConfirmationCode)
	s.publish(ctx, events.TypeUpdated, res, "")
	return res, nil
}

// ByID reads through the cache; a hit skips the repository entirely.
func (s *ReservationSvc) ByID(ctx context.Context, id string) (*domain.Reservation, error) {
	key := cachePrefixReservation + id
	if res, ok, err := cache.GetJSON[domain.Reservation](ctx, s.cache, key); err == nil && ok {
		return &res, nil
	}

	res, err := s.reservations.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("reservation", id)
		}
		return nil, domain.ErrInternal("load reservation", err)
	}

	if err := cache.PutJSON(ctx, s.cache, key, res, s.cfg.CacheTTL()); err != nil {
		log.Printf("[reservation] cache put %s failed: %v", key, err)
	}
	return res, nil
}

func (s *ReservationSvc) ByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error) {
	res, err := s.reservations.ByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound("reservation", code)
		}
		return nil, domain.ErrInternal("load reservation", err)
	}
	return res, nil
}

func (s *ReservationSvc) ByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	out, err := s.reservations.ByStatus(ctx, status)
	if err != nil {
		return nil, domain.ErrInternal("list reservations", err)
	}
	return out, nil
}

func (s *ReservationSvc) ByGuest(ctx context.Context, guestID string) ([]domain.Reservation, error) {
	out, err := s.reservations.ByGuest(ctx, guestID)
	if err != nil {
		return nil, domain.ErrInternal("list reservations", err)
	}
	return out, nil
}

func (s *ReservationSvc) List(ctx context.Context, page, size int, guestID, roomID string) ([]domain.Reservation, int64, error) {
	out, total, err := s.reservations.List(ctx, page, size, guestID, roomID)
	if err != nil {
		return nil, 0, domain.ErrInternal("list reservations", err)
	}
	return out, total, nil
}

// ExpirePending moves PENDING reservations whose check-in day has passed to
// EXPIRED. Driven by an external trigger, not a scheduler inside the engine.
func (s *ReservationSvc) ExpirePending(ctx context.Context) (int, error) {
	stale, err := s.reservations.FindExpiredPending(ctx, startOfDay(s.now()))
	if err != nil {
		return 0, domain.ErrInternal("find expired reservations", err)
	}

	expired := 0
	for i := range stale {
		res := &stale[i]
		if err := res.Transition(domain.StatusExpired); err != nil {
			continue
		}
		if err := s.reservations.Save(ctx, res); err != nil {
			log.Printf("[reservation] expire id=%s failed: %v", res.ID, err)
			continue
		}
		s.invalidate(ctx, res.ID)
		s.publish(ctx, events.TypeExpired, res, "")
		expired++
	}
	return expired, nil
}

func (s *ReservationSvc) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cachePrefixReservation+id); err != nil {
		log.Printf("[reservation] cache delete %s failed: %v", id, err)
	}
}

// publish emits the event after a successful persist only; failures are
// logged and never propagated.
func (s *ReservationSvc) publish(ctx context.Context, t events.EventType, res *domain.Reservation, guestEmail string) {
	if guestEmail == "" {
		if g, err := s.guests.ByID(ctx, res.GuestID); err == nil {
			guestEmail = g.Email
		}
	}
	ev := events.ReservationEvent{
		Type:             t,
		ReservationID:    res.ID,
		ConfirmationCode: res.ConfirmationCode,
		GuestID:          res.GuestID,
		GuestEmail:       guestEmail,
		RoomID:           res.RoomID,
		CheckIn:          res.CheckInDate.Format("2006-01-02"),
		CheckOut:         res.CheckOutDate.Format("2006-01-02"),
		TotalPrice:       res.TotalPrice.StringFixed(2),
		Status:           string(res.Status),
		Timestamp:        s.now(),
	}
	if err := s.pub.PublishJSON(ctx, t.RoutingKey(), ev); err != nil {
		log.Printf("[reservation] publish %s failed: %v", t.RoutingKey(), err)
	}
}
