package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/hotel-reservations/internal/domain"
)

var (
	// ErrOverlap reports a lost race or plain conflict on a room's dates.
	ErrOverlap = errors.New("room_overlapped")
	// ErrNotFound is the typed absence for normal lookups.
	ErrNotFound = errors.New("record_not_found")
)

// inactiveStatuses never block a room.
var inactiveStatuses = []domain.ReservationStatus{domain.StatusCancelled, domain.StatusExpired}

type ReservationRepository interface {
	// CreateWithNoOverlap inserts the reservation unless an active reservation
	// on the same room overlaps [CheckInDate, CheckOutDate); returns ErrOverlap.
	CreateWithNoOverlap(ctx context.Context, res *domain.Reservation) error
	// SaveWithNoOverlap persists changed dates with the same exclusion, ignoring
	// the reservation's own row.
	SaveWithNoOverlap(ctx context.Context, res *domain.Reservation) error
	Save(ctx context.Context, res *domain.Reservation) error
	ByID(ctx context.Context, id string) (*domain.Reservation, error)
	ByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error)
	ByGuest(ctx context.Context, guestID string) ([]domain.Reservation, error)
	ByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error)
	FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) ([]domain.Reservation, error)
	FindExpiredPending(ctx context.Context, before time.Time) ([]domain.Reservation, error)
	List(ctx context.Context, page, size int, guestID, roomID string) ([]domain.Reservation, int64, error)
}

type ReservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func overlapScope(tx *gorm.DB, roomID string, checkIn, checkOut time.Time, excludeID string) *gorm.DB {
	q := tx.Model(&domain.Reservation{}).
		Where("room_id = ? AND status NOT IN ?", roomID, inactiveStatuses).
		// half-open intervals: back-to-back stays do not conflict
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	return q
}

// lockRoom serializes the check-then-insert window per room for the rest of
// the transaction. Row locks cannot do this: the first two bookings for a
// room both see an empty candidate set and lock nothing. The advisory lock is
// postgres-only; other dialects serialize writers at the database level.
func lockRoom(tx *gorm.DB, roomID string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", roomID).Error
}

func (r *ReservationRepo) CreateWithNoOverlap(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, res.RoomID); err != nil {
			return err
		}

		var conflicts int64
		if err := overlapScope(tx, res.RoomID, res.CheckInDate, res.CheckOutDate, "").
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrOverlap
		}

		if res.ID == "" {
			res.ID = uuid.NewString()
		}
		return tx.Create(res).Error
	})
}

func (r *ReservationRepo) SaveWithNoOverlap(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, res.RoomID); err != nil {
			return err
		}

		var conflicts int64
		if err := overlapScope(tx, res.RoomID, res.CheckInDate, res.CheckOutDate, res.ID).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrOverlap
		}
		return tx.Save(res).Error
	})
}

func (r *ReservationRepo) Save(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ReservationRepo) ByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) ByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).First(&res, "confirmation_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) ByGuest(ctx context.Context, guestID string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("check_in_date ASC").
		Find(&out).Error
	return out, err
}

func (r *ReservationRepo) ByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&out).Error
	return out, err
}

func (r *ReservationRepo) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := overlapScope(r.db.WithContext(ctx), roomID, checkIn, checkOut, excludeID).Find(&out).Error
	return out, err
}

func (r *ReservationRepo) FindExpiredPending(ctx context.Context, before time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("status = ? AND check_in_date < ?", domain.StatusPending, before).
		Find(&out).Error
	return out, err
}

func (r *ReservationRepo) List(ctx context.Context, page, size int, guestID, roomID string) ([]domain.Reservation, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Reservation{})
	if guestID != "" {
		qb = qb.Where("guest_id = ?", guestID)
	}
	if roomID != "" {
		qb = qb.Where("room_id = ?", roomID)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Reservation
	if err := qb.Order("check_in_date ASC").Limit(size).Offset(page * size).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
