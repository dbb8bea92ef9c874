package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	StatusPending    ReservationStatus = "PENDING"
	StatusConfirmed  ReservationStatus = "CONFIRMED"
	StatusCheckedIn  ReservationStatus = "CHECKED_IN"
	StatusCheckedOut ReservationStatus = "CHECKED_OUT"
	StatusCancelled  ReservationStatus = "CANCELLED"
	StatusExpired    ReservationStatus = "EXPIRED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Reservation struct {
	ID               string            `gorm:"primaryKey"`
	ConfirmationCode string            `gorm:"uniqueIndex;not null"`
	CheckInDate      time.Time         `gorm:"index;not null"`
	CheckOutDate     time.Time         `gorm:"index;not null"`
	NumberOfGuests   int               `gorm:"not null"`
	TotalPrice       decimal.Decimal   `gorm:"type:numeric(10,2)"`
	Status           ReservationStatus `gorm:"index;not null"`
	PaymentStatus    PaymentStatus     `gorm:"not null"`
	SpecialRequests  string
	WeatherChecked   bool
	WeatherSummary   string
	GuestID          string `gorm:"index;not null"`
	RoomID           string `gorm:"index;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// transitions lists the legal next statuses; a status missing from the map is
// terminal. PENDING to EXPIRED is driven by the expiry sweep, not by guests.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusCancelled, StatusCheckedIn},
	StatusCheckedIn: {StatusCheckedOut},
}

func (s ReservationStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Transition moves the reservation to next or fails with InvalidStateTransition.
func (r *Reservation) Transition(next ReservationStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return ErrInvalidStateTransition(string(r.Status), string(next))
	}
	r.Status = next
	return nil
}

// Nights is the integer day count of the half-open [CheckInDate, CheckOutDate) stay.
func (r *Reservation) Nights() int64 {
	return DaysBetween(r.CheckInDate, r.CheckOutDate)
}

func DaysBetween(from, to time.Time) int64 {
	return int64(to.Truncate(24*time.Hour).Sub(from.Truncate(24*time.Hour)) / (24 * time.Hour))
}

const confirmationCodePrefix = "HTL-"

// NewConfirmationCode returns HTL- followed by 8 uppercase hex characters.
func NewConfirmationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return confirmationCodePrefix + strings.ToUpper(raw[:8])
}
