package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Routing keys on the reservation exchange, one per lifecycle event.
const (
	RKReservationCreated    = "reservation.created"
	RKReservationConfirmed  = "reservation.confirmed"
	RKReservationCancelled  = "reservation.cancelled"
	RKReservationCheckedIn  = "reservation.checked_in"
	RKReservationCheckedOut = "reservation.checked_out"
	RKReservationUpdated    = "reservation.updated"
	RKReservationExpired    = "reservation.expired"
)

type EventType string

const (
	TypeCreated    EventType = "CREATED"
	TypeConfirmed  EventType = "CONFIRMED"
	TypeCancelled  EventType = "CANCELLED"
	TypeCheckedIn  EventType = "CHECKED_IN"
	TypeCheckedOut EventType = "CHECKED_OUT"
	TypeUpdated    EventType = "UPDATED"
	TypeExpired    EventType = "EXPIRED"
)

var routingKeys = map[EventType]string{
	TypeCreated:    RKReservationCreated,
	TypeConfirmed:  RKReservationConfirmed,
	TypeCancelled:  RKReservationCancelled,
	TypeCheckedIn:  RKReservationCheckedIn,
	TypeCheckedOut: RKReservationCheckedOut,
	TypeUpdated:    RKReservationUpdated,
	TypeExpired:    RKReservationExpired,
}

func (t EventType) RoutingKey() string {
	if k, ok := routingKeys[t]; ok {
		return k
	}
	return "reservation.unknown"
}

// ReservationEvent is the one payload shape shared by every lifecycle event.
type ReservationEvent struct {
	Type             EventType `json:"type"`
	ReservationID    string    `json:"reservation_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	GuestID          string    `json:"guest_id"`
	GuestEmail       string    `json:"guest_email"`
	RoomID           string    `json:"room_id"`
	CheckIn          string    `json:"check_in"`  // 2006-01-02
	CheckOut         string    `json:"check_out"` // 2006-01-02
	TotalPrice       string    `json:"total_price"`
	Status           string    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
}

func MustUnmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
