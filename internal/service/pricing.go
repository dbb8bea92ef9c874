package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/you/hotel-reservations/internal/domain"
)

var two = decimal.NewFromInt(2)

// TotalPrice is price-per-night times the number of nights. The date range is
// assumed valid, so nights >= 1.
func TotalPrice(pricePerNight decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	nights := domain.DaysBetween(checkIn, checkOut)
	return pricePerNight.Mul(decimal.NewFromInt(nights))
}

// RefundAmount applies the cancellation policy against the hours remaining
// until the start of the check-in day. now is injected so the computation
// stays deterministic.
//
//	already checked in (or past)  -> 0
//	more than policy hours ahead  -> full price
//	otherwise                     -> half, rounded half-up to 2 decimals
func RefundAmount(totalPrice decimal.Decimal, checkIn time.Time, hoursBeforePolicy int, now time.Time) decimal.Decimal {
	checkInStart := startOfDay(checkIn)
	hoursUntilCheckIn := int64(checkInStart.Sub(now).Hours())

	if hoursUntilCheckIn <= 0 {
		return decimal.Zero
	}
	if hoursUntilCheckIn > int64(hoursBeforePolicy) {
		return totalPrice
	}
	return totalPrice.DivRound(two, 2)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
