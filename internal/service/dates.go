package service

import (
	"fmt"
	"time"

	"github.com/you/hotel-reservations/internal/domain"
)

// validateDateRange enforces the stay interval policy: check-out strictly
// after check-in, duration capped at maxDays nights.
func validateDateRange(checkIn, checkOut time.Time, maxDays int) error {
	if !checkOut.After(checkIn) {
		return domain.ErrInvalidDateRange("check-out date must be after check-in date")
	}
	if domain.DaysBetween(checkIn, checkOut) > int64(maxDays) {
		return domain.ErrInvalidDateRange(
			fmt.Sprintf("reservation exceeds maximum allowed duration of %d days", maxDays))
	}
	return nil
}
