package service

import (
	"testing"

	"github.com/you/hotel-reservations/internal/domain"
)

func TestValidateDateRange(t *testing.T) {
	const maxDays = 30

	if err := validateDateRange(date(2025, 6, 1), date(2025, 6, 4), maxDays); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if err := validateDateRange(date(2025, 6, 1), date(2025, 7, 1), maxDays); err != nil {
		t.Fatalf("exactly maxDays rejected: %v", err)
	}

	err := validateDateRange(date(2025, 6, 4), date(2025, 6, 1), maxDays)
	if domain.KindOf(err) != domain.KindInvalidDateRange {
		t.Fatalf("reversed range: got %v", err)
	}

	err = validateDateRange(date(2025, 6, 1), date(2025, 6, 1), maxDays)
	if domain.KindOf(err) != domain.KindInvalidDateRange {
		t.Fatalf("zero-night range: got %v", err)
	}

	err = validateDateRange(date(2025, 6, 1), date(2025, 7, 2), maxDays)
	if domain.KindOf(err) != domain.KindInvalidDateRange {
		t.Fatalf("over maxDays: got %v", err)
	}
}
