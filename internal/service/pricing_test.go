package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTotalPrice(t *testing.T) {
	rate := decimal.NewFromInt(100)
	got := TotalPrice(rate, date(2025, 6, 1), date(2025, 6, 4))
	if !got.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("3 nights at 100 = %s, want 300", got)
	}

	rate = decimal.RequireFromString("89.90")
	got = TotalPrice(rate, date(2025, 6, 1), date(2025, 6, 2))
	if !got.Equal(decimal.RequireFromString("89.90")) {
		t.Fatalf("1 night at 89.90 = %s", got)
	}
}

func TestRefundAmount(t *testing.T) {
	total := decimal.NewFromInt(300)
	checkIn := date(2025, 6, 10)
	const policy = 48

	// 72h before check-in day: full refund
	now := date(2025, 6, 7)
	if got := RefundAmount(total, checkIn, policy, now); !got.Equal(total) {
		t.Fatalf("72h ahead: refund = %s, want %s", got, total)
	}

	// 10h before check-in day: half refund
	now = time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
	if got := RefundAmount(total, checkIn, policy, now); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("10h ahead: refund = %s, want 150", got)
	}

	// already past check-in: nothing back
	now = date(2025, 6, 11)
	if got := RefundAmount(total, checkIn, policy, now); !got.Equal(decimal.Zero) {
		t.Fatalf("past check-in: refund = %s, want 0", got)
	}

	// on the check-in day itself
	now = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	if got := RefundAmount(total, checkIn, policy, now); !got.Equal(decimal.Zero) {
		t.Fatalf("check-in day: refund = %s, want 0", got)
	}
}

func TestRefundAmountHalfRounding(t *testing.T) {
	total := decimal.RequireFromString("100.01")
	checkIn := date(2025, 6, 10)
	now := date(2025, 6, 9)

	got := RefundAmount(total, checkIn, 48, now)
	if !got.Equal(decimal.RequireFromString("50.01")) {
		t.Fatalf("half of 100.01 = %s, want 50.01", got)
	}
}
