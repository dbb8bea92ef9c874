package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/hotel-reservations/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every pool connection to :memory: gets its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := NewHotelRepo(db).Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedReservation(t *testing.T, db *gorm.DB, roomID string, checkIn, checkOut time.Time, status domain.ReservationStatus) *domain.Reservation {
	t.Helper()
	res := &domain.Reservation{
		ID:               uuid.NewString(),
		ConfirmationCode: domain.NewConfirmationCode(),
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		NumberOfGuests:   2,
		TotalPrice:       decimal.NewFromInt(200),
		Status:           status,
		PaymentStatus:    domain.PaymentPending,
		GuestID:          "g1",
		RoomID:           roomID,
	}
	if err := db.Create(res).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return res
}

func newReservation(roomID string, checkIn, checkOut time.Time) *domain.Reservation {
	return &domain.Reservation{
		ConfirmationCode: domain.NewConfirmationCode(),
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		NumberOfGuests:   2,
		TotalPrice:       decimal.NewFromInt(200),
		Status:           domain.StatusPending,
		PaymentStatus:    domain.PaymentPending,
		GuestID:          "g1",
		RoomID:           roomID,
	}
}

func TestCreateWithNoOverlap(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	first := newReservation("r1", date(2025, 6, 10), date(2025, 6, 13))
	if err := repo.CreateWithNoOverlap(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.ID == "" {
		t.Fatal("create should assign an id")
	}

	err := repo.CreateWithNoOverlap(ctx, newReservation("r1", date(2025, 6, 12), date(2025, 6, 15)))
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("overlapping create: got %v, want ErrOverlap", err)
	}

	// half-open: a stay starting on the existing check-out is fine
	if err := repo.CreateWithNoOverlap(ctx, newReservation("r1", date(2025, 6, 13), date(2025, 6, 15))); err != nil {
		t.Fatalf("adjacent create: %v", err)
	}
	if err := repo.CreateWithNoOverlap(ctx, newReservation("r2", date(2025, 6, 12), date(2025, 6, 15))); err != nil {
		t.Fatalf("other room create: %v", err)
	}
}

func TestCreateWithNoOverlapFirstBookingRace(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	// both writers target an empty table, so there is no row to lock; the
	// create transaction itself has to serialize them
	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateWithNoOverlap(ctx, newReservation("r1", date(2025, 6, 10), date(2025, 6, 13)))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else if !errors.Is(err, ErrOverlap) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("%d creates committed, want exactly 1", ok)
	}

	var rows int64
	if err := db.Model(&domain.Reservation{}).Where("room_id = ?", "r1").Count(&rows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("%d rows persisted, want 1", rows)
	}
}

func TestSaveWithNoOverlap(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	booked := newReservation("r1", date(2025, 6, 10), date(2025, 6, 13))
	if err := repo.CreateWithNoOverlap(ctx, booked); err != nil {
		t.Fatalf("seed first: %v", err)
	}
	moving := newReservation("r1", date(2025, 6, 20), date(2025, 6, 22))
	if err := repo.CreateWithNoOverlap(ctx, moving); err != nil {
		t.Fatalf("seed second: %v", err)
	}

	// shifting over its own current dates must not self-conflict
	moving.CheckInDate = date(2025, 6, 21)
	moving.CheckOutDate = date(2025, 6, 24)
	if err := repo.SaveWithNoOverlap(ctx, moving); err != nil {
		t.Fatalf("shift within own window: %v", err)
	}

	moving.CheckInDate = date(2025, 6, 12)
	moving.CheckOutDate = date(2025, 6, 14)
	if err := repo.SaveWithNoOverlap(ctx, moving); !errors.Is(err, ErrOverlap) {
		t.Fatalf("move onto booked dates: got %v, want ErrOverlap", err)
	}
}

func TestFindOverlapping(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	booked := seedReservation(t, db, "r1", date(2025, 6, 10), date(2025, 6, 13), domain.StatusConfirmed)

	cases := []struct {
		name     string
		in, out  time.Time
		overlaps bool
	}{
		{"inside", date(2025, 6, 11), date(2025, 6, 12), true},
		{"spanning", date(2025, 6, 9), date(2025, 6, 14), true},
		{"head overlap", date(2025, 6, 8), date(2025, 6, 11), true},
		{"tail overlap", date(2025, 6, 12), date(2025, 6, 15), true},
		{"before", date(2025, 6, 1), date(2025, 6, 5), false},
		{"after", date(2025, 6, 20), date(2025, 6, 22), false},
		{"ends at check-in", date(2025, 6, 7), date(2025, 6, 10), false},
		{"starts at check-out", date(2025, 6, 13), date(2025, 6, 16), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := repo.FindOverlapping(ctx, "r1", c.in, c.out, "")
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if (len(got) > 0) != c.overlaps {
				t.Fatalf("overlap = %v, want %v", len(got) > 0, c.overlaps)
			}
		})
	}

	// the excluded row never conflicts with itself
	got, err := repo.FindOverlapping(ctx, "r1", date(2025, 6, 11), date(2025, 6, 12), booked.ID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("excluded reservation should not count as a conflict")
	}

	// a different room is never blocked
	got, err = repo.FindOverlapping(ctx, "r2", date(2025, 6, 11), date(2025, 6, 12), "")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("other rooms should be free")
	}
}

func TestFindOverlappingIgnoresInactive(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	seedReservation(t, db, "r1", date(2025, 6, 10), date(2025, 6, 13), domain.StatusCancelled)
	seedReservation(t, db, "r1", date(2025, 6, 10), date(2025, 6, 13), domain.StatusExpired)

	got, err := repo.FindOverlapping(ctx, "r1", date(2025, 6, 11), date(2025, 6, 12), "")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("cancelled and expired reservations must not block the room")
	}
}

func TestFindExpiredPending(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	stale := seedReservation(t, db, "r1", date(2025, 6, 1), date(2025, 6, 3), domain.StatusPending)
	seedReservation(t, db, "r2", date(2025, 7, 1), date(2025, 7, 3), domain.StatusPending)
	seedReservation(t, db, "r3", date(2025, 6, 1), date(2025, 6, 3), domain.StatusConfirmed)

	got, err := repo.FindExpiredPending(ctx, date(2025, 6, 15))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].ID != stale.ID {
		t.Fatalf("got %d rows, want only the stale pending one", len(got))
	}
}

func TestByIDAndCode(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	res := seedReservation(t, db, "r1", date(2025, 6, 10), date(2025, 6, 13), domain.StatusPending)

	got, err := repo.ByID(ctx, res.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.ConfirmationCode != res.ConfirmationCode {
		t.Fatalf("code = %s", got.ConfirmationCode)
	}

	got, err = repo.ByConfirmationCode(ctx, res.ConfirmationCode)
	if err != nil {
		t.Fatalf("by code: %v", err)
	}
	if got.ID != res.ID {
		t.Fatalf("id = %s", got.ID)
	}

	if _, err := repo.ByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id: got %v", err)
	}
	if _, err := repo.ByConfirmationCode(ctx, "HTL-XXXXXXXX"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing code: got %v", err)
	}
}

func TestByStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	seedReservation(t, db, "r1", date(2025, 6, 1), date(2025, 6, 3), domain.StatusPending)
	seedReservation(t, db, "r2", date(2025, 6, 1), date(2025, 6, 3), domain.StatusConfirmed)
	seedReservation(t, db, "r3", date(2025, 6, 1), date(2025, 6, 3), domain.StatusConfirmed)

	got, err := repo.ByStatus(ctx, domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("confirmed = %d rows, want 2", len(got))
	}

	got, err = repo.ByStatus(ctx, domain.StatusCancelled)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("cancelled = %d rows, want 0", len(got))
	}
}

func TestListPagesAndFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	for d := 0; d < 5; d++ {
		seedReservation(t, db, "r1", date(2025, 6, 1+2*d), date(2025, 6, 2+2*d), domain.StatusConfirmed)
	}
	seedReservation(t, db, "r2", date(2025, 6, 1), date(2025, 6, 2), domain.StatusConfirmed)

	rows, total, err := repo.List(ctx, 0, 3, "", "r1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(rows) != 3 {
		t.Fatalf("page size = %d, want 3", len(rows))
	}

	rows, _, err = repo.List(ctx, 1, 3, "", "r1")
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("second page = %d rows, want 2", len(rows))
	}

	_, total, err = repo.List(ctx, 0, 10, "g1", "")
	if err != nil {
		t.Fatalf("list by guest: %v", err)
	}
	if total != 6 {
		t.Fatalf("guest total = %d, want 6", total)
	}
}

func TestFindAvailableRooms(t *testing.T) {
	db := openTestDB(t)
	rooms := NewRoomRepo(db)
	ctx := context.Background()

	for _, r := range []domain.Room{
		{ID: "r1", HotelID: "h1", RoomNumber: "101", RoomType: domain.RoomSingle, PricePerNight: decimal.NewFromInt(80), IsAvailable: true},
		{ID: "r2", HotelID: "h1", RoomNumber: "102", RoomType: domain.RoomDouble, PricePerNight: decimal.NewFromInt(120), IsAvailable: true},
		{ID: "r3", HotelID: "h1", RoomNumber: "103", RoomType: domain.RoomSuite, PricePerNight: decimal.NewFromInt(250), IsAvailable: false},
		{ID: "r4", HotelID: "h2", RoomNumber: "201", RoomType: domain.RoomSingle, PricePerNight: decimal.NewFromInt(80), IsAvailable: true},
	} {
		room := r
		if err := rooms.Create(ctx, &room); err != nil {
			t.Fatalf("seed room: %v", err)
		}
	}

	seedReservation(t, db, "r1", date(2025, 6, 10), date(2025, 6, 13), domain.StatusConfirmed)
	seedReservation(t, db, "r2", date(2025, 6, 10), date(2025, 6, 13), domain.StatusCancelled)

	got, err := rooms.FindAvailable(ctx, "h1", date(2025, 6, 11), date(2025, 6, 12))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("available = %+v, want only r2", got)
	}

	// nobody staying in that window
	got, err = rooms.FindAvailable(ctx, "h1", date(2025, 7, 1), date(2025, 7, 3))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("available = %d rooms, want 2", len(got))
	}
}

func TestGuestByEmail(t *testing.T) {
	db := openTestDB(t)
	guests := NewGuestRepo(db)
	ctx := context.Background()

	g := &domain.Guest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	if err := guests.Create(ctx, g); err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.ID == "" {
		t.Fatal("create should assign an id")
	}

	got, err := guests.ByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if got.ID != g.ID {
		t.Fatalf("id = %s", got.ID)
	}

	if _, err := guests.ByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing email: got %v", err)
	}
}
