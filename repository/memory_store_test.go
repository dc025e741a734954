package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking/domain"
	"hotel-booking/models"
)

func seedRoom(t *testing.T, s *MemoryStore) (*models.Hotel, *models.Room) {
	t.Helper()
	ctx := context.Background()
	owner := models.User{Username: "owner", Email: "owner@example.com"}
	if err := s.Users().Create(ctx, &owner); err != nil {
		t.Fatalf("create user: %v", err)
	}
	h := models.Hotel{Name: "H", City: "Paris", Type: models.HotelTypeHotel, OwnerID: owner.ID}
	if err := s.Hotels().Create(ctx, &h); err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	r := models.Room{HotelID: h.ID, Title: "Double", Price: 90, MaxPeople: 2,
		RoomNumbers: []models.RoomNumber{{Number: 101}, {Number: 102}}}
	if err := s.Rooms().Create(ctx, &r); err != nil {
		t.Fatalf("create room: %v", err)
	}
	return &h, &r
}

func TestMemoryTransactionRollsBack(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, r := seedRoom(t, s)
	rn := r.RoomNumbers[0]

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx Store) error {
		if err := tx.Rooms().AddDates(ctx, rn.ID, []time.Time{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}, nil); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	blocked, _ := s.Rooms().BlockedDates(ctx, rn.ID, []time.Time{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	if len(blocked) != 0 {
		t.Fatalf("rolled back write is visible: %v", blocked)
	}
}

func TestMemoryNestedTransaction(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	h, _ := seedRoom(t, s)

	err := s.Transaction(ctx, func(tx Store) error {
		if err := tx.Hotels().AddBookingsCount(ctx, h.ID, 1); err != nil {
			return err
		}
		_ = tx.Transaction(ctx, func(inner Store) error {
			_ = inner.Hotels().AddBookingsCount(ctx, h.ID, 10)
			return errors.New("inner failure")
		})
		return tx.Transaction(ctx, func(inner Store) error {
			return inner.Hotels().AddBookingsCount(ctx, h.ID, 1)
		})
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	got, _ := s.Hotels().FindByID(ctx, h.ID)
	if got.BookingsCount != 2 {
		t.Fatalf("expected 2, got %d", got.BookingsCount)
	}
}

func TestMemoryAddDatesConflict(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, r := seedRoom(t, s)
	rn := r.RoomNumbers[0]
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	if err := s.Rooms().AddDates(ctx, rn.ID, []time.Time{d1}, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Rooms().AddDates(ctx, rn.ID, []time.Time{d2, d1}, nil); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if blocked, _ := s.Rooms().BlockedDates(ctx, rn.ID, []time.Time{d2}); len(blocked) != 0 {
		t.Fatalf("partial write after conflict: %v", blocked)
	}
	// the other unit has its own calendar
	if err := s.Rooms().AddDates(ctx, r.RoomNumbers[1].ID, []time.Time{d1}, nil); err != nil {
		t.Fatalf("add on second unit: %v", err)
	}
}

func TestMemoryBookingDatesAreReleasedSeparately(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, r := seedRoom(t, s)
	rn := r.RoomNumbers[0]
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	bookingID := uint(42)

	_ = s.Rooms().AddDates(ctx, rn.ID, []time.Time{d1}, &bookingID)
	_ = s.Rooms().AddDates(ctx, rn.ID, []time.Time{d2}, nil)

	if n, _ := s.Rooms().RemoveManualDates(ctx, rn.ID, []time.Time{d1, d2}); n != 1 {
		t.Fatalf("expected only the manual date removed, got %d", n)
	}
	if err := s.Rooms().RemoveBookingDates(ctx, rn.ID, bookingID); err != nil {
		t.Fatalf("remove booking dates: %v", err)
	}
	if blocked, _ := s.Rooms().BlockedDates(ctx, rn.ID, []time.Time{d1, d2}); len(blocked) != 0 {
		t.Fatalf("expected empty calendar, got %v", blocked)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	h, _ := seedRoom(t, s)

	got, _ := s.Hotels().FindByID(ctx, h.ID)
	got.Name = "changed"
	got.Rooms[0].Price = 1
	again, _ := s.Hotels().FindByID(ctx, h.ID)
	if again.Name != "H" || again.Rooms[0].Price != 90 {
		t.Fatalf("store was mutated through a returned value: %+v", again)
	}
}

func TestMemoryUserUniqueness(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Users().Create(ctx, &models.User{Username: "a", Email: "a@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := s.Users().Create(ctx, &models.User{Username: "b", Email: "A@example.com"})
	var dup domain.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Field != "email" {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

func TestMemoryListByHotelWindow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	h, r := seedRoom(t, s)
	rn := r.RoomNumbers[0]
	in := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	_ = s.Rooms().AddDates(ctx, rn.ID, []time.Time{in, out}, nil)

	rooms, err := s.Rooms().ListByHotel(ctx, h.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), out)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	dates := rooms[0].RoomNumbers[0].UnavailableDates
	if len(dates) != 1 || !dates[0].Date.Equal(in) {
		t.Fatalf("expected only the in-window date, got %+v", dates)
	}
}
