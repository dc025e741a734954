package services

import (
	"testing"

	"hotel-booking/domain"
	"hotel-booking/models"
)

func TestSelfOrAdmin(t *testing.T) {
	cases := []struct {
		name   string
		id     Identity
		target uint
		check  func(error) bool
	}{
		{"self", Identity{UserID: 4}, 4, func(err error) bool { return err == nil }},
		{"admin", Identity{UserID: 1, IsAdmin: true}, 4, func(err error) bool { return err == nil }},
		{"other", Identity{UserID: 5}, 4, domain.IsForbidden},
		{"anonymous", Identity{}, 4, domain.IsUnauthenticated},
	}
	for _, tc := range cases {
		if err := SelfOrAdmin(tc.id, tc.target); !tc.check(err) {
			t.Fatalf("%s: unexpected result %v", tc.name, err)
		}
	}
}

func TestAdminOnly(t *testing.T) {
	if err := AdminOnly(Identity{UserID: 1, IsAdmin: true}); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if err := AdminOnly(Identity{UserID: 2}); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestHotelOwnerOrAdmin(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	other := f.newUser(t, "other", false)
	admin := f.newUser(t, "admin", true)
	h := f.newHotel(t, owner, "Paris")

	if _, err := HotelOwnerOrAdmin(f.ctx, f.store.Hotels(), owner, h.ID); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}
	if _, err := HotelOwnerOrAdmin(f.ctx, f.store.Hotels(), admin, h.ID); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if _, err := HotelOwnerOrAdmin(f.ctx, f.store.Hotels(), other, h.ID); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := HotelOwnerOrAdmin(f.ctx, f.store.Hotels(), owner, h.ID+100); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookingReader(t *testing.T) {
	b := &models.Booking{UserID: 2, HotelOwnerID: 3}
	for _, id := range []Identity{{UserID: 2}, {UserID: 3}, {UserID: 9, IsAdmin: true}} {
		if err := BookingReader(id, b); err != nil {
			t.Fatalf("%+v rejected: %v", id, err)
		}
	}
	if err := BookingReader(Identity{UserID: 7}, b); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
