package services

import (
	"context"
	"testing"
	"time"

	"hotel-booking/models"
	"hotel-booking/repository"
)

type fixture struct {
	ctx      context.Context
	store    *repository.MemoryStore
	auth     *AuthService
	catalog  *CatalogService
	avail    *AvailabilityService
	bookings *BookingService
	users    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	return &fixture{
		ctx:      context.Background(),
		store:    store,
		auth:     NewAuthService(store, []byte("test-secret"), time.Hour, nil),
		catalog:  NewCatalogService(store),
		avail:    NewAvailabilityService(store),
		bookings: NewBookingService(store),
		users:    NewUserService(store),
	}
}

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// newUser stores a user directly; its password is not a usable hash.
func (f *fixture) newUser(t *testing.T, name string, admin bool) Identity {
	t.Helper()
	u := models.User{Username: name, Email: name + "@example.com", Password: "x", IsAdmin: admin}
	if err := f.store.Users().Create(f.ctx, &u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return Identity{UserID: u.ID, IsAdmin: admin}
}

func (f *fixture) newHotel(t *testing.T, owner Identity, city string) *models.Hotel {
	t.Helper()
	h, err := f.catalog.CreateHotel(f.ctx, owner, HotelInput{
		Name: ptr("Hotel " + city),
		Type: ptr("hotel"),
		City: ptr(city),
	})
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	return h
}

func (f *fixture) newRoom(t *testing.T, owner Identity, hotelID uint, price float64, maxPeople int, numbers ...int) *models.Room {
	t.Helper()
	in := RoomInput{
		Title:            ptr("Double"),
		Price:            ptr(price),
		MaxPeople:        ptr(maxPeople),
		ExtraGuestCharge: ptr(20.0),
		MaxExtraGuests:   ptr(1),
		ExtraBedCharge:   ptr(10.0),
		MaxExtraBeds:     ptr(1),
	}
	for _, n := range numbers {
		in.RoomNumbers = append(in.RoomNumbers, RoomNumberInput{Number: n})
	}
	r, err := f.catalog.CreateRoom(f.ctx, owner, hotelID, in)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	return r
}

func (f *fixture) book(t *testing.T, guest Identity, hotelID, roomID uint, checkIn, checkOut string, numbers ...int) *models.Booking {
	t.Helper()
	in := BookingInput{HotelID: hotelID, RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut}
	for _, n := range numbers {
		in.RoomDetails = append(in.RoomDetails, BookingLineInput{Number: n, Adults: 2})
	}
	b, err := f.bookings.Create(f.ctx, guest, guest.UserID, in)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func (f *fixture) calendar(t *testing.T, roomID uint, number int) []time.Time {
	t.Helper()
	room, err := f.store.Rooms().FindByID(f.ctx, roomID)
	if err != nil {
		t.Fatalf("find room: %v", err)
	}
	for _, rn := range room.RoomNumbers {
		if rn.Number == number {
			var dates []time.Time
			for _, d := range rn.UnavailableDates {
				dates = append(dates, d.Date)
			}
			return dates
		}
	}
	t.Fatalf("room %d has no number %d", roomID, number)
	return nil
}
