// Package repository holds the persistence ports used by the services and
// their two implementations: gorm/MySQL for deployments and an in-process
// memory store for local runs and tests.
package repository

import (
	"context"
	"time"

	"hotel-booking/models"
)

// Store groups the repositories and opens transactions. Every repository
// obtained from the tx Store passed to fn runs inside that transaction.
type Store interface {
	Users() UserRepository
	Hotels() HotelRepository
	Rooms() RoomRepository
	Bookings() BookingRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uint) error
	AddSavedHotel(ctx context.Context, userID, hotelID uint) error
	RemoveSavedHotel(ctx context.Context, userID, hotelID uint) error
	SavedHotels(ctx context.Context, userID uint) ([]models.Hotel, error)
}

type HotelFilter struct {
	City     string // case-insensitive exact match
	Type     models.HotelType
	Featured *bool
	MinPrice *float64
	MaxPrice *float64
	OwnerID  uint
	Limit    int
}

type HotelRepository interface {
	Create(ctx context.Context, h *models.Hotel) error
	FindByID(ctx context.Context, id uint) (*models.Hotel, error)
	List(ctx context.Context, f HotelFilter) ([]models.Hotel, error)
	Update(ctx context.Context, h *models.Hotel) error
	Delete(ctx context.Context, id uint) error
	CountByCity(ctx context.Context, cities []string) ([]models.CityCount, error)
	CountByType(ctx context.Context) ([]models.TypeCount, error)
	AddBookingsCount(ctx context.Context, id uint, delta int) error
	SetCheapestPrice(ctx context.Context, id uint, price float64) error
}

type RoomRepository interface {
	Create(ctx context.Context, r *models.Room) error
	// FindByID loads the room with its numbers and full calendars.
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	// ListByHotel loads rooms with their numbers; calendars are limited to
	// [from, to) when both bounds are non-zero.
	ListByHotel(ctx context.Context, hotelID uint, from, to time.Time) ([]models.Room, error)
	// Update saves room fields and replaces its set of numbers when
	// r.RoomNumbers is non-nil. Numbers that survive keep their calendars.
	Update(ctx context.Context, r *models.Room) error
	Delete(ctx context.Context, id uint) error

	// LockNumber loads one RoomNumber and, inside a transaction, holds a
	// row lock on it until commit.
	LockNumber(ctx context.Context, roomID uint, number int) (*models.RoomNumber, error)
	// BlockedDates returns which of dates are already on the calendar.
	BlockedDates(ctx context.Context, roomNumberID uint, dates []time.Time) ([]time.Time, error)
	AddDates(ctx context.Context, roomNumberID uint, dates []time.Time, bookingID *uint) error
	// RemoveBookingDates drops every calendar entry owned by bookingID on that unit.
	RemoveBookingDates(ctx context.Context, roomNumberID uint, bookingID uint) error
	// RemoveManualDates drops manual (booking-less) entries among dates.
	RemoveManualDates(ctx context.Context, roomNumberID uint, dates []time.Time) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	// FindByID resolves Hotel, HotelOwner, User, Room and lines.
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	ListByHotelOwner(ctx context.Context, ownerID uint) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	ListUpcoming(ctx context.Context, userID uint, from time.Time) ([]models.Booking, error)
	// Delete is a no-op when the booking does not exist.
	Delete(ctx context.Context, id uint) error
	DeleteDetails(ctx context.Context, bookingID uint, detailIDs []uint) error
	CountByRoom(ctx context.Context, roomID uint) (int64, error)
	CountByRoomNumber(ctx context.Context, roomID uint, number int) (int64, error)
	CountByHotel(ctx context.Context, hotelID uint) (int64, error)
}
