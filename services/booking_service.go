package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"hotel-booking/domain"
	"hotel-booking/models"
	"hotel-booking/repository"
)

type BookingLineInput struct {
	RoomID      uint `json:"roomId"`
	Number      int  `json:"number"`
	ExtraGuests int  `json:"extraGuests"`
	ExtraBeds   int  `json:"extraBeds"`
	Adults      int  `json:"adults"`
	Children    int  `json:"children"`
}

type BookingInput struct {
	HotelID     uint               `json:"hotelId"`
	RoomID      uint               `json:"roomId"`
	RoomDetails []BookingLineInput `json:"roomDetails"`
	CheckIn     string             `json:"checkIn"`
	CheckOut    string             `json:"checkOut"`
}

type BookingService struct {
	store repository.Store
	now   func() time.Time
}

func NewBookingService(store repository.Store) *BookingService {
	return &BookingService{store: store, now: time.Now}
}

type unitKey struct {
	roomID uint
	number int
}

func sortUnits(units []unitKey) {
	sort.Slice(units, func(i, j int) bool {
		if units[i].roomID != units[j].roomID {
			return units[i].roomID < units[j].roomID
		}
		return units[i].number < units[j].number
	})
}

func (in BookingInput) lines() ([]models.BookingRoomDetail, error) {
	if len(in.RoomDetails) == 0 {
		return nil, domain.ValidationError{Field: "roomDetails", Msg: "at least one room is required"}
	}
	seen := map[unitKey]bool{}
	primaryBooked := false
	lines := make([]models.BookingRoomDetail, 0, len(in.RoomDetails))
	for _, l := range in.RoomDetails {
		if l.RoomID == 0 {
			l.RoomID = in.RoomID
		}
		switch {
		case l.RoomID == 0:
			return nil, domain.ValidationError{Field: "roomDetails", Msg: "roomId is required"}
		case l.Number <= 0:
			return nil, domain.ValidationError{Field: "roomDetails", Msg: "number is required"}
		case l.ExtraGuests < 0 || l.ExtraBeds < 0 || l.Adults < 0 || l.Children < 0:
			return nil, domain.ValidationError{Field: "roomDetails", Msg: "counts must not be negative"}
		}
		k := unitKey{l.RoomID, l.Number}
		if seen[k] {
			return nil, domain.ValidationError{Field: "roomDetails", Msg: fmt.Sprintf("room number %d is listed twice", l.Number)}
		}
		seen[k] = true
		if l.Adults == 0 && l.Children == 0 {
			l.Adults = 1
		}
		if l.RoomID == in.RoomID {
			primaryBooked = true
		}
		lines = append(lines, models.BookingRoomDetail{
			RoomID:      l.RoomID,
			Number:      l.Number,
			ExtraGuests: l.ExtraGuests,
			ExtraBeds:   l.ExtraBeds,
			Adults:      l.Adults,
			Children:    l.Children,
		})
	}
	if in.RoomID != 0 && !primaryBooked {
		return nil, domain.ValidationError{Field: "roomId", Msg: "must be one of the booked rooms"}
	}
	return lines, nil
}

// nightlyRate validates a line against its room and returns its price per night.
func nightlyRate(room models.Room, line models.BookingRoomDetail) (float64, error) {
	hasNumber := false
	for _, rn := range room.RoomNumbers {
		if rn.Number == line.Number {
			hasNumber = true
			break
		}
	}
	switch {
	case !hasNumber:
		return 0, domain.NotFoundError{Resource: fmt.Sprintf("room number %d", line.Number)}
	case line.ExtraGuests > room.MaxExtraGuests:
		return 0, domain.ValidationError{Field: "extraGuests", Msg: fmt.Sprintf("room %q allows at most %d", room.Title, room.MaxExtraGuests)}
	case line.ExtraBeds > room.MaxExtraBeds:
		return 0, domain.ValidationError{Field: "extraBeds", Msg: fmt.Sprintf("room %q allows at most %d", room.Title, room.MaxExtraBeds)}
	case line.Adults+line.Children > room.MaxPeople+line.ExtraGuests:
		return 0, domain.ValidationError{Field: "roomDetails", Msg: fmt.Sprintf("too many occupants for room number %d", line.Number)}
	}
	return room.Price +
		float64(line.ExtraGuests)*room.ExtraGuestCharge +
		float64(line.ExtraBeds)*room.ExtraBedCharge, nil
}

// Create books every unit in the request for the whole stay, or nothing.
// Units are locked in (room, number) order, the nights are checked against
// each calendar and then written tagged with the new booking's id.
func (s *BookingService) Create(ctx context.Context, id Identity, userID uint, in BookingInput) (*models.Booking, error) {
	if err := SelfOrAdmin(id, userID); err != nil {
		return nil, err
	}
	if in.HotelID == 0 {
		return nil, domain.ValidationError{Field: "hotelId", Msg: "is required"}
	}
	checkIn, err := ParseDay(in.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseDay(in.CheckOut)
	if err != nil {
		return nil, err
	}
	nights, err := StayNights(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	lines, err := in.lines()
	if err != nil {
		return nil, err
	}

	var bookingID uint
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().FindByID(ctx, userID); err != nil {
			return err
		}
		hotel, err := tx.Hotels().FindByID(ctx, in.HotelID)
		if err != nil {
			return err
		}
		rooms := make(map[uint]models.Room, len(hotel.Rooms))
		for _, r := range hotel.Rooms {
			rooms[r.ID] = r
		}

		primary := in.RoomID
		if primary == 0 {
			primary = lines[0].RoomID
		}
		if _, ok := rooms[primary]; !ok {
			return domain.ValidationError{Field: "roomId", Msg: "room does not belong to this hotel"}
		}

		perNight := 0.0
		units := make([]unitKey, 0, len(lines))
		for _, line := range lines {
			room, ok := rooms[line.RoomID]
			if !ok {
				return domain.ValidationError{Field: "roomDetails", Msg: fmt.Sprintf("room %d does not belong to this hotel", line.RoomID)}
			}
			rate, err := nightlyRate(room, line)
			if err != nil {
				return err
			}
			perNight += rate
			units = append(units, unitKey{line.RoomID, line.Number})
		}

		sortUnits(units)
		locked := make(map[unitKey]uint, len(units))
		for _, u := range units {
			rn, err := tx.Rooms().LockNumber(ctx, u.roomID, u.number)
			if err != nil {
				return err
			}
			taken, err := tx.Rooms().BlockedDates(ctx, rn.ID, nights)
			if err != nil {
				return err
			}
			if len(taken) > 0 {
				return domain.ConflictError{
					Resource: "room number",
					Msg:      fmt.Sprintf("%d is already booked on %s", u.number, formatDays(taken)),
				}
			}
			locked[u] = rn.ID
		}

		b := models.Booking{
			HotelID:      hotel.ID,
			HotelOwnerID: hotel.OwnerID,
			UserID:       userID,
			RoomID:       primary,
			CheckIn:      checkIn,
			CheckOut:     checkOut,
			RoomDetails:  lines,
		}
		b.AmountPaid = math.Round(perNight*float64(b.Nights())*100) / 100
		if err := tx.Bookings().Create(ctx, &b); err != nil {
			return err
		}
		for _, u := range units {
			if err := tx.Rooms().AddDates(ctx, locked[u], nights, &b.ID); err != nil {
				return err
			}
		}
		if err := tx.Hotels().AddBookingsCount(ctx, hotel.ID, 1); err != nil {
			return err
		}
		bookingID = b.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.store.Bookings().FindByID(ctx, bookingID)
}

func (s *BookingService) GetByID(ctx context.Context, id Identity, bookingID uint) (*models.Booking, error) {
	if err := requireSession(id); err != nil {
		return nil, err
	}
	b, err := s.store.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := BookingReader(id, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) ListByUser(ctx context.Context, id Identity, userID uint) ([]models.Booking, error) {
	if err := SelfOrAdmin(id, userID); err != nil {
		return nil, err
	}
	return s.store.Bookings().ListByUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context, id Identity) ([]models.Booking, error) {
	if err := AdminOnly(id); err != nil {
		return nil, err
	}
	return s.store.Bookings().ListAll(ctx)
}

// ListUpcoming returns bookings checking in today or later, soonest first.
func (s *BookingService) ListUpcoming(ctx context.Context, id Identity, userID uint) ([]models.Booking, error) {
	if err := SelfOrAdmin(id, userID); err != nil {
		return nil, err
	}
	return s.store.Bookings().ListUpcoming(ctx, userID, Day(s.now().UTC()))
}

// ListForOwner returns bookings made against hotels ownerID owns.
func (s *BookingService) ListForOwner(ctx context.Context, id Identity, ownerID uint) ([]models.Booking, error) {
	if err := SelfOrAdmin(id, ownerID); err != nil {
		return nil, err
	}
	return s.store.Bookings().ListByHotelOwner(ctx, ownerID)
}

func canCancel(id Identity, b *models.Booking) error {
	if id.IsAdmin || b.UserID == id.UserID {
		return nil
	}
	return domain.ForbiddenError{Msg: "you can only cancel your own bookings"}
}

// CancelEntire deletes the booking and frees its nights. Cancelling a
// booking that no longer exists succeeds.
func (s *BookingService) CancelEntire(ctx context.Context, id Identity, bookingID, userID uint) error {
	if err := SelfOrAdmin(id, userID); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil
			}
			return err
		}
		if err := canCancel(id, b); err != nil {
			return err
		}
		return cancelBooking(ctx, tx, b)
	})
}

// CancelRoomNumber drops every line of the booking for that number and
// frees those lines' nights. A booking left without lines is deleted and
// nil is returned.
func (s *BookingService) CancelRoomNumber(ctx context.Context, id Identity, bookingID, userID uint, number *int) (*models.Booking, error) {
	if number == nil {
		return nil, domain.ValidationError{Field: "number", Msg: "is required"}
	}
	if err := SelfOrAdmin(id, userID); err != nil {
		return nil, err
	}

	deleted := false
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := canCancel(id, b); err != nil {
			return err
		}

		var drop []models.BookingRoomDetail
		for _, line := range b.RoomDetails {
			if line.Number == *number {
				drop = append(drop, line)
			}
		}
		if len(drop) == 0 {
			return nil
		}
		if len(drop) == len(b.RoomDetails) {
			deleted = true
			return cancelBooking(ctx, tx, b)
		}

		if err := releaseLines(ctx, tx, b.ID, drop); err != nil {
			return err
		}
		ids := make([]uint, 0, len(drop))
		for _, line := range drop {
			ids = append(ids, line.ID)
		}
		return tx.Bookings().DeleteDetails(ctx, b.ID, ids)
	})
	if err != nil || deleted {
		return nil, err
	}
	return s.store.Bookings().FindByID(ctx, bookingID)
}

// releaseLines removes the nights bookingID holds on each line's unit.
// A unit that has since been removed from its room has nothing to free.
func releaseLines(ctx context.Context, tx repository.Store, bookingID uint, lines []models.BookingRoomDetail) error {
	units := make([]unitKey, 0, len(lines))
	for _, line := range lines {
		units = append(units, unitKey{line.RoomID, line.Number})
	}
	sortUnits(units)
	for _, u := range units {
		rn, err := tx.Rooms().LockNumber(ctx, u.roomID, u.number)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return err
		}
		if err := tx.Rooms().RemoveBookingDates(ctx, rn.ID, bookingID); err != nil {
			return err
		}
	}
	return nil
}

func cancelBooking(ctx context.Context, tx repository.Store, b *models.Booking) error {
	if err := releaseLines(ctx, tx, b.ID, b.RoomDetails); err != nil {
		return err
	}
	if err := tx.Bookings().Delete(ctx, b.ID); err != nil {
		return err
	}
	return tx.Hotels().AddBookingsCount(ctx, b.HotelID, -1)
}
