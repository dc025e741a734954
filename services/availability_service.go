package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-booking/domain"
	"hotel-booking/models"
	"hotel-booking/repository"
)

type SearchQuery struct {
	Destination string
	Start       time.Time
	End         time.Time
	Occupants   int
	Rooms       int // free units wanted across the hotel, defaults to 1
}

type AvailabilityService struct {
	store repository.Store
}

func NewAvailabilityService(store repository.Store) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// FindAvailable returns the hotels in the destination city that can host
// the stay. Each hotel carries only rooms that fit the occupants and have at
// least one free unit, and each room lists only its free units.
func (s *AvailabilityService) FindAvailable(ctx context.Context, q SearchQuery) ([]models.Hotel, error) {
	dest := strings.TrimSpace(q.Destination)
	if dest == "" {
		return nil, domain.ValidationError{Field: "destination", Msg: "is required"}
	}
	nights, err := StayNights(q.Start, q.End)
	if err != nil {
		return nil, err
	}
	from, to := nights[0], nights[len(nights)-1].AddDate(0, 0, 1)
	occupants := q.Occupants
	if occupants < 1 {
		occupants = 1
	}
	wanted := q.Rooms
	if wanted < 1 {
		wanted = 1
	}

	hotels, err := s.store.Hotels().List(ctx, repository.HotelFilter{City: dest})
	if err != nil {
		return nil, err
	}
	out := []models.Hotel{}
	for _, h := range hotels {
		rooms, err := s.store.Rooms().ListByHotel(ctx, h.ID, from, to)
		if err != nil {
			return nil, err
		}
		fitting := []models.Room{}
		free := 0
		for _, r := range rooms {
			if r.MaxPeople < occupants {
				continue
			}
			units := freeUnits(r.RoomNumbers)
			if len(units) == 0 {
				continue
			}
			r.RoomNumbers = units
			fitting = append(fitting, r)
			free += len(units)
		}
		if len(fitting) == 0 || free < wanted {
			continue
		}
		h.Rooms = fitting
		out = append(out, h)
	}
	return out, nil
}

// freeUnits keeps the units whose calendar, already narrowed to the
// requested nights, is empty.
func freeUnits(numbers []models.RoomNumber) []models.RoomNumber {
	free := []models.RoomNumber{}
	for _, rn := range numbers {
		if len(rn.UnavailableDates) == 0 {
			rn.UnavailableDates = []models.UnavailableDate{}
			free = append(free, rn)
		}
	}
	return free
}

func (s *AvailabilityService) lockUnit(ctx context.Context, tx repository.Store, id Identity, roomID uint, number int) (*models.RoomNumber, error) {
	room, err := tx.Rooms().FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if _, err := HotelOwnerOrAdmin(ctx, tx.Hotels(), id, room.HotelID); err != nil {
		return nil, err
	}
	return tx.Rooms().LockNumber(ctx, roomID, number)
}

// Reserve blocks dates on one unit. Either every date is free and all are
// written, or nothing changes and a ConflictError names the taken dates.
func (s *AvailabilityService) Reserve(ctx context.Context, id Identity, roomID uint, number int, dates []time.Time) (*models.Room, error) {
	dates = uniqueDays(dates)
	if len(dates) == 0 {
		return nil, domain.ValidationError{Field: "dates", Msg: "at least one date is required"}
	}
	if len(dates) > maxStayNights {
		return nil, domain.ValidationError{Field: "dates", Msg: "too many dates"}
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		rn, err := s.lockUnit(ctx, tx, id, roomID, number)
		if err != nil {
			return err
		}
		taken, err := tx.Rooms().BlockedDates(ctx, rn.ID, dates)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return domain.ConflictError{
				Resource: "room number",
				Msg:      fmt.Sprintf("%d is already unavailable on %s", number, formatDays(taken)),
			}
		}
		return tx.Rooms().AddDates(ctx, rn.ID, dates, nil)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Rooms().FindByID(ctx, roomID)
}

// Release unblocks manually reserved dates on one unit. Dates held by a
// booking stay; they are freed by cancelling the booking.
func (s *AvailabilityService) Release(ctx context.Context, id Identity, roomID uint, number int, dates []time.Time) (int64, error) {
	dates = uniqueDays(dates)
	if len(dates) == 0 {
		return 0, domain.ValidationError{Field: "dates", Msg: "at least one date is required"}
	}
	var removed int64
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		rn, err := s.lockUnit(ctx, tx, id, roomID, number)
		if err != nil {
			return err
		}
		removed, err = tx.Rooms().RemoveManualDates(ctx, rn.ID, dates)
		return err
	})
	return removed, err
}
