package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-booking/domain"
	"hotel-booking/models"
	"hotel-booking/repository"
)

// HotelInput is used for both create and update. On update only the
// non-nil fields change.
type HotelInput struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	City        *string  `json:"city"`
	Address     *string  `json:"address"`
	Distance    *string  `json:"distance"`
	Title       *string  `json:"title"`
	Description *string  `json:"desc"`
	Photos      []string `json:"photos"`
	Rating      *float64 `json:"rating"`
	Featured    *bool    `json:"featured"`
	OwnerID     *uint    `json:"ownerId"`
}

type HotelQuery struct {
	City     string
	Type     string
	Featured *bool
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

type RoomNumberInput struct {
	Number int `json:"number"`
}

type RoomInput struct {
	Title            *string           `json:"title"`
	Price            *float64          `json:"price"`
	MaxPeople        *int              `json:"maxPeople"`
	Description      *string           `json:"desc"`
	Photos           []string          `json:"photos"`
	ExtraGuestCharge *float64          `json:"extraGuestCharge"`
	MaxExtraGuests   *int              `json:"maxExtraGuests"`
	ExtraBedCharge   *float64          `json:"extraBedCharge"`
	MaxExtraBeds     *int              `json:"maxExtraBeds"`
	RoomNumbers      []RoomNumberInput `json:"roomNumbers"`
}

type CatalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

// ---- hotels ----

func (s *CatalogService) ListHotels(ctx context.Context, q HotelQuery) ([]models.Hotel, error) {
	f := repository.HotelFilter{
		City:     q.City,
		Featured: q.Featured,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Limit:    q.Limit,
	}
	if q.Type != "" {
		t, ok := models.ParseHotelType(q.Type)
		if !ok {
			return nil, domain.ValidationError{Field: "type", Msg: "unknown hotel type"}
		}
		f.Type = t
	}
	if f.Limit < 0 {
		f.Limit = 0
	}
	return s.store.Hotels().List(ctx, f)
}

func (s *CatalogService) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	return s.store.Hotels().FindByID(ctx, id)
}

func (s *CatalogService) CreateHotel(ctx context.Context, id Identity, in HotelInput) (*models.Hotel, error) {
	if err := requireSession(id); err != nil {
		return nil, err
	}
	h := models.Hotel{OwnerID: id.UserID}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if in.City == nil || strings.TrimSpace(*in.City) == "" {
		return nil, domain.ValidationError{Field: "city", Msg: "is required"}
	}
	if in.Type == nil {
		return nil, domain.ValidationError{Field: "type", Msg: "is required"}
	}
	if err := s.applyHotel(ctx, id, &h, in); err != nil {
		return nil, err
	}
	if err := s.store.Hotels().Create(ctx, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *CatalogService) applyHotel(ctx context.Context, id Identity, h *models.Hotel, in HotelInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ValidationError{Field: "name", Msg: "must not be empty"}
		}
		h.Name = name
	}
	if in.Type != nil {
		t, ok := models.ParseHotelType(*in.Type)
		if !ok {
			return domain.ValidationError{Field: "type", Msg: fmt.Sprintf("must be one of %v", models.HotelTypes)}
		}
		h.Type = t
	}
	if in.City != nil {
		city := strings.TrimSpace(*in.City)
		if city == "" {
			return domain.ValidationError{Field: "city", Msg: "must not be empty"}
		}
		h.City = city
	}
	if in.Address != nil {
		h.Address = strings.TrimSpace(*in.Address)
	}
	if in.Distance != nil {
		h.Distance = *in.Distance
	}
	if in.Title != nil {
		h.Title = *in.Title
	}
	if in.Description != nil {
		h.Description = *in.Description
	}
	if in.Photos != nil {
		h.Photos = in.Photos
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return domain.ValidationError{Field: "rating", Msg: "must be between 0 and 5"}
		}
		h.Rating = *in.Rating
	}
	if in.Featured != nil {
		h.Featured = *in.Featured
	}
	if in.OwnerID != nil && *in.OwnerID != h.OwnerID {
		if !id.IsAdmin {
			return domain.ForbiddenError{Msg: "only an admin can assign a hotel to another owner"}
		}
		if _, err := s.store.Users().FindByID(ctx, *in.OwnerID); err != nil {
			return err
		}
		h.OwnerID = *in.OwnerID
	}
	return nil
}

func (s *CatalogService) UpdateHotel(ctx context.Context, id Identity, hotelID uint, in HotelInput) (*models.Hotel, error) {
	var out *models.Hotel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		h, err := HotelOwnerOrAdmin(ctx, tx.Hotels(), id, hotelID)
		if err != nil {
			return err
		}
		if err := (&CatalogService{store: tx}).applyHotel(ctx, id, h, in); err != nil {
			return err
		}
		if err := tx.Hotels().Update(ctx, h); err != nil {
			return err
		}
		out = h
		return nil
	})
	return out, err
}

// DeleteHotel refuses while any booking references the hotel; otherwise
// its rooms, numbers and calendars go with it.
func (s *CatalogService) DeleteHotel(ctx context.Context, id Identity, hotelID uint) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := HotelOwnerOrAdmin(ctx, tx.Hotels(), id, hotelID); err != nil {
			return err
		}
		n, err := tx.Bookings().CountByHotel(ctx, hotelID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ConflictError{Resource: "hotel", Msg: fmt.Sprintf("referenced by %d booking(s)", n)}
		}
		return tx.Hotels().Delete(ctx, hotelID)
	})
}

func (s *CatalogService) CountByCity(ctx context.Context, cities []string) ([]models.CityCount, error) {
	clean := make([]string, 0, len(cities))
	for _, c := range cities {
		if c = strings.TrimSpace(c); c != "" {
			clean = append(clean, c)
		}
	}
	if len(clean) == 0 {
		return nil, domain.ValidationError{Field: "cities", Msg: "at least one city is required"}
	}
	return s.store.Hotels().CountByCity(ctx, clean)
}

func (s *CatalogService) CountByType(ctx context.Context) ([]models.TypeCount, error) {
	return s.store.Hotels().CountByType(ctx)
}

func (s *CatalogService) HotelRooms(ctx context.Context, hotelID uint) ([]models.Room, error) {
	if _, err := s.store.Hotels().FindByID(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.store.Rooms().ListByHotel(ctx, hotelID, zeroTime, zeroTime)
}

// ---- rooms ----

func (s *CatalogService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.store.Rooms().List(ctx)
}

func (s *CatalogService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	return s.store.Rooms().FindByID(ctx, id)
}

func validateNumbers(in []RoomNumberInput) ([]models.RoomNumber, error) {
	seen := make(map[int]bool, len(in))
	out := make([]models.RoomNumber, 0, len(in))
	for _, rn := range in {
		if rn.Number <= 0 {
			return nil, domain.ValidationError{Field: "roomNumbers", Msg: "numbers must be positive"}
		}
		if seen[rn.Number] {
			return nil, domain.ValidationError{Field: "roomNumbers", Msg: fmt.Sprintf("number %d appears twice", rn.Number)}
		}
		seen[rn.Number] = true
		out = append(out, models.RoomNumber{Number: rn.Number})
	}
	return out, nil
}

func applyRoom(r *models.Room, in RoomInput) error {
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return domain.ValidationError{Field: "title", Msg: "must not be empty"}
		}
		r.Title = strings.TrimSpace(*in.Title)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return domain.ValidationError{Field: "price", Msg: "must not be negative"}
		}
		r.Price = *in.Price
	}
	if in.MaxPeople != nil {
		if *in.MaxPeople < 1 {
			return domain.ValidationError{Field: "maxPeople", Msg: "must be at least 1"}
		}
		r.MaxPeople = *in.MaxPeople
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Photos != nil {
		r.Photos = in.Photos
	}
	if in.ExtraGuestCharge != nil {
		if *in.ExtraGuestCharge < 0 {
			return domain.ValidationError{Field: "extraGuestCharge", Msg: "must not be negative"}
		}
		r.ExtraGuestCharge = *in.ExtraGuestCharge
	}
	if in.MaxExtraGuests != nil {
		if *in.MaxExtraGuests < 0 {
			return domain.ValidationError{Field: "maxExtraGuests", Msg: "must not be negative"}
		}
		r.MaxExtraGuests = *in.MaxExtraGuests
	}
	if in.ExtraBedCharge != nil {
		if *in.ExtraBedCharge < 0 {
			return domain.ValidationError{Field: "extraBedCharge", Msg: "must not be negative"}
		}
		r.ExtraBedCharge = *in.ExtraBedCharge
	}
	if in.MaxExtraBeds != nil {
		if *in.MaxExtraBeds < 0 {
			return domain.ValidationError{Field: "maxExtraBeds", Msg: "must not be negative"}
		}
		r.MaxExtraBeds = *in.MaxExtraBeds
	}
	return nil
}

func (s *CatalogService) CreateRoom(ctx context.Context, id Identity, hotelID uint, in RoomInput) (*models.Room, error) {
	if in.Title == nil || in.Price == nil || in.MaxPeople == nil {
		return nil, domain.ValidationError{Msg: "title, price and maxPeople are required"}
	}
	numbers, err := validateNumbers(in.RoomNumbers)
	if err != nil {
		return nil, err
	}
	room := models.Room{HotelID: hotelID}
	if err := applyRoom(&room, in); err != nil {
		return nil, err
	}
	room.RoomNumbers = numbers

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := HotelOwnerOrAdmin(ctx, tx.Hotels(), id, hotelID); err != nil {
			return err
		}
		if err := tx.Rooms().Create(ctx, &room); err != nil {
			return err
		}
		return refreshCheapestPrice(ctx, tx, hotelID)
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateRoom refuses to drop a room number that bookings still reference.
func (s *CatalogService) UpdateRoom(ctx context.Context, id Identity, roomID uint, in RoomInput) (*models.Room, error) {
	var numbers []models.RoomNumber
	if in.RoomNumbers != nil {
		var err error
		if numbers, err = validateNumbers(in.RoomNumbers); err != nil {
			return nil, err
		}
	}

	var out *models.Room
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		room, err := tx.Rooms().FindByID(ctx, roomID)
		if err != nil {
			return err
		}
		if _, err := HotelOwnerOrAdmin(ctx, tx.Hotels(), id, room.HotelID); err != nil {
			return err
		}
		if err := applyRoom(room, in); err != nil {
			return err
		}

		if numbers != nil {
			keep := make(map[int]bool, len(numbers))
			for _, rn := range numbers {
				keep[rn.Number] = true
			}
			for _, rn := range room.RoomNumbers {
				if keep[rn.Number] {
					continue
				}
				n, err := tx.Bookings().CountByRoomNumber(ctx, room.ID, rn.Number)
				if err != nil {
					return err
				}
				if n > 0 {
					return domain.ConflictError{Resource: "room", Msg: fmt.Sprintf("number %d is referenced by bookings", rn.Number)}
				}
			}
			room.RoomNumbers = numbers
		} else {
			room.RoomNumbers = nil
		}

		if err := tx.Rooms().Update(ctx, room); err != nil {
			return err
		}
		if err := refreshCheapestPrice(ctx, tx, room.HotelID); err != nil {
			return err
		}
		out, err = tx.Rooms().FindByID(ctx, room.ID)
		return err
	})
	return out, err
}

func (s *CatalogService) DeleteRoom(ctx context.Context, id Identity, roomID uint) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		room, err := tx.Rooms().FindByID(ctx, roomID)
		if err != nil {
			return err
		}
		if _, err := HotelOwnerOrAdmin(ctx, tx.Hotels(), id, room.HotelID); err != nil {
			return err
		}
		n, err := tx.Bookings().CountByRoom(ctx, roomID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ConflictError{Resource: "room", Msg: fmt.Sprintf("referenced by %d booking line(s)", n)}
		}
		if err := tx.Rooms().Delete(ctx, roomID); err != nil {
			return err
		}
		return refreshCheapestPrice(ctx, tx, room.HotelID)
	})
}

// refreshCheapestPrice sets the hotel's cheapestPrice to its lowest room
// price, or 0 when it has no rooms.
func refreshCheapestPrice(ctx context.Context, tx repository.Store, hotelID uint) error {
	h, err := tx.Hotels().FindByID(ctx, hotelID)
	if err != nil {
		return err
	}
	cheapest := 0.0
	for i, r := range h.Rooms {
		if i == 0 || r.Price < cheapest {
			cheapest = r.Price
		}
	}
	if cheapest == h.CheapestPrice {
		return nil
	}
	return tx.Hotels().SetCheapestPrice(ctx, hotelID, cheapest)
}
