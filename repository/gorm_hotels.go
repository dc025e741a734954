package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-booking/models"
)

type gormHotels struct {
	db *gorm.DB
}

var hotelColumns = []string{"name", "type", "city", "address", "distance", "title", "description", "photos", "rating", "featured", "owner_id"}

func (r gormHotels) Create(ctx context.Context, h *models.Hotel) error {
	if err := r.db.WithContext(ctx).Omit("Rooms", "Owner").Create(h).Error; err != nil {
		return fmt.Errorf("create hotel: %w", err)
	}
	return nil
}

func (r gormHotels) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var h models.Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Rooms.RoomNumbers", func(db *gorm.DB) *gorm.DB { return db.Order("number ASC") }).
		First(&h, id).Error
	if err != nil {
		return nil, notFound(err, "hotel")
	}
	return &h, nil
}

func (r gormHotels) List(ctx context.Context, f HotelFilter) ([]models.Hotel, error) {
	q := r.db.WithContext(ctx).Model(&models.Hotel{})
	if city := strings.TrimSpace(f.City); city != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.MinPrice != nil {
		q = q.Where("cheapest_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("cheapest_price <= ?", *f.MaxPrice)
	}
	if f.OwnerID != 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var hotels []models.Hotel
	if err := q.Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}

func (r gormHotels) Update(ctx context.Context, h *models.Hotel) error {
	if err := r.db.WithContext(ctx).Model(h).Select(hotelColumns).Updates(h).Error; err != nil {
		return fmt.Errorf("update hotel %d: %w", h.ID, err)
	}
	return nil
}

// Delete removes the hotel with its rooms, room numbers, calendars and saved-hotel links.
func (r gormHotels) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomIDs []uint
		if err := tx.Model(&models.Room{}).Where("hotel_id = ?", id).Pluck("id", &roomIDs).Error; err != nil {
			return fmt.Errorf("rooms of hotel %d: %w", id, err)
		}
		for _, roomID := range roomIDs {
			if err := deleteRoom(tx, roomID); err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM user_saved_hotels WHERE hotel_id = ?", id).Error; err != nil {
			return fmt.Errorf("unlink saved hotel %d: %w", id, err)
		}
		if err := tx.Delete(&models.Hotel{}, id).Error; err != nil {
			return fmt.Errorf("delete hotel %d: %w", id, err)
		}
		return nil
	})
}

func (r gormHotels) CountByCity(ctx context.Context, cities []string) ([]models.CityCount, error) {
	if len(cities) == 0 {
		return []models.CityCount{}, nil
	}
	lowered := make([]string, 0, len(cities))
	for _, c := range cities {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(c)))
	}

	var rows []models.CityCount
	err := r.db.WithContext(ctx).Model(&models.Hotel{}).
		Select("LOWER(city) AS city, COUNT(*) AS count").
		Where("LOWER(city) IN ?", lowered).
		Group("LOWER(city)").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count hotels by city: %w", err)
	}

	byCity := make(map[string]int64, len(rows))
	for _, row := range rows {
		byCity[row.City] = row.Count
	}
	out := make([]models.CityCount, 0, len(cities))
	for i, c := range cities {
		out = append(out, models.CityCount{City: strings.TrimSpace(c), Count: byCity[lowered[i]]})
	}
	return out, nil
}

func (r gormHotels) CountByType(ctx context.Context) ([]models.TypeCount, error) {
	var rows []models.TypeCount
	err := r.db.WithContext(ctx).Model(&models.Hotel{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count hotels by type: %w", err)
	}

	byType := make(map[models.HotelType]int64, len(rows))
	for _, row := range rows {
		byType[row.Type] = row.Count
	}
	out := make([]models.TypeCount, 0, len(models.HotelTypes))
	for _, t := range models.HotelTypes {
		out = append(out, models.TypeCount{Type: t, Count: byType[t]})
	}
	return out, nil
}

func (r gormHotels) AddBookingsCount(ctx context.Context, id uint, delta int) error {
	err := r.db.WithContext(ctx).Model(&models.Hotel{}).Where("id = ?", id).
		UpdateColumn("bookings_count", gorm.Expr("GREATEST(bookings_count + ?, 0)", delta)).Error
	if err != nil {
		return fmt.Errorf("bump bookings count of hotel %d: %w", id, err)
	}
	return nil
}

func (r gormHotels) SetCheapestPrice(ctx context.Context, id uint, price float64) error {
	err := r.db.WithContext(ctx).Model(&models.Hotel{}).Where("id = ?", id).
		UpdateColumn("cheapest_price", price).Error
	if err != nil {
		return fmt.Errorf("set cheapest price of hotel %d: %w", id, err)
	}
	return nil
}
