package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-booking/domain"
	"hotel-booking/models"
)

type gormRooms struct {
	db *gorm.DB
}

var roomColumns = []string{"title", "price", "max_people", "description", "photos", "extra_guest_charge", "max_extra_guests", "extra_bed_charge", "max_extra_beds"}

func byNumber(db *gorm.DB) *gorm.DB { return db.Order("number ASC") }
func byDate(db *gorm.DB) *gorm.DB   { return db.Order("date ASC") }

func (r gormRooms) Create(ctx context.Context, room *models.Room) error {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		if _, ok := duplicateKey(err); ok {
			return domain.ValidationError{Field: "roomNumbers", Msg: "room numbers must be unique", Err: err}
		}
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (r gormRooms) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("RoomNumbers", byNumber).
		Preload("RoomNumbers.UnavailableDates", byDate).
		First(&room, id).Error
	if err != nil {
		return nil, notFound(err, "room")
	}
	return &room, nil
}

func (r gormRooms) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Preload("RoomNumbers", byNumber).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (r gormRooms) ListByHotel(ctx context.Context, hotelID uint, from, to time.Time) ([]models.Room, error) {
	dates := byDate
	if !from.IsZero() && !to.IsZero() {
		dates = func(db *gorm.DB) *gorm.DB {
			return db.Where("date >= ? AND date < ?", from, to).Order("date ASC")
		}
	}

	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Preload("RoomNumbers", byNumber).
		Preload("RoomNumbers.UnavailableDates", dates).
		Where("hotel_id = ?", hotelID).
		Order("id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("rooms of hotel %d: %w", hotelID, err)
	}
	return rooms, nil
}

func (r gormRooms) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(room).Omit("RoomNumbers").Select(roomColumns).Updates(room).Error; err != nil {
			return fmt.Errorf("update room %d: %w", room.ID, err)
		}
		if room.RoomNumbers == nil {
			return nil
		}

		var existing []models.RoomNumber
		if err := tx.Where("room_id = ?", room.ID).Find(&existing).Error; err != nil {
			return fmt.Errorf("numbers of room %d: %w", room.ID, err)
		}
		wanted := make(map[int]bool, len(room.RoomNumbers))
		for _, rn := range room.RoomNumbers {
			wanted[rn.Number] = true
		}
		have := make(map[int]bool, len(existing))
		for _, rn := range existing {
			have[rn.Number] = true
			if wanted[rn.Number] {
				continue
			}
			if err := tx.Where("room_number_id = ?", rn.ID).Delete(&models.UnavailableDate{}).Error; err != nil {
				return fmt.Errorf("drop calendar of room number %d: %w", rn.Number, err)
			}
			if err := tx.Delete(&models.RoomNumber{}, rn.ID).Error; err != nil {
				return fmt.Errorf("drop room number %d: %w", rn.Number, err)
			}
		}
		for _, rn := range room.RoomNumbers {
			if have[rn.Number] {
				continue
			}
			add := models.RoomNumber{RoomID: room.ID, Number: rn.Number}
			if err := tx.Create(&add).Error; err != nil {
				return fmt.Errorf("add room number %d: %w", rn.Number, err)
			}
		}

		room.RoomNumbers = nil
		return tx.Preload("RoomNumbers", byNumber).First(room, room.ID).Error
	})
}

func (r gormRooms) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteRoom(tx, id)
	})
}

func deleteRoom(tx *gorm.DB, roomID uint) error {
	var numberIDs []uint
	if err := tx.Model(&models.RoomNumber{}).Where("room_id = ?", roomID).Pluck("id", &numberIDs).Error; err != nil {
		return fmt.Errorf("numbers of room %d: %w", roomID, err)
	}
	if len(numberIDs) > 0 {
		if err := tx.Where("room_number_id IN ?", numberIDs).Delete(&models.UnavailableDate{}).Error; err != nil {
			return fmt.Errorf("drop calendars of room %d: %w", roomID, err)
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&models.RoomNumber{}).Error; err != nil {
			return fmt.Errorf("drop numbers of room %d: %w", roomID, err)
		}
	}
	if err := tx.Delete(&models.Room{}, roomID).Error; err != nil {
		return fmt.Errorf("delete room %d: %w", roomID, err)
	}
	return nil
}

func (r gormRooms) LockNumber(ctx context.Context, roomID uint, number int) (*models.RoomNumber, error) {
	var rn models.RoomNumber
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ? AND number = ?", roomID, number).
		First(&rn).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("room number %d", number))
	}
	return &rn, nil
}

func (r gormRooms) BlockedDates(ctx context.Context, roomNumberID uint, dates []time.Time) ([]time.Time, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	var blocked []time.Time
	err := r.db.WithContext(ctx).Model(&models.UnavailableDate{}).
		Where("room_number_id = ? AND date IN ?", roomNumberID, dates).
		Order("date ASC").
		Pluck("date", &blocked).Error
	if err != nil {
		return nil, fmt.Errorf("calendar of room number %d: %w", roomNumberID, err)
	}
	return blocked, nil
}

func (r gormRooms) AddDates(ctx context.Context, roomNumberID uint, dates []time.Time, bookingID *uint) error {
	if len(dates) == 0 {
		return nil
	}
	rows := make([]models.UnavailableDate, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.UnavailableDate{RoomNumberID: roomNumberID, Date: d, BookingID: bookingID})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		if _, ok := duplicateKey(err); ok {
			return domain.ConflictError{Resource: "room number", Msg: "dates already reserved", Err: err}
		}
		return fmt.Errorf("block dates on room number %d: %w", roomNumberID, err)
	}
	return nil
}

func (r gormRooms) RemoveBookingDates(ctx context.Context, roomNumberID uint, bookingID uint) error {
	err := r.db.WithContext(ctx).
		Where("room_number_id = ? AND booking_id = ?", roomNumberID, bookingID).
		Delete(&models.UnavailableDate{}).Error
	if err != nil {
		return fmt.Errorf("release booking %d on room number %d: %w", bookingID, roomNumberID, err)
	}
	return nil
}

func (r gormRooms) RemoveManualDates(ctx context.Context, roomNumberID uint, dates []time.Time) (int64, error) {
	if len(dates) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("room_number_id = ? AND booking_id IS NULL AND date IN ?", roomNumberID, dates).
		Delete(&models.UnavailableDate{})
	if res.Error != nil {
		return 0, fmt.Errorf("unblock dates on room number %d: %w", roomNumberID, res.Error)
	}
	return res.RowsAffected, nil
}
