package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotel-booking/models"
)

type gormBookings struct {
	db *gorm.DB
}

func (r gormBookings) Create(ctx context.Context, b *models.Booking) error {
	if err := r.db.WithContext(ctx).Omit("Hotel", "HotelOwner", "User", "Room").Create(b).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r gormBookings) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("HotelOwner").
		Preload("User").
		Preload("Room").
		Preload("RoomDetails", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&b, id).Error
	if err != nil {
		return nil, notFound(err, "booking")
	}
	return &b, nil
}

func (r gormBookings) list(ctx context.Context, where string, args ...any) *gorm.DB {
	q := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("Room").
		Preload("RoomDetails", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
	if where != "" {
		q = q.Where(where, args...)
	}
	return q
}

func (r gormBookings) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var list []models.Booking
	if err := r.list(ctx, "user_id = ?", userID).Order("check_in DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("bookings of user %d: %w", userID, err)
	}
	return list, nil
}

func (r gormBookings) ListByHotelOwner(ctx context.Context, ownerID uint) ([]models.Booking, error) {
	var list []models.Booking
	err := r.list(ctx, "hotel_owner_id = ?", ownerID).Preload("User").Order("check_in DESC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("bookings for owner %d: %w", ownerID, err)
	}
	return list, nil
}

func (r gormBookings) ListAll(ctx context.Context) ([]models.Booking, error) {
	var list []models.Booking
	if err := r.list(ctx, "").Preload("User").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return list, nil
}

func (r gormBookings) ListUpcoming(ctx context.Context, userID uint, from time.Time) ([]models.Booking, error) {
	var list []models.Booking
	err := r.list(ctx, "user_id = ? AND check_in >= ?", userID, from).Order("check_in ASC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("upcoming bookings of user %d: %w", userID, err)
	}
	return list, nil
}

func (r gormBookings) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&models.BookingRoomDetail{}).Error; err != nil {
			return fmt.Errorf("delete lines of booking %d: %w", id, err)
		}
		if err := tx.Delete(&models.Booking{}, id).Error; err != nil {
			return fmt.Errorf("delete booking %d: %w", id, err)
		}
		return nil
	})
}

func (r gormBookings) DeleteDetails(ctx context.Context, bookingID uint, detailIDs []uint) error {
	if len(detailIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND id IN ?", bookingID, detailIDs).
		Delete(&models.BookingRoomDetail{}).Error
	if err != nil {
		return fmt.Errorf("delete lines of booking %d: %w", bookingID, err)
	}
	return r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", bookingID).
		UpdateColumn("updated_at", time.Now()).Error
}

func (r gormBookings) CountByRoom(ctx context.Context, roomID uint) (int64, error) {
	var n int64
	lines := r.db.Model(&models.BookingRoomDetail{}).Select("booking_id").Where("room_id = ?", roomID)
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("room_id = ? OR id IN (?)", roomID, lines).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count bookings of room %d: %w", roomID, err)
	}
	return n, nil
}

func (r gormBookings) CountByRoomNumber(ctx context.Context, roomID uint, number int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.BookingRoomDetail{}).
		Where("room_id = ? AND number = ?", roomID, number).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count bookings of room %d number %d: %w", roomID, number, err)
	}
	return n, nil
}

func (r gormBookings) CountByHotel(ctx context.Context, hotelID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("hotel_id = ?", hotelID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count bookings of hotel %d: %w", hotelID, err)
	}
	return n, nil
}
