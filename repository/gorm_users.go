package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-booking/domain"
	"hotel-booking/models"
)

type gormUsers struct {
	db *gorm.DB
}

var userColumns = []string{"username", "email", "password", "is_admin", "full_name", "country", "city", "phone", "img"}

func (r gormUsers) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Omit("SavedHotels").Create(u).Error; err != nil {
		if field, ok := duplicateKey(err); ok {
			return domain.DuplicateKeyError{Field: field, Err: err}
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r gormUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Preload("SavedHotels").First(&u, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r gormUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Preload("SavedHotels").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r gormUsers) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r gormUsers) Update(ctx context.Context, u *models.User) error {
	res := r.db.WithContext(ctx).Model(u).Select(userColumns).Updates(u)
	if res.Error != nil {
		if field, ok := duplicateKey(res.Error); ok {
			return domain.DuplicateKeyError{Field: field, Err: res.Error}
		}
		return fmt.Errorf("update user %d: %w", u.ID, res.Error)
	}
	return nil
}

func (r gormUsers) Delete(ctx context.Context, id uint) error {
	// Select("SavedHotels") clears the join rows along with the user.
	if err := r.db.WithContext(ctx).Select("SavedHotels").Delete(&models.User{ID: id}).Error; err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (r gormUsers) AddSavedHotel(ctx context.Context, userID, hotelID uint) error {
	err := r.db.WithContext(ctx).Table("user_saved_hotels").
		Clauses(clause.Insert{Modifier: "IGNORE"}).
		Create(map[string]any{"user_id": userID, "hotel_id": hotelID}).Error
	if err != nil {
		return fmt.Errorf("save hotel %d for user %d: %w", hotelID, userID, err)
	}
	return nil
}

func (r gormUsers) RemoveSavedHotel(ctx context.Context, userID, hotelID uint) error {
	err := r.db.WithContext(ctx).
		Exec("DELETE FROM user_saved_hotels WHERE user_id = ? AND hotel_id = ?", userID, hotelID).Error
	if err != nil {
		return fmt.Errorf("unsave hotel %d for user %d: %w", hotelID, userID, err)
	}
	return nil
}

func (r gormUsers) SavedHotels(ctx context.Context, userID uint) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := r.db.WithContext(ctx).Model(&models.User{ID: userID}).Association("SavedHotels").Find(&hotels); err != nil {
		return nil, fmt.Errorf("saved hotels of user %d: %w", userID, err)
	}
	return hotels, nil
}
