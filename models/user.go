package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:190;not null" json:"email"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash, never returned
	IsAdmin   bool      `gorm:"column:is_admin;default:false" json:"isAdmin"`
	FullName  string    `gorm:"size:255" json:"fullName,omitempty"`
	Country   string    `gorm:"size:100" json:"country,omitempty"`
	City      string    `gorm:"size:100" json:"city,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Img       string    `gorm:"size:255" json:"img,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	SavedHotels []Hotel `gorm:"many2many:user_saved_hotels;" json:"savedHotels,omitempty"`
}

// Profile is the public view of a user: no password, no admin flag.
type Profile struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName,omitempty"`
	Country     string    `json:"country,omitempty"`
	City        string    `json:"city,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Img         string    `json:"img,omitempty"`
	SavedHotels []uint    `json:"savedHotels"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u User) Profile() Profile {
	saved := make([]uint, 0, len(u.SavedHotels))
	for _, h := range u.SavedHotels {
		saved = append(saved, h.ID)
	}
	return Profile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Country:     u.Country,
		City:        u.City,
		Phone:       u.Phone,
		Img:         u.Img,
		SavedHotels: saved,
		CreatedAt:   u.CreatedAt,
	}
}
