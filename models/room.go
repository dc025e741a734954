package models

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	HotelID     uint                        `gorm:"column:hotel_id;index;not null" json:"hotelId"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Price       float64                     `gorm:"not null" json:"price"`
	MaxPeople   int                         `gorm:"column:max_people;not null" json:"maxPeople"`
	Description string                      `gorm:"type:text" json:"desc,omitempty"`
	Photos      datatypes.JSONSlice[string] `json:"photos"`

	ExtraGuestCharge float64 `gorm:"column:extra_guest_charge" json:"extraGuestCharge"`
	MaxExtraGuests   int     `gorm:"column:max_extra_guests" json:"maxExtraGuests"`
	ExtraBedCharge   float64 `gorm:"column:extra_bed_charge" json:"extraBedCharge"`
	MaxExtraBeds     int     `gorm:"column:max_extra_beds" json:"maxExtraBeds"`

	RoomNumbers []RoomNumber `gorm:"foreignKey:RoomID" json:"roomNumbers"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomNumber is one physical unit of a Room with its own calendar.
type RoomNumber struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	RoomID           uint              `gorm:"column:room_id;uniqueIndex:idx_room_number;not null" json:"roomId"`
	Number           int               `gorm:"column:number;uniqueIndex:idx_room_number;not null" json:"number"`
	UnavailableDates []UnavailableDate `gorm:"foreignKey:RoomNumberID" json:"unavailableDates"`
}

// UnavailableDate is a single blocked night. BookingID is nil for manual blocks.
type UnavailableDate struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	RoomNumberID uint      `gorm:"column:room_number_id;uniqueIndex:idx_room_number_date;not null" json:"-"`
	Date         time.Time `gorm:"column:date;type:date;uniqueIndex:idx_room_number_date;not null" json:"date"`
	BookingID    *uint     `gorm:"column:booking_id;index" json:"bookingId,omitempty"`
}

func (UnavailableDate) TableName() string { return "room_unavailable_dates" }
