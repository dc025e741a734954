package models

import (
	"time"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HotelID      uint `gorm:"column:hotel_id;index;not null" json:"hotelId"`
	HotelOwnerID uint `gorm:"column:hotel_owner_id;index;not null" json:"hotelOwnerId"`
	UserID       uint `gorm:"column:user_id;index;not null" json:"userId"`
	RoomID       uint `gorm:"column:room_id;index" json:"roomId"`

	CheckIn    time.Time `gorm:"column:check_in;type:date;index;not null" json:"checkIn"`
	CheckOut   time.Time `gorm:"column:check_out;type:date;not null" json:"checkOut"`
	AmountPaid float64   `gorm:"column:amount_paid" json:"amountPaid"`

	RoomDetails []BookingRoomDetail `gorm:"foreignKey:BookingID" json:"roomDetails"`

	Hotel      *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	HotelOwner *User  `gorm:"foreignKey:HotelOwnerID" json:"hotelOwner,omitempty"`
	User       *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room       *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingRoomDetail is one reserved room number within a booking.
type BookingRoomDetail struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	BookingID   uint `gorm:"column:booking_id;index;not null" json:"bookingId"`
	RoomID      uint `gorm:"column:room_id;index;not null" json:"roomId"`
	Number      int  `gorm:"column:number;not null" json:"number"`
	ExtraGuests int  `gorm:"column:extra_guests;default:0" json:"extraGuests"`
	ExtraBeds   int  `gorm:"column:extra_beds;default:0" json:"extraBeds"`
	Adults      int  `gorm:"column:adults" json:"adults"`
	Children    int  `gorm:"column:children;default:0" json:"children"`
}

// Nights returns the number of nights between check-in and check-out.
func (b Booking) Nights() int {
	n := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
