package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type HotelType string

const (
	HotelTypeHotel     HotelType = "Hotel"
	HotelTypeApartment HotelType = "Apartment"
	HotelTypeResort    HotelType = "Resort"
	HotelTypeVilla     HotelType = "Villa"
	HotelTypeCabin     HotelType = "Cabin"
)

var HotelTypes = []HotelType{HotelTypeHotel, HotelTypeApartment, HotelTypeResort, HotelTypeVilla, HotelTypeCabin}

// ParseHotelType accepts any casing ("villa", "VILLA") and returns the canonical value.
func ParseHotelType(raw string) (HotelType, bool) {
	raw = strings.TrimSpace(raw)
	for _, t := range HotelTypes {
		if strings.EqualFold(string(t), raw) {
			return t, true
		}
	}
	return "", false
}

type Hotel struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	Name          string                      `gorm:"size:255;not null" json:"name"`
	Type          HotelType                   `gorm:"size:32;index;not null" json:"type"`
	City          string                      `gorm:"size:100;index;not null" json:"city"`
	Address       string                      `gorm:"size:255" json:"address"`
	Distance      string                      `gorm:"size:100" json:"distance,omitempty"`
	Title         string                      `gorm:"size:255" json:"title,omitempty"`
	Description   string                      `gorm:"type:text" json:"desc,omitempty"`
	Photos        datatypes.JSONSlice[string] `json:"photos"`
	Rating        float64                     `json:"rating"`
	CheapestPrice float64                     `gorm:"column:cheapest_price" json:"cheapestPrice"`
	Featured      bool                        `gorm:"default:false" json:"featured"`
	BookingsCount int                         `gorm:"column:bookings_count;default:0" json:"bookingsCount"`

	OwnerID uint  `gorm:"column:owner_id;index;not null" json:"ownerId"`
	Owner   *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CityCount struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

type TypeCount struct {
	Type  HotelType `json:"type"`
	Count int64     `json:"count"`
}
