package services

import (
	"context"

	"hotel-booking/domain"
	"hotel-booking/models"
	"hotel-booking/repository"
)

// Identity is the caller as resolved from the session for one request.
// The zero value is an anonymous caller.
type Identity struct {
	UserID  uint `json:"id"`
	IsAdmin bool `json:"isAdmin"`
}

func (i Identity) Anonymous() bool { return i.UserID == 0 }

func requireSession(id Identity) error {
	if id.Anonymous() {
		return domain.UnauthenticatedError{}
	}
	return nil
}

// SelfOrAdmin allows the user named by targetUserID, or any admin.
func SelfOrAdmin(id Identity, targetUserID uint) error {
	if err := requireSession(id); err != nil {
		return err
	}
	if id.IsAdmin || id.UserID == targetUserID {
		return nil
	}
	return domain.ForbiddenError{}
}

func AdminOnly(id Identity) error {
	if err := requireSession(id); err != nil {
		return err
	}
	if !id.IsAdmin {
		return domain.ForbiddenError{Msg: "admin only"}
	}
	return nil
}

// HotelOwnerOrAdmin loads the hotel and allows its owner or an admin.
func HotelOwnerOrAdmin(ctx context.Context, hotels repository.HotelRepository, id Identity, hotelID uint) (*models.Hotel, error) {
	if err := requireSession(id); err != nil {
		return nil, err
	}
	h, err := hotels.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !id.IsAdmin && h.OwnerID != id.UserID {
		return nil, domain.ForbiddenError{Msg: "you do not own this hotel"}
	}
	return h, nil
}

// BookingReader allows the guest who booked, the hotel's owner, or an admin.
func BookingReader(id Identity, b *models.Booking) error {
	if err := requireSession(id); err != nil {
		return err
	}
	if id.IsAdmin || b.UserID == id.UserID || b.HotelOwnerID == id.UserID {
		return nil
	}
	return domain.ForbiddenError{}
}
