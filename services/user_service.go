package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hotel-booking/domain"
	"hotel-booking/models"
	"hotel-booking/repository"
)

type UserUpdateInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
	FullName *string `json:"fullName"`
	Country  *string `json:"country"`
	City     *string `json:"city"`
	Phone    *string `json:"phone"`
	Img      *string `json:"img"`
}

type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) List(ctx context.Context, id Identity) ([]models.User, error) {
	if err := AdminOnly(id); err != nil {
		return nil, err
	}
	return s.store.Users().List(ctx)
}

func (s *UserService) Get(ctx context.Context, id Identity, userID uint) (*models.User, error) {
	if err := SelfOrAdmin(id, userID); err != nil {
		return nil, err
	}
	return s.store.Users().FindByID(ctx, userID)
}

func (s *UserService) Update(ctx context.Context, id Identity, userID uint, in UserUpdateInput) (*models.User, error) {
	if err := SelfOrAdmin(id, userID); err != nil {
		return nil, err
	}
	if in.IsAdmin != nil && !id.IsAdmin {
		return nil, domain.ForbiddenError{Msg: "only an admin can change admin rights"}
	}

	u, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, domain.ValidationError{Field: "username", Msg: "must not be empty"}
		}
		u.Username = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !strings.Contains(email, "@") {
			return nil, domain.ValidationError{Field: "email", Msg: "a valid email is required"}
		}
		u.Email = email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ValidationError{Field: "password", Msg: "must not be empty"}
		}
		if u.Password, err = hashPassword(*in.Password); err != nil {
			return nil, err
		}
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{in.FullName, &u.FullName},
		{in.Country, &u.Country},
		{in.City, &u.City},
		{in.Phone, &u.Phone},
		{in.Img, &u.Img},
	} {
		if f.src != nil {
			*f.dst = strings.TrimSpace(*f.src)
		}
	}

	if err := s.store.Users().Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete refuses while the user still owns hotels or is recorded as the
// hotel owner on other guests' bookings. Otherwise the user's bookings are
// cancelled, which frees their nights, and saved hotels are unlinked.
func (s *UserService) Delete(ctx context.Context, id Identity, userID uint) error {
	if err := SelfOrAdmin(id, userID); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().FindByID(ctx, userID); err != nil {
			return err
		}
		owned, err := tx.Hotels().List(ctx, repository.HotelFilter{OwnerID: userID, Limit: 1})
		if err != nil {
			return err
		}
		if len(owned) > 0 {
			return domain.ConflictError{Resource: "user", Msg: "still owns hotels"}
		}
		received, err := tx.Bookings().ListByHotelOwner(ctx, userID)
		if err != nil {
			return err
		}
		for _, b := range received {
			if b.UserID != userID {
				return domain.ConflictError{Resource: "user", Msg: fmt.Sprintf("still the hotel owner on booking %d", b.ID)}
			}
		}
		bookings, err := tx.Bookings().ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for i := range bookings {
			if err := cancelBooking(ctx, tx, &bookings[i]); err != nil {
				return fmt.Errorf("cancel booking %d: %w", bookings[i].ID, err)
			}
		}
		return tx.Users().Delete(ctx, userID)
	})
}

func (s *UserService) SaveHotel(ctx context.Context, id Identity, userID, hotelID uint) error {
	if err := SelfOrAdmin(id, userID); err != nil {
		return err
	}
	if _, err := s.store.Users().FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.store.Hotels().FindByID(ctx, hotelID); err != nil {
		return err
	}
	return s.store.Users().AddSavedHotel(ctx, userID, hotelID)
}

func (s *UserService) UnsaveHotel(ctx context.Context, id Identity, userID, hotelID uint) error {
	if err := SelfOrAdmin(id, userID); err != nil {
		return err
	}
	return s.store.Users().RemoveSavedHotel(ctx, userID, hotelID)
}

func (s *UserService) SavedHotels(ctx context.Context, id Identity, userID uint) ([]models.Hotel, error) {
	if err := SelfOrAdmin(id, userID); err != nil {
		return nil, err
	}
	return s.store.Users().SavedHotels(ctx, userID)
}

// EnsureAdmin creates the bootstrap admin when no user has that email yet.
// An existing user with the email is promoted but keeps its password.
func (s *UserService) EnsureAdmin(ctx context.Context, email, username, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	u, err := s.store.Users().FindByEmail(ctx, email)
	switch {
	case err == nil:
		if u.IsAdmin {
			return nil
		}
		u.IsAdmin = true
		if err := s.store.Users().Update(ctx, u); err != nil {
			return fmt.Errorf("promote %s: %w", email, err)
		}
		log.Printf("[bootstrap] promoted %s to admin", email)
		return nil
	case !domain.IsNotFound(err):
		return err
	}

	if strings.TrimSpace(username) == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{Username: strings.TrimSpace(username), Email: email, Password: hash, IsAdmin: true}
	if err := s.store.Users().Create(ctx, &admin); err != nil {
		return fmt.Errorf("create admin %s: %w", email, err)
	}
	log.Printf("[bootstrap] created admin %s", email)
	return nil
}
