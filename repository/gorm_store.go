package repository

import (
	"context"
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"hotel-booking/domain"
)

// GormStore is the MySQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository       { return gormUsers{db: s.db} }
func (s *GormStore) Hotels() HotelRepository     { return gormHotels{db: s.db} }
func (s *GormStore) Rooms() RoomRepository       { return gormRooms{db: s.db} }
func (s *GormStore) Bookings() BookingRepository { return gormBookings{db: s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}

// duplicateKey reports whether err is a unique-index violation and, when the
// driver tells us, which column tripped it.
func duplicateKey(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var merr *mysqldriver.MySQLError
	if errors.As(err, &merr) && merr.Number == 1062 {
		return keyColumn(merr.Message), true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "duplicate entry") || strings.Contains(lower, "unique constraint") {
		return keyColumn(err.Error()), true
	}
	return "", false
}

// keyColumn extracts "email" from "Duplicate entry 'a@b' for key 'users.idx_users_email'".
func keyColumn(msg string) string {
	idx := strings.LastIndex(msg, "for key '")
	if idx < 0 {
		return ""
	}
	key := strings.TrimSuffix(msg[idx+len("for key '"):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	for _, col := range []string{"email", "username", "number", "date"} {
		if strings.HasSuffix(key, "_"+col) {
			return col
		}
	}
	return key
}
