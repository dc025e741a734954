package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel-booking/domain"
	"hotel-booking/models"
)

// MemoryStore keeps everything in process. Transactions hold a single
// store-wide lock and work on a copy that replaces the live data only when
// fn succeeds, so a failed transaction leaves no trace.
type MemoryStore struct {
	state *memState
	data  *memData // set only on transaction views
}

type memState struct {
	mu   sync.Mutex
	data *memData
}

type memData struct {
	seq      uint
	users    map[uint]models.User
	saved    map[uint]map[uint]bool
	hotels   map[uint]models.Hotel
	rooms    map[uint]models.Room
	numbers  map[uint]models.RoomNumber
	dates    map[uint]models.UnavailableDate
	bookings map[uint]models.Booking
	details  map[uint]models.BookingRoomDetail
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memState{data: newMemData()}}
}

func newMemData() *memData {
	return &memData{
		users:    map[uint]models.User{},
		saved:    map[uint]map[uint]bool{},
		hotels:   map[uint]models.Hotel{},
		rooms:    map[uint]models.Room{},
		numbers:  map[uint]models.RoomNumber{},
		dates:    map[uint]models.UnavailableDate{},
		bookings: map[uint]models.Booking{},
		details:  map[uint]models.BookingRoomDetail{},
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	c.seq = d.seq
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.saved {
		set := make(map[uint]bool, len(v))
		for h := range v {
			set[h] = true
		}
		c.saved[k] = set
	}
	for k, v := range d.hotels {
		c.hotels[k] = v
	}
	for k, v := range d.rooms {
		c.rooms[k] = v
	}
	for k, v := range d.numbers {
		c.numbers[k] = v
	}
	for k, v := range d.dates {
		c.dates[k] = v
	}
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	for k, v := range d.details {
		c.details[k] = v
	}
	return c
}

func (d *memData) nextID() uint {
	d.seq++
	return d.seq
}

// view returns the data to operate on and a release func.
func (s *MemoryStore) view() (*memData, func()) {
	if s.data != nil {
		return s.data, func() {}
	}
	s.state.mu.Lock()
	return s.state.data, s.state.mu.Unlock
}

func (s *MemoryStore) Users() UserRepository       { return memUsers{s} }
func (s *MemoryStore) Hotels() HotelRepository     { return memHotels{s} }
func (s *MemoryStore) Rooms() RoomRepository       { return memRooms{s} }
func (s *MemoryStore) Bookings() BookingRepository { return memBookings{s} }

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.data != nil {
		c := s.data.clone()
		if err := fn(&MemoryStore{state: s.state, data: c}); err != nil {
			return err
		}
		*s.data = *c
		return nil
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	c := s.state.data.clone()
	if err := fn(&MemoryStore{state: s.state, data: c}); err != nil {
		return err
	}
	s.state.data = c
	return nil
}

func dayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// ---- users ----

type memUsers struct{ s *MemoryStore }

func (r memUsers) uniqueClash(d *memData, u *models.User) string {
	for id, other := range d.users {
		if id == u.ID {
			continue
		}
		if strings.EqualFold(other.Username, u.Username) {
			return "username"
		}
		if strings.EqualFold(other.Email, u.Email) {
			return "email"
		}
	}
	return ""
}

func (r memUsers) Create(_ context.Context, u *models.User) error {
	d, done := r.s.view()
	defer done()
	if field := r.uniqueClash(d, u); field != "" {
		return domain.DuplicateKeyError{Field: field}
	}
	now := time.Now()
	u.ID = d.nextID()
	u.CreatedAt, u.UpdatedAt = now, now
	stored := *u
	stored.SavedHotels = nil
	d.users[u.ID] = stored
	return nil
}

func (r memUsers) withSaved(d *memData, u models.User) *models.User {
	u.SavedHotels = savedHotels(d, u.ID)
	return &u
}

func savedHotels(d *memData, userID uint) []models.Hotel {
	hotels := []models.Hotel{}
	for hotelID := range d.saved[userID] {
		if h, ok := d.hotels[hotelID]; ok {
			hotels = append(hotels, h)
		}
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].ID < hotels[j].ID })
	return hotels
}

func (r memUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	d, done := r.s.view()
	defer done()
	u, ok := d.users[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "user"}
	}
	return r.withSaved(d, u), nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	d, done := r.s.view()
	defer done()
	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			return r.withSaved(d, u), nil
		}
	}
	return nil, domain.NotFoundError{Resource: "user"}
}

func (r memUsers) List(_ context.Context) ([]models.User, error) {
	d, done := r.s.view()
	defer done()
	users := make([]models.User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r memUsers) Update(_ context.Context, u *models.User) error {
	d, done := r.s.view()
	defer done()
	cur, ok := d.users[u.ID]
	if !ok {
		return nil
	}
	if field := r.uniqueClash(d, u); field != "" {
		return domain.DuplicateKeyError{Field: field}
	}
	cur.Username, cur.Email, cur.Password, cur.IsAdmin = u.Username, u.Email, u.Password, u.IsAdmin
	cur.FullName, cur.Country, cur.City, cur.Phone, cur.Img = u.FullName, u.Country, u.City, u.Phone, u.Img
	cur.UpdatedAt = time.Now()
	d.users[u.ID] = cur
	u.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r memUsers) Delete(_ context.Context, id uint) error {
	d, done := r.s.view()
	defer done()
	delete(d.users, id)
	delete(d.saved, id)
	return nil
}

func (r memUsers) AddSavedHotel(_ context.Context, userID, hotelID uint) error {
	d, done := r.s.view()
	defer done()
	if d.saved[userID] == nil {
		d.saved[userID] = map[uint]bool{}
	}
	d.saved[userID][hotelID] = true
	return nil
}

func (r memUsers) RemoveSavedHotel(_ context.Context, userID, hotelID uint) error {
	d, done := r.s.view()
	defer done()
	delete(d.saved[userID], hotelID)
	return nil
}

func (r memUsers) SavedHotels(_ context.Context, userID uint) ([]models.Hotel, error) {
	d, done := r.s.view()
	defer done()
	return savedHotels(d, userID), nil
}

// ---- hotels ----

type memHotels struct{ s *MemoryStore }

func (r memHotels) Create(_ context.Context, h *models.Hotel) error {
	d, done := r.s.view()
	defer done()
	now := time.Now()
	h.ID = d.nextID()
	h.CreatedAt, h.UpdatedAt = now, now
	stored := *h
	stored.Rooms, stored.Owner = nil, nil
	d.hotels[h.ID] = stored
	return nil
}

func (r memHotels) FindByID(_ context.Context, id uint) (*models.Hotel, error) {
	d, done := r.s.view()
	defer done()
	h, ok := d.hotels[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "hotel"}
	}
	h.Rooms = []models.Room{}
	for _, room := range roomsOf(d, id) {
		room.RoomNumbers = numbersOf(d, room.ID, false, time.Time{}, time.Time{})
		h.Rooms = append(h.Rooms, room)
	}
	return &h, nil
}

func roomsOf(d *memData, hotelID uint) []models.Room {
	rooms := []models.Room{}
	for _, room := range d.rooms {
		if room.HotelID == hotelID {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}

func (r memHotels) List(_ context.Context, f HotelFilter) ([]models.Hotel, error) {
	d, done := r.s.view()
	defer done()
	city := strings.ToLower(strings.TrimSpace(f.City))
	hotels := []models.Hotel{}
	for _, h := range d.hotels {
		switch {
		case city != "" && strings.ToLower(h.City) != city:
			continue
		case f.Type != "" && h.Type != f.Type:
			continue
		case f.Featured != nil && h.Featured != *f.Featured:
			continue
		case f.MinPrice != nil && h.CheapestPrice < *f.MinPrice:
			continue
		case f.MaxPrice != nil && h.CheapestPrice > *f.MaxPrice:
			continue
		case f.OwnerID != 0 && h.OwnerID != f.OwnerID:
			continue
		}
		hotels = append(hotels, h)
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].ID < hotels[j].ID })
	if f.Limit > 0 && len(hotels) > f.Limit {
		hotels = hotels[:f.Limit]
	}
	return hotels, nil
}

func (r memHotels) Update(_ context.Context, h *models.Hotel) error {
	d, done := r.s.view()
	defer done()
	cur, ok := d.hotels[h.ID]
	if !ok {
		return nil
	}
	cur.Name, cur.Type, cur.City, cur.Address = h.Name, h.Type, h.City, h.Address
	cur.Distance, cur.Title, cur.Description, cur.Photos = h.Distance, h.Title, h.Description, h.Photos
	cur.Rating, cur.Featured, cur.OwnerID = h.Rating, h.Featured, h.OwnerID
	cur.UpdatedAt = time.Now()
	d.hotels[h.ID] = cur
	return nil
}

func (r memHotels) Delete(_ context.Context, id uint) error {
	d, done := r.s.view()
	defer done()
	for _, room := range roomsOf(d, id) {
		deleteMemRoom(d, room.ID)
	}
	for _, set := range d.saved {
		delete(set, id)
	}
	delete(d.hotels, id)
	return nil
}

func (r memHotels) CountByCity(_ context.Context, cities []string) ([]models.CityCount, error) {
	d, done := r.s.view()
	defer done()
	out := make([]models.CityCount, 0, len(cities))
	for _, c := range cities {
		c = strings.TrimSpace(c)
		var n int64
		for _, h := range d.hotels {
			if strings.EqualFold(h.City, c) {
				n++
			}
		}
		out = append(out, models.CityCount{City: c, Count: n})
	}
	return out, nil
}

func (r memHotels) CountByType(_ context.Context) ([]models.TypeCount, error) {
	d, done := r.s.view()
	defer done()
	out := make([]models.TypeCount, 0, len(models.HotelTypes))
	for _, t := range models.HotelTypes {
		var n int64
		for _, h := range d.hotels {
			if h.Type == t {
				n++
			}
		}
		out = append(out, models.TypeCount{Type: t, Count: n})
	}
	return out, nil
}

func (r memHotels) AddBookingsCount(_ context.Context, id uint, delta int) error {
	d, done := r.s.view()
	defer done()
	if h, ok := d.hotels[id]; ok {
		h.BookingsCount += delta
		if h.BookingsCount < 0 {
			h.BookingsCount = 0
		}
		d.hotels[id] = h
	}
	return nil
}

func (r memHotels) SetCheapestPrice(_ context.Context, id uint, price float64) error {
	d, done := r.s.view()
	defer done()
	if h, ok := d.hotels[id]; ok {
		h.CheapestPrice = price
		d.hotels[id] = h
	}
	return nil
}

// ---- rooms ----

type memRooms struct{ s *MemoryStore }

// numbersOf returns the units of a room; calendars are attached when
// withDates is set and filtered to [from, to) when both bounds are non-zero.
func numbersOf(d *memData, roomID uint, withDates bool, from, to time.Time) []models.RoomNumber {
	out := []models.RoomNumber{}
	for _, rn := range d.numbers {
		if rn.RoomID != roomID {
			continue
		}
		if withDates {
			rn.UnavailableDates = []models.UnavailableDate{}
			for _, ud := range d.dates {
				if ud.RoomNumberID != rn.ID {
					continue
				}
				if !from.IsZero() && !to.IsZero() && (ud.Date.Before(from) || !ud.Date.Before(to)) {
					continue
				}
				rn.UnavailableDates = append(rn.UnavailableDates, ud)
			}
			sort.Slice(rn.UnavailableDates, func(i, j int) bool {
				return rn.UnavailableDates[i].Date.Before(rn.UnavailableDates[j].Date)
			})
		}
		out = append(out, rn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (r memRooms) Create(_ context.Context, room *models.Room) error {
	d, done := r.s.view()
	defer done()
	seen := map[int]bool{}
	for _, rn := range room.RoomNumbers {
		if seen[rn.Number] {
			return domain.ValidationError{Field: "roomNumbers", Msg: "room numbers must be unique"}
		}
		seen[rn.Number] = true
	}
	now := time.Now()
	room.ID = d.nextID()
	room.CreatedAt, room.UpdatedAt = now, now
	for i := range room.RoomNumbers {
		rn := &room.RoomNumbers[i]
		rn.ID = d.nextID()
		rn.RoomID = room.ID
		rn.UnavailableDates = nil
		d.numbers[rn.ID] = *rn
	}
	stored := *room
	stored.RoomNumbers = nil
	d.rooms[room.ID] = stored
	return nil
}

func (r memRooms) FindByID(_ context.Context, id uint) (*models.Room, error) {
	d, done := r.s.view()
	defer done()
	room, ok := d.rooms[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "room"}
	}
	room.RoomNumbers = numbersOf(d, id, true, time.Time{}, time.Time{})
	return &room, nil
}

func (r memRooms) List(_ context.Context) ([]models.Room, error) {
	d, done := r.s.view()
	defer done()
	rooms := make([]models.Room, 0, len(d.rooms))
	for _, room := range d.rooms {
		room.RoomNumbers = numbersOf(d, room.ID, false, time.Time{}, time.Time{})
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r memRooms) ListByHotel(_ context.Context, hotelID uint, from, to time.Time) ([]models.Room, error) {
	d, done := r.s.view()
	defer done()
	rooms := roomsOf(d, hotelID)
	for i := range rooms {
		rooms[i].RoomNumbers = numbersOf(d, rooms[i].ID, true, from, to)
	}
	return rooms, nil
}

func (r memRooms) Update(_ context.Context, room *models.Room) error {
	d, done := r.s.view()
	defer done()
	cur, ok := d.rooms[room.ID]
	if !ok {
		return nil
	}
	cur.Title, cur.Price, cur.MaxPeople, cur.Description, cur.Photos = room.Title, room.Price, room.MaxPeople, room.Description, room.Photos
	cur.ExtraGuestCharge, cur.MaxExtraGuests = room.ExtraGuestCharge, room.MaxExtraGuests
	cur.ExtraBedCharge, cur.MaxExtraBeds = room.ExtraBedCharge, room.MaxExtraBeds
	cur.UpdatedAt = time.Now()
	d.rooms[room.ID] = cur

	if room.RoomNumbers != nil {
		wanted := map[int]bool{}
		for _, rn := range room.RoomNumbers {
			wanted[rn.Number] = true
		}
		have := map[int]bool{}
		for id, rn := range d.numbers {
			if rn.RoomID != room.ID {
				continue
			}
			have[rn.Number] = true
			if !wanted[rn.Number] {
				deleteMemNumber(d, id)
			}
		}
		for _, rn := range room.RoomNumbers {
			if have[rn.Number] {
				continue
			}
			id := d.nextID()
			d.numbers[id] = models.RoomNumber{ID: id, RoomID: room.ID, Number: rn.Number}
		}
	}

	*room = cur
	room.RoomNumbers = numbersOf(d, room.ID, false, time.Time{}, time.Time{})
	return nil
}

func deleteMemNumber(d *memData, numberID uint) {
	for id, ud := range d.dates {
		if ud.RoomNumberID == numberID {
			delete(d.dates, id)
		}
	}
	delete(d.numbers, numberID)
}

func deleteMemRoom(d *memData, roomID uint) {
	for id, rn := range d.numbers {
		if rn.RoomID == roomID {
			deleteMemNumber(d, id)
		}
	}
	delete(d.rooms, roomID)
}

func (r memRooms) Delete(_ context.Context, id uint) error {
	d, done := r.s.view()
	defer done()
	deleteMemRoom(d, id)
	return nil
}

func (r memRooms) LockNumber(_ context.Context, roomID uint, number int) (*models.RoomNumber, error) {
	d, done := r.s.view()
	defer done()
	for _, rn := range d.numbers {
		if rn.RoomID == roomID && rn.Number == number {
			return &rn, nil
		}
	}
	return nil, domain.NotFoundError{Resource: fmt.Sprintf("room number %d", number)}
}

func (r memRooms) BlockedDates(_ context.Context, roomNumberID uint, dates []time.Time) ([]time.Time, error) {
	d, done := r.s.view()
	defer done()
	wanted := map[string]bool{}
	for _, t := range dates {
		wanted[dayKey(t)] = true
	}
	var blocked []time.Time
	for _, ud := range d.dates {
		if ud.RoomNumberID == roomNumberID && wanted[dayKey(ud.Date)] {
			blocked = append(blocked, ud.Date)
		}
	}
	sort.Slice(blocked, func(i, j int) bool { return blocked[i].Before(blocked[j]) })
	return blocked, nil
}

func (r memRooms) AddDates(_ context.Context, roomNumberID uint, dates []time.Time, bookingID *uint) error {
	d, done := r.s.view()
	defer done()
	taken := map[string]bool{}
	for _, ud := range d.dates {
		if ud.RoomNumberID == roomNumberID {
			taken[dayKey(ud.Date)] = true
		}
	}
	for _, t := range dates {
		k := dayKey(t)
		if taken[k] {
			return domain.ConflictError{Resource: "room number", Msg: "dates already reserved"}
		}
		taken[k] = true
	}
	for _, t := range dates {
		id := d.nextID()
		var owner *uint
		if bookingID != nil {
			b := *bookingID
			owner = &b
		}
		d.dates[id] = models.UnavailableDate{ID: id, RoomNumberID: roomNumberID, Date: t, BookingID: owner}
	}
	return nil
}

func (r memRooms) RemoveBookingDates(_ context.Context, roomNumberID uint, bookingID uint) error {
	d, done := r.s.view()
	defer done()
	for id, ud := range d.dates {
		if ud.RoomNumberID == roomNumberID && ud.BookingID != nil && *ud.BookingID == bookingID {
			delete(d.dates, id)
		}
	}
	return nil
}

func (r memRooms) RemoveManualDates(_ context.Context, roomNumberID uint, dates []time.Time) (int64, error) {
	d, done := r.s.view()
	defer done()
	wanted := map[string]bool{}
	for _, t := range dates {
		wanted[dayKey(t)] = true
	}
	var n int64
	for id, ud := range d.dates {
		if ud.RoomNumberID == roomNumberID && ud.BookingID == nil && wanted[dayKey(ud.Date)] {
			delete(d.dates, id)
			n++
		}
	}
	return n, nil
}

// ---- bookings ----

type memBookings struct{ s *MemoryStore }

func (r memBookings) Create(_ context.Context, b *models.Booking) error {
	d, done := r.s.view()
	defer done()
	now := time.Now()
	b.ID = d.nextID()
	b.CreatedAt, b.UpdatedAt = now, now
	for i := range b.RoomDetails {
		line := &b.RoomDetails[i]
		line.ID = d.nextID()
		line.BookingID = b.ID
		d.details[line.ID] = *line
	}
	stored := *b
	stored.RoomDetails, stored.Hotel, stored.HotelOwner, stored.User, stored.Room = nil, nil, nil, nil, nil
	d.bookings[b.ID] = stored
	return nil
}

// resolve attaches the relations gorm would preload.
func (r memBookings) resolve(d *memData, b models.Booking, withUser, withOwner bool) models.Booking {
	if h, ok := d.hotels[b.HotelID]; ok {
		b.Hotel = &h
	}
	if room, ok := d.rooms[b.RoomID]; ok {
		b.Room = &room
	}
	if withUser {
		if u, ok := d.users[b.UserID]; ok {
			b.User = &u
		}
	}
	if withOwner {
		if u, ok := d.users[b.HotelOwnerID]; ok {
			b.HotelOwner = &u
		}
	}
	b.RoomDetails = []models.BookingRoomDetail{}
	for _, line := range d.details {
		if line.BookingID == b.ID {
			b.RoomDetails = append(b.RoomDetails, line)
		}
	}
	sort.Slice(b.RoomDetails, func(i, j int) bool { return b.RoomDetails[i].ID < b.RoomDetails[j].ID })
	return b
}

func (r memBookings) FindByID(_ context.Context, id uint) (*models.Booking, error) {
	d, done := r.s.view()
	defer done()
	b, ok := d.bookings[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "booking"}
	}
	out := r.resolve(d, b, true, true)
	return &out, nil
}

func (r memBookings) filter(keep func(models.Booking) bool, withUser bool, less func(a, b models.Booking) bool) ([]models.Booking, error) {
	d, done := r.s.view()
	defer done()
	list := []models.Booking{}
	for _, b := range d.bookings {
		if keep(b) {
			list = append(list, r.resolve(d, b, withUser, false))
		}
	}
	sort.Slice(list, func(i, j int) bool { return less(list[i], list[j]) })
	return list, nil
}

func checkInDesc(a, b models.Booking) bool {
	if a.CheckIn.Equal(b.CheckIn) {
		return a.ID > b.ID
	}
	return a.CheckIn.After(b.CheckIn)
}

func (r memBookings) ListByUser(_ context.Context, userID uint) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.UserID == userID }, false, checkInDesc)
}

func (r memBookings) ListByHotelOwner(_ context.Context, ownerID uint) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.HotelOwnerID == ownerID }, true, checkInDesc)
}

func (r memBookings) ListAll(_ context.Context) ([]models.Booking, error) {
	return r.filter(func(models.Booking) bool { return true }, true, func(a, b models.Booking) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID > b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func (r memBookings) ListUpcoming(_ context.Context, userID uint, from time.Time) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool {
		return b.UserID == userID && !b.CheckIn.Before(from)
	}, false, func(a, b models.Booking) bool {
		if a.CheckIn.Equal(b.CheckIn) {
			return a.ID < b.ID
		}
		return a.CheckIn.Before(b.CheckIn)
	})
}

func (r memBookings) Delete(_ context.Context, id uint) error {
	d, done := r.s.view()
	defer done()
	for lineID, line := range d.details {
		if line.BookingID == id {
			delete(d.details, lineID)
		}
	}
	delete(d.bookings, id)
	return nil
}

func (r memBookings) DeleteDetails(_ context.Context, bookingID uint, detailIDs []uint) error {
	d, done := r.s.view()
	defer done()
	for _, id := range detailIDs {
		if line, ok := d.details[id]; ok && line.BookingID == bookingID {
			delete(d.details, id)
		}
	}
	if b, ok := d.bookings[bookingID]; ok {
		b.UpdatedAt = time.Now()
		d.bookings[bookingID] = b
	}
	return nil
}

func (r memBookings) countDetails(match func(models.BookingRoomDetail) bool) int64 {
	d, done := r.s.view()
	defer done()
	var n int64
	for _, line := range d.details {
		if match(line) {
			n++
		}
	}
	return n
}

// CountByRoom counts bookings whose primary room is roomID or that hold a
// line on it.
func (r memBookings) CountByRoom(_ context.Context, roomID uint) (int64, error) {
	d, done := r.s.view()
	defer done()
	referenced := map[uint]bool{}
	for _, b := range d.bookings {
		if b.RoomID == roomID {
			referenced[b.ID] = true
		}
	}
	for _, line := range d.details {
		if line.RoomID == roomID {
			referenced[line.BookingID] = true
		}
	}
	return int64(len(referenced)), nil
}

func (r memBookings) CountByRoomNumber(_ context.Context, roomID uint, number int) (int64, error) {
	return r.countDetails(func(l models.BookingRoomDetail) bool { return l.RoomID == roomID && l.Number == number }), nil
}

func (r memBookings) CountByHotel(_ context.Context, hotelID uint) (int64, error) {
	d, done := r.s.view()
	defer done()
	var n int64
	for _, b := range d.bookings {
		if b.HotelID == hotelID {
			n++
		}
	}
	return n, nil
}
