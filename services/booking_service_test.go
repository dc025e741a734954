package services

import (
	"testing"
	"time"

	"hotel-booking/domain"
)

func TestCreateBookingComputesAmountAndBlocksNights(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	guest := f.newUser(t, "guest", false)
	h := f.newHotel(t, owner, "Paris")
	r := f.newRoom(t, owner, h.ID, 100, 2, 101, 102)

	b, err := f.bookings.Create(f.ctx, guest, guest.UserID, BookingInput{
		HotelID:  h.ID,
		RoomID:   r.ID,
		CheckIn:  "2024-06-01",
		CheckOut: "2024-06-04",
		RoomDetails: []BookingLineInput{
			{Number: 101, Adults: 2, ExtraGuests: 1, ExtraBeds: 1},
			{Number: 102, Adults: 1},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// 3 nights × ((100 + 20 + 10) + 100)
	if b.AmountPaid != 690 {
		t.Fatalf("expected 690, got %v", b.AmountPaid)
	}
	if b.HotelOwnerID != owner.UserID || b.Hotel == nil || b.User == nil || b.Room == nil || b.HotelOwner == nil {
		t.Fatalf("booking not resolved: %+v", b)
	}
	if b.Nights() != 3 || len(b.RoomDetails) != 2 {
		t.Fatalf("unexpected booking: %+v", b)
	}
	for _, n := range []int{101, 102} {
		if dates := f.calendar(t, r.ID, n); len(dates) != 3 {
			t.Fatalf("room %d: expected 3 blocked nights, got %v", n, dates)
		}
	}
	if got, _ := f.catalog.GetHotel(f.ctx, h.ID); got.BookingsCount != 1 {
		t.Fatalf("expected bookingsCount 1, got %d", got.BookingsCount)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	guest := f.newUser(t, "guest", false)
	h := f.newHotel(t, owner, "Paris")
	r := f.newRoom(t, owner, h.ID, 100, 2, 101)
	elsewhere := f.newHotel(t, owner, "Lyon")
	foreign := f.newRoom(t, owner, elsewhere.ID, 100, 2, 1)
	suite := f.newRoom(t, owner, h.ID, 150, 2, 201)

	base := func(lines ...BookingLineInput) BookingInput {
		return BookingInput{HotelID: h.ID, RoomID: r.ID, CheckIn: "2024-06-01", CheckOut: "2024-06-02", RoomDetails: lines}
	}
	cases := []struct {
		name  string
		in    BookingInput
		check func(error) bool
	}{
		{"no lines", base(), domain.IsValidation},
		{"too many extra guests", base(BookingLineInput{Number: 101, ExtraGuests: 2}), domain.IsValidation},
		{"too many extra beds", base(BookingLineInput{Number: 101, ExtraBeds: 3}), domain.IsValidation},
		{"too many occupants", base(BookingLineInput{Number: 101, Adults: 3, Children: 1, ExtraGuests: 1}), domain.IsValidation},
		{"unknown number", base(BookingLineInput{Number: 999}), domain.IsNotFound},
		{"room of another hotel", BookingInput{HotelID: h.ID, CheckIn: "2024-06-01", CheckOut: "2024-06-02",
			RoomDetails: []BookingLineInput{{RoomID: foreign.ID, Number: 1}}}, domain.IsValidation},
		{"primary room without a line", base(BookingLineInput{RoomID: suite.ID, Number: 201}), domain.IsValidation},
		{"same unit twice", base(BookingLineInput{Number: 101}, BookingLineInput{Number: 101}), domain.IsValidation},
		{"check-out before check-in", BookingInput{HotelID: h.ID, RoomID: r.ID, CheckIn: "2024-06-02", CheckOut: "2024-06-01",
			RoomDetails: []BookingLineInput{{Number: 101}}}, domain.IsValidation},
		{"unknown hotel", BookingInput{HotelID: h.ID + 100, RoomID: r.ID, CheckIn: "2024-06-01", CheckOut: "2024-06-02",
			RoomDetails: []BookingLineInput{{Number: 101}}}, domain.IsNotFound},
	}
	for _, tc := range cases {
		if _, err := f.bookings.Create(f.ctx, guest, guest.UserID, tc.in); !tc.check(err) {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
	if dates := f.calendar(t, r.ID, 101); len(dates) != 0 {
		t.Fatalf("failed bookings left dates behind: %v", dates)
	}
	if got, _ := f.catalog.GetHotel(f.ctx, h.ID); got.BookingsCount != 0 {
		t.Fatalf("failed bookings bumped the counter: %d", got.BookingsCount)
	}
}

func TestCreateBookingForSomeoneElse(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	guest := f.newUser(t, "guest", false)
	other := f.newUser(t, "other", false)
	admin := f.newUser(t, "admin", true)
	h := f.newHotel(t, owner, "Paris")
	r := f.newRoom(t, owner, h.ID, 100, 2, 101, 102)
	in := BookingInput{HotelID: h.ID, RoomID: r.ID, CheckIn: "2024-06-01", CheckOut: "2024-06-02",
		RoomDetails: []BookingLineInput{{Number: 101}}}

	if _, err := f.bookings.Create(f.ctx, other, guest.UserID, in); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	b, err := f.bookings.Create(f.ctx, admin, guest.UserID, in)
	if err != nil {
		t.Fatalf("admin booking on behalf of guest: %v", err)
	}
	if b.UserID != guest.UserID {
		t.Fatalf("booking made for the wrong user: %d", b.UserID)
	}
}

func TestOverlappingBookingConflicts(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	guest := f.newUser(t, "guest", false)
	h := f.newHotel(t, owner, "Paris")
	r := f.newRoom(t, owner, h.ID, 100, 2, 101, 102)

	f.book(t, guest, h.ID, r.ID, "2024-06-01", "2024-06-05", 101)
	_, err := f.bookings.Create(f.ctx, guest, guest.UserID, BookingInput{
		HotelID: h.ID, RoomID: r.ID, CheckIn: "2024-06-04", CheckOut: "2024-06-06",
		RoomDetails: []BookingLineInput{{Number: 102}, {Number: 101}},
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if dates := f.calendar(t, r.ID, 102); len(dates) != 0 {
		t.Fatalf("102 must stay free after the rollback, got %v", dates)
	}

	// back-to-back stays share the turnover day
	f.book(t, guest, h.ID, r.ID, "2024-06-05", "2024-06-07", 101)
}

func TestCancelEntireReleasesNightsAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	guest := f.newUser(t, "guest", false)
	h := f.newHotel(t, owner, "Paris")
	r := f.newRoom(t, owner, h.ID, 100, 2, 101)
	if _, err := f.avail.Reserve(f.ctx, owner, r.ID, 101, []time.Time{day("2024-06-20")}); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	b := f.book(t, guest, h.ID, r.ID, "2024-06-01", "2024-06-03", 101)

	if err := f.bookings.CancelEntire(f.ctx, guest, b.ID, guest.UserID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.bookings.GetByID(f.ctx, guest, b.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found after cancel, got %v", err)
	}
	if err := f.bookings.CancelEntire(f.ctx, guest, b.ID, guest.UserID); err != nil {
		t.Fatalf("second cancel should be a no-op, got %v", err)
	}
	dates := f.calendar(t, r.ID, 101)
	if len(dates) != 1 || !dates[0].Equal(day("2024-06-20")) {
		t.Fatalf("expected only the manual block to remain, got %v", dates)
	}
	if got, _ := f.catalog.GetHotel(f.ctx, h.ID); got.BookingsCount != 0 {
		t.Fatalf("expected bookingsCount back to 0, got %d", got.BookingsCount)
	}

	f.book(t, guest, h.ID, r.ID, "2024-06-01", "2024-06-03", 101)
}

func TestCancelEntireChecksOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	guest := f.newUser(t, "guest", false)
	other := f.newUser(t, "other", false)
	h := f.newHotel(t, owner, "Paris")
	r := f.newRoom(t, owner, h.ID, 100, 2, 101)
	b := f.book(t, guest, h.ID, r.ID, "2024-06-01", "2024-06-03", 101)

	if err := f.bookings.CancelEntire(f.ctx, other, b.ID, guest.UserID); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for a foreign user id, got %v", err)
	}
	if err := f.bookings.CancelEntire(f.ctx, other, b.ID, other.UserID); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for someone else's booking, got %v", err)
	}
}

func TestCancelRoomNumberKeepsOtherLines(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	guest := f.newUser(t, "guest", false)
	h := f.newHotel(t, owner, "Paris")
	r := f.newRoom(t, owner, h.ID, 100, 2, 101, 102)
	b := f.book(t, guest, h.ID, r.ID, "2024-06-01", "2024-06-03", 101, 102)

	got, err := f.bookings.CancelRoomNumber(f.ctx, guest, b.ID, guest.UserID, ptr(101))
	if err != nil {
		t.Fatalf("partial cancel: %v", err)
	}
	if len(got.RoomDetails) != 1 || got.RoomDetails[0].Number != 102 {
		t.Fatalf("expected only the 102 line, got %+v", got.RoomDetails)
	}
	if dates := f.calendar(t, r.ID, 101); len(dates) != 0 {
		t.Fatalf("101 should be free again, got %v", dates)
	}
	if dates := f.calendar(t, r.ID, 102); len(dates) != 2 {
		t.Fatalf("102 should stay blocked, got %v", dates)
	}

	list, err := f.bookings.ListByUser(f.ctx, guest, guest.UserID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != b.ID || len(list[0].RoomDetails) != 1 {
		t.Fatalf("expected the amended booking only, got %+v", list)
	}
}

func TestCancelRoomNumberEdgeCases(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	guest := f.newUser(t, "guest", false)
	h := f.newHotel(t, owner, "Paris")
	r := f.newRoom(t, owner, h.ID, 100, 2, 101)
	b := f.book(t, guest, h.ID, r.ID, "2024-06-01", "2024-06-03", 101)

	if _, err := f.bookings.CancelRoomNumber(f.ctx, guest, b.ID, guest.UserID, nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error without number, got %v", err)
	}
	if _, err := f.bookings.CancelRoomNumber(f.ctx, guest, b.ID+100, guest.UserID, ptr(101)); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	same, err := f.bookings.CancelRoomNumber(f.ctx, guest, b.ID, guest.UserID, ptr(555))
	if err != nil || same == nil || len(same.RoomDetails) != 1 {
		t.Fatalf("unmatched number should leave the booking untouched: %+v %v", same, err)
	}

	gone, err := f.bookings.CancelRoomNumber(f.ctx, guest, b.ID, guest.UserID, ptr(101))
	if err != nil || gone != nil {
		t.Fatalf("expected the emptied booking to be deleted: %+v %v", gone, err)
	}
	if _, err := f.bookings.GetByID(f.ctx, guest, b.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if dates := f.calendar(t, r.ID, 101); len(dates) != 0 {
		t.Fatalf("expected nights released, got %v", dates)
	}
}

func TestListUpcomingAndOwnerViews(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, "owner", false)
	guest := f.newUser(t, "guest", false)
	admin := f.newUser(t, "admin", true)
	h := f.newHotel(t, owner, "Paris")
	r := f.newRoom(t, owner, h.ID, 100, 2, 101)
	f.bookings.now = func() time.Time { return time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC) }

	past := f.book(t, guest, h.ID, r.ID, "2024-06-01", "2024-06-03", 101)
	later := f.book(t, guest, h.ID, r.ID, "2024-07-01", "2024-07-03", 101)
	today := f.book(t, guest, h.ID, r.ID, "2024-06-10", "2024-06-12", 101)

	up, err := f.bookings.ListUpcoming(f.ctx, guest, guest.UserID)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(up) != 2 || up[0].ID != today.ID || up[1].ID != later.ID {
		t.Fatalf("unexpected upcoming order: %+v", up)
	}

	mine, err := f.bookings.ListForOwner(f.ctx, owner, owner.UserID)
	if err != nil || len(mine) != 3 {
		t.Fatalf("owner view: %d %v", len(mine), err)
	}
	if _, err := f.bookings.ListAll(f.ctx, guest); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	all, err := f.bookings.ListAll(f.ctx, admin)
	if err != nil || len(all) != 3 {
		t.Fatalf("admin view: %d %v", len(all), err)
	}

	if _, err := f.bookings.GetByID(f.ctx, owner, past.ID); err != nil {
		t.Fatalf("hotel owner should read the booking: %v", err)
	}
	stranger := f.newUser(t, "stranger", false)
	if _, err := f.bookings.GetByID(f.ctx, stranger, past.ID); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
