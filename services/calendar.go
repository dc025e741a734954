package services

import (
	"sort"
	"strings"
	"time"

	"hotel-booking/domain"
)

const dayLayout = "2006-01-02"

// maxStayNights caps how many calendar rows one request may write.
const maxStayNights = 366

var zeroTime time.Time

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts "2006-01-02" or an RFC 3339 timestamp and returns the
// calendar day it names.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.ValidationError{Msg: "date is required"}
	}
	if t, err := time.Parse(dayLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.ValidationError{Msg: "invalid date " + raw, Err: err}
	}
	return Day(t), nil
}

// StayNights lists the nights of a stay [checkIn, checkOut): the check-out
// day itself is not occupied.
func StayNights(checkIn, checkOut time.Time) ([]time.Time, error) {
	start, end := Day(checkIn), Day(checkOut)
	if !end.After(start) {
		return nil, domain.ValidationError{Field: "checkOut", Msg: "must be after check-in"}
	}
	var nights []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
		if len(nights) > maxStayNights {
			return nil, domain.ValidationError{Msg: "stay is too long"}
		}
	}
	return nights, nil
}

// uniqueDays normalizes, sorts and de-duplicates dates.
func uniqueDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, t := range dates {
		d := Day(t)
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func formatDays(dates []time.Time) string {
	parts := make([]string, 0, len(dates))
	for _, d := range dates {
		parts = append(parts, d.UTC().Format(dayLayout))
	}
	return strings.Join(parts, ", ")
}
