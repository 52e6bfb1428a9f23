package services

import (
	"time"

	"github.com/srgjo27/staybook/internal/core/domain"
)

const (
	DefaultCheckInHour  = 8
	DefaultCheckOutHour = 14
)

// Normalizer pins check-in and check-out dates to fixed hours of the day in the
// zone the property operates in.
type Normalizer struct {
	CheckInHour  int
	CheckOutHour int
	Location     *time.Location
}

// NewNormalizer falls back to the system time zone when loc is nil.
func NewNormalizer(checkInHour, checkOutHour int, loc *time.Location) Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return Normalizer{
		CheckInHour:  checkInHour,
		CheckOutHour: checkOutHour,
		Location:     loc,
	}
}

// Normalize returns a copy of raw with CheckIn at CheckInHour and CheckOut at
// CheckOutHour. The calendar date of each value is read in the normalizer's
// location. Zero times are left untouched.
func (n Normalizer) Normalize(raw domain.Booking) domain.Booking {
	out := raw
	out.CheckIn = n.atHour(raw.CheckIn, n.CheckInHour)
	out.CheckOut = n.atHour(raw.CheckOut, n.CheckOutHour)
	return out
}

// ParseDate reads a yyyy-mm-dd calendar date in the normalizer's location.
func (n Normalizer) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, value, n.location())
}

// FormDates renders stored timestamps back into calendar dates for an edit form.
func (n Normalizer) FormDates(b domain.Booking) (checkIn, checkOut string) {
	loc := n.location()
	if !b.CheckIn.IsZero() {
		checkIn = b.CheckIn.In(loc).Format(domain.DateLayout)
	}
	if !b.CheckOut.IsZero() {
		checkOut = b.CheckOut.In(loc).Format(domain.DateLayout)
	}
	return checkIn, checkOut
}

func (n Normalizer) atHour(t time.Time, hour int) time.Time {
	if t.IsZero() {
		return t
	}
	loc := n.location()
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, hour, 0, 0, 0, loc)
}

func (n Normalizer) location() *time.Location {
	if n.Location == nil {
		return time.Local
	}
	return n.Location
}
