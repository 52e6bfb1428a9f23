package domain

import (
	"time"
)

// DateLayout is the calendar date format used by booking forms.
const DateLayout = "2006-01-02"

type Booking struct {
	ID        int64      `json:"id,omitempty"`
	Property  string     `json:"property"`
	CheckIn   time.Time  `json:"checkIn"`
	CheckOut  time.Time  `json:"checkOut"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	Adults    int        `json:"adults"`
}

// IsPersisted reports whether the booking already has a storage-assigned id.
func (b Booking) IsPersisted() bool {
	return b.ID != 0
}

type BookingEventType string

const (
	BookingCreated BookingEventType = "booking.created"
	BookingUpdated BookingEventType = "booking.updated"
	BookingDeleted BookingEventType = "booking.deleted"
)

type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  int64            `json:"bookingId"`
	Booking    *Booking         `json:"booking,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}
