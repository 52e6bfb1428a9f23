package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// FormRules bounds the values a booking form accepts.
type FormRules struct {
	PropertyMinLen int
	PropertyMaxLen int
	MinAdults      int
	MaxAdults      int
	MinStayDays    int
}

func DefaultFormRules() FormRules {
	return FormRules{
		PropertyMinLen: 3,
		PropertyMaxLen: 50,
		MinAdults:      1,
		MaxAdults:      6,
		MinStayDays:    2,
	}
}

// Form is the user-entered part of a booking. CheckIn and CheckOut are calendar
// dates; their time of day is ignored.
type Form struct {
	Property string
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
}

func FormFromBooking(b Booking) Form {
	return Form{
		Property: b.Property,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
		Adults:   b.Adults,
	}
}

// Validate checks the form against rules and returns every failing field joined
// into one error.
func (f Form) Validate(rules FormRules) error {
	var errs []error

	n := utf8.RuneCountInString(f.Property)
	if n < rules.PropertyMinLen || n > rules.PropertyMaxLen {
		errs = append(errs, &FieldError{
			Field:  "property",
			Reason: fmt.Sprintf("must be between %d and %d characters", rules.PropertyMinLen, rules.PropertyMaxLen),
		})
	}

	if f.Adults < rules.MinAdults || f.Adults > rules.MaxAdults {
		errs = append(errs, &FieldError{
			Field:  "adults",
			Reason: fmt.Sprintf("must be between %d and %d", rules.MinAdults, rules.MaxAdults),
		})
	}

	if f.CheckIn.IsZero() {
		errs = append(errs, &FieldError{Field: "checkIn", Reason: "is required"})
	}
	if f.CheckOut.IsZero() {
		errs = append(errs, &FieldError{Field: "checkOut", Reason: "is required"})
	}

	if !f.CheckIn.IsZero() && !f.CheckOut.IsZero() {
		earliest := calendarDate(f.CheckIn).AddDate(0, 0, rules.MinStayDays)
		if calendarDate(f.CheckOut).Before(earliest) {
			errs = append(errs, &FieldError{
				Field:  "checkOut",
				Reason: fmt.Sprintf("must be at least %d days after check in", rules.MinStayDays),
			})
		}
	}

	return errors.Join(errs...)
}

// CheckInNotPast rejects a check-in before today. When editing a booking whose
// check-in already passed, that stored date stays selectable.
func (f Form) CheckInNotPast(today time.Time, editing *Booking) error {
	earliest := calendarDate(today)
	if editing != nil && editing.IsPersisted() && !editing.CheckIn.IsZero() {
		if stored := calendarDate(editing.CheckIn); stored.Before(earliest) {
			earliest = stored
		}
	}
	if calendarDate(f.CheckIn).Before(earliest) {
		return &FieldError{Field: "checkIn", Reason: "must not be in the past"}
	}
	return nil
}

// Booking merges the form into a booking carrying id and createdAt of base.
func (f Form) Booking(base Booking) Booking {
	base.Property = f.Property
	base.CheckIn = f.CheckIn
	base.CheckOut = f.CheckOut
	base.Adults = f.Adults
	return base
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
