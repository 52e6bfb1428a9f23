package domain

import "errors"

var (
	ErrDatesUnavailable = errors.New("the selected dates are not available for this property")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidBooking   = errors.New("invalid booking")
	ErrInvalidQuery     = errors.New("invalid list query")
)

// OverlapError reports the booking that blocks a candidate's date range.
// It unwraps to ErrDatesUnavailable.
type OverlapError struct {
	Conflict Booking
}

func (e *OverlapError) Error() string {
	return ErrDatesUnavailable.Error()
}

func (e *OverlapError) Unwrap() error {
	return ErrDatesUnavailable
}

// FieldError describes a single rejected form field. It unwraps to ErrInvalidBooking.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidBooking
}

// FieldErrors collects every FieldError inside err, including joined ones.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FieldError); ok {
		return []*FieldError{fe}
	}
	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	if inner := errors.Unwrap(err); inner != nil {
		return FieldErrors(inner)
	}
	return nil
}
