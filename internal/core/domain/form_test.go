package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/srgjo27/staybook/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormValidate(t *testing.T) {
	rules := domain.DefaultFormRules()
	valid := domain.Form{
		Property: "Room 1",
		CheckIn:  date(2024, 1, 10),
		CheckOut: date(2024, 1, 12),
		Adults:   2,
	}

	tests := []struct {
		name      string
		mutate    func(f *domain.Form)
		wantField string
	}{
		{"valid form", func(f *domain.Form) {}, ""},
		{"property too short", func(f *domain.Form) { f.Property = "ab" }, "property"},
		{"property too long", func(f *domain.Form) { f.Property = strings.Repeat("x", 51) }, "property"},
		{"property at max length", func(f *domain.Form) { f.Property = strings.Repeat("x", 50) }, ""},
		{"no adults", func(f *domain.Form) { f.Adults = 0 }, "adults"},
		{"too many adults", func(f *domain.Form) { f.Adults = 7 }, "adults"},
		{"six adults", func(f *domain.Form) { f.Adults = 6 }, ""},
		{"missing check in", func(f *domain.Form) { f.CheckIn = time.Time{} }, "checkIn"},
		{"missing check out", func(f *domain.Form) { f.CheckOut = time.Time{} }, "checkOut"},
		{"one night stay", func(f *domain.Form) { f.CheckOut = date(2024, 1, 11) }, "checkOut"},
		{"check out before check in", func(f *domain.Form) { f.CheckOut = date(2024, 1, 5) }, "checkOut"},
		{"time of day ignored", func(f *domain.Form) { f.CheckOut = date(2024, 1, 12).Add(1 * time.Hour) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)

			err := f.Validate(rules)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidBooking))

			var fieldErr *domain.FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestFormValidate_ReportsEveryField(t *testing.T) {
	err := domain.Form{}.Validate(domain.DefaultFormRules())

	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "property:")
	assert.Contains(t, msg, "adults:")
	assert.Contains(t, msg, "checkIn: is required")
	assert.Contains(t, msg, "checkOut: is required")

	fields := domain.FieldErrors(err)
	require.Len(t, fields, 4)
	assert.Equal(t, "property", fields[0].Field)
	assert.Equal(t, "checkOut", fields[3].Field)
}

func TestFieldErrors_Unwrapping(t *testing.T) {
	assert.Nil(t, domain.FieldErrors(nil))
	assert.Nil(t, domain.FieldErrors(errors.New("boom")))

	single := &domain.FieldError{Field: "adults", Reason: "must be between 1 and 6"}
	wrapped := fmt.Errorf("create: %w", single)

	got := domain.FieldErrors(wrapped)
	require.Len(t, got, 1)
	assert.Same(t, single, got[0])
	assert.ErrorIs(t, wrapped, domain.ErrInvalidBooking)
}

func TestFormCheckInNotPast(t *testing.T) {
	today := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

	t.Run("today is allowed", func(t *testing.T) {
		f := domain.Form{CheckIn: date(2024, 3, 1)}
		assert.NoError(t, f.CheckInNotPast(today, nil))
	})

	t.Run("yesterday is rejected for new bookings", func(t *testing.T) {
		f := domain.Form{CheckIn: date(2024, 2, 29)}
		err := f.CheckInNotPast(today, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidBooking)
	})

	t.Run("editing keeps the stored past check in", func(t *testing.T) {
		editing := &domain.Booking{ID: 5, CheckIn: date(2024, 2, 20)}
		f := domain.Form{CheckIn: date(2024, 2, 20)}
		assert.NoError(t, f.CheckInNotPast(today, editing))

		f.CheckIn = date(2024, 2, 19)
		assert.Error(t, f.CheckInNotPast(today, editing))
	})
}

func TestFormBooking_KeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	base := domain.Booking{ID: 9, Property: "Old", CreatedAt: &created, Adults: 1}
	f := domain.Form{Property: "New", CheckIn: date(2024, 5, 1), CheckOut: date(2024, 5, 4), Adults: 3}

	got := f.Booking(base)

	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, &created, got.CreatedAt)
	assert.Equal(t, "New", got.Property)
	assert.Equal(t, 3, got.Adults)
	assert.Equal(t, f, domain.FormFromBooking(got))
}
