package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/staybook/internal/config"
	"github.com/srgjo27/staybook/internal/core/domain"
	"github.com/srgjo27/staybook/internal/core/ports/mocks"
	"github.com/srgjo27/staybook/internal/core/services"
)

var today = time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, existing ...domain.Booking) (*app, *mocks.BookingAPI, *bytes.Buffer) {
	t.Helper()
	client := mocks.NewBookingAPI(t)
	client.On("List", mock.Anything).Return(existing, nil).Once()

	svc := services.NewBookingService(client, services.NewNormalizer(8, 14, time.UTC), nil).
		WithClock(func() time.Time { return today })
	require.NoError(t, svc.Load(context.Background()))

	var out bytes.Buffer
	return &app{
		svc:    svc,
		policy: config.DefaultPolicy(),
		loc:    time.UTC,
		out:    &out,
		now:    func() time.Time { return today },
	}, client, &out
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestRenderTable(t *testing.T) {
	created := today.Add(-72 * time.Hour)
	bookings := []domain.Booking{
		{ID: 2, Property: "Room 1", CheckIn: at(2024, 1, 10, 8), CheckOut: at(2024, 1, 15, 14), Adults: 2, CreatedAt: &created},
		{ID: 1, Property: "Beach House", CheckIn: at(2024, 2, 1, 8), CheckOut: at(2024, 2, 3, 14), Adults: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, bookings, time.UTC, today))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "01/10/2024")
	assert.Contains(t, lines[1], "01/15/2024")
	assert.Contains(t, lines[1], "3 days ago")
	assert.Contains(t, lines[2], "Beach House")
	assert.True(t, strings.HasSuffix(lines[2], "-"))
}

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, nil, time.UTC, today))
	assert.Equal(t, "no bookings\n", buf.String())
}

func TestCreate_UsesPolicyDefaults(t *testing.T) {
	a, client, out := newTestApp(t)

	client.On("Create", mock.Anything, mock.MatchedBy(func(b domain.Booking) bool {
		return b.Property == "Property A" && b.Adults == 1 &&
			b.CheckIn.Equal(at(2024, 1, 10, 8)) && b.CheckOut.Equal(at(2024, 1, 12, 14))
	})).Return(domain.Booking{ID: 4}, nil).Once()

	require.NoError(t, a.create(context.Background(), []string{"-check-in", "2024-01-10", "-check-out", "2024-01-12"}))
	assert.Equal(t, "created booking 4\n", out.String())
}

func TestCreate_RejectsInvalidForm(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.create(context.Background(), []string{"-check-in", "2024-01-10", "-check-out", "2024-01-11"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)

	err = a.create(context.Background(), []string{"-check-in", "2024-01-02", "-check-out", "2024-01-08"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkIn: must not be in the past")

	err = a.create(context.Background(), []string{"-check-in", "10/01/2024", "-check-out", "2024-01-12"})
	assert.EqualError(t, err, "checkIn: must be a yyyy-mm-dd date")
}

func TestEdit_PrefillsUnsetFields(t *testing.T) {
	existing := domain.Booking{ID: 3, Property: "Room 1", CheckIn: at(2024, 1, 2, 8), CheckOut: at(2024, 1, 6, 14), Adults: 2}
	a, client, out := newTestApp(t, existing)

	// The stored check-in already passed; keeping it is allowed when editing.
	client.On("Update", mock.Anything, mock.MatchedBy(func(b domain.Booking) bool {
		return b.ID == 3 && b.Property == "Room 1" && b.Adults == 5 && b.CheckIn.Equal(existing.CheckIn)
	})).Return(domain.Booking{ID: 3, Property: "Room 1", Adults: 5}, nil).Once()

	require.NoError(t, a.edit(context.Background(), []string{"-id", "3", "-adults", "5"}))
	assert.Equal(t, "updated booking 3\n", out.String())
}

func TestEdit_UnknownID(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.edit(context.Background(), []string{"-id", "9"})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestDelete(t *testing.T) {
	a, client, out := newTestApp(t, domain.Booking{ID: 3, Property: "Room 1"})
	client.On("Delete", mock.Anything, int64(3)).Return(nil).Once()

	require.NoError(t, a.delete(context.Background(), []string{"-id", "3"}))
	assert.Equal(t, "deleted booking 3\n", out.String())
	assert.Empty(t, a.svc.Bookings())

	assert.EqualError(t, a.delete(context.Background(), nil), "-id is required")
}
