package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/staybook/internal/adapter/repository/memory"
	"github.com/srgjo27/staybook/internal/core/domain"
	"github.com/srgjo27/staybook/internal/core/ports"
)

var _ ports.BookingRepository = (*memory.BookingRepository)(nil)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 8, 0, 0, 0, time.UTC)
}

func seed(t *testing.T, repo *memory.BookingRepository, bookings ...domain.Booking) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(bookings))
	for i := range bookings {
		b := bookings[i]
		require.NoError(t, repo.Create(context.Background(), &b))
		ids = append(ids, b.ID)
	}
	return ids
}

func created(d int) *time.Time {
	t := day(d)
	return &t
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	repo := memory.NewBookingRepository()

	ids := seed(t, repo,
		domain.Booking{Property: "Room 1", CheckIn: day(1), CheckOut: day(3)},
		domain.Booking{Property: "Room 1", CheckIn: day(5), CheckOut: day(7)},
	)

	assert.Equal(t, []int64{1, 2}, ids)

	got, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, day(5), got.CheckIn)
}

func TestList_Sorting(t *testing.T) {
	repo := memory.NewBookingRepository()
	seed(t, repo,
		domain.Booking{Property: "Beta", CheckIn: day(10), CheckOut: day(12), CreatedAt: created(1)},
		domain.Booking{Property: "Alpha", CheckIn: day(5), CheckOut: day(20), CreatedAt: created(3)},
		domain.Booking{Property: "Gamma", CheckIn: day(1), CheckOut: day(4)},
	)

	tests := []struct {
		query domain.ListQuery
		want  []int64
	}{
		{domain.DefaultListQuery(), []int64{2, 1, 3}},
		{domain.ListQuery{Sort: domain.SortByCreatedAt, Order: domain.OrderAsc}, []int64{1, 2, 3}},
		{domain.ListQuery{Sort: domain.SortByCheckIn, Order: domain.OrderAsc}, []int64{3, 2, 1}},
		{domain.ListQuery{Sort: domain.SortByCheckOut, Order: domain.OrderDesc}, []int64{2, 1, 3}},
		{domain.ListQuery{Sort: domain.SortByProperty, Order: domain.OrderAsc}, []int64{2, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.query.String(), func(t *testing.T) {
			list, err := repo.List(context.Background(), tt.query)
			require.NoError(t, err)

			ids := make([]int64, 0, len(list))
			for _, b := range list {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestList_InvalidQuery(t *testing.T) {
	repo := memory.NewBookingRepository()

	_, err := repo.List(context.Background(), domain.ListQuery{Sort: "adults", Order: domain.OrderAsc})
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestListByProperty(t *testing.T) {
	repo := memory.NewBookingRepository()
	seed(t, repo,
		domain.Booking{Property: "Room 1", CheckIn: day(10), CheckOut: day(12)},
		domain.Booking{Property: "Room 2", CheckIn: day(1), CheckOut: day(3)},
		domain.Booking{Property: "Room 1", CheckIn: day(2), CheckOut: day(4)},
	)

	got, err := repo.ListByProperty(context.Background(), "Room 1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)

	none, err := repo.ListByProperty(context.Background(), "room 1")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdate_KeepsCreatedAt(t *testing.T) {
	repo := memory.NewBookingRepository()
	seed(t, repo, domain.Booking{Property: "Room 1", CheckIn: day(1), CheckOut: day(3), CreatedAt: created(1), Adults: 1})

	err := repo.Update(context.Background(), &domain.Booking{ID: 1, Property: "Room 1", CheckIn: day(2), CheckOut: day(5), Adults: 3})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Adults)
	assert.Equal(t, day(2), got.CheckIn)
	assert.Equal(t, created(1), got.CreatedAt)
}

func TestMissingBooking(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Booking{ID: 9}), domain.ErrBookingNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 9), domain.ErrBookingNotFound)
}

func TestDelete(t *testing.T) {
	repo := memory.NewBookingRepository()
	seed(t, repo, domain.Booking{Property: "Room 1", CheckIn: day(1), CheckOut: day(3)})

	require.NoError(t, repo.Delete(context.Background(), 1))

	list, err := repo.List(context.Background(), domain.DefaultListQuery())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPing_HonoursContext(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx, cancel := context.WithCancel(context.Background())

	assert.NoError(t, repo.Ping(ctx))
	cancel()
	assert.ErrorIs(t, repo.Ping(ctx), context.Canceled)
}
