package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/srgjo27/staybook/internal/core/domain"
)

// BookingRepository keeps bookings in process memory. Used for local runs and tests.
type BookingRepository struct {
	mu     sync.RWMutex
	items  map[int64]domain.Booking
	nextID int64
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		items:  make(map[int64]domain.Booking),
		nextID: 1,
	}
}

func (r *BookingRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *BookingRepository) List(ctx context.Context, query domain.ListQuery) ([]domain.Booking, error) {
	less, err := lessFunc(query)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]domain.Booking, 0, len(r.items))
	for _, b := range r.items {
		out = append(out, b)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

func (r *BookingRepository) ListByProperty(ctx context.Context, property string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Booking{}
	for _, b := range r.items {
		if b.Property == property {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.ID = r.nextID
	r.nextID++
	r.items[booking.ID] = *booking
	return nil
}

// Update overwrites everything but createdAt.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[booking.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	updated := *booking
	updated.CreatedAt = current.CreatedAt
	r.items[booking.ID] = updated
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.items, id)
	return nil
}

func lessFunc(query domain.ListQuery) (func(a, b domain.Booking) bool, error) {
	var cmp func(a, b domain.Booking) int
	switch query.Sort {
	case domain.SortByCreatedAt:
		cmp = func(a, b domain.Booking) int { return compareCreated(a.CreatedAt, b.CreatedAt) }
	case domain.SortByCheckIn:
		cmp = func(a, b domain.Booking) int { return a.CheckIn.Compare(b.CheckIn) }
	case domain.SortByCheckOut:
		cmp = func(a, b domain.Booking) int { return a.CheckOut.Compare(b.CheckOut) }
	case domain.SortByProperty:
		cmp = func(a, b domain.Booking) int { return strings.Compare(a.Property, b.Property) }
	default:
		return nil, fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidQuery, query.Sort)
	}

	var desc bool
	switch query.Order {
	case domain.OrderAsc:
	case domain.OrderDesc:
		desc = true
	default:
		return nil, fmt.Errorf("%w: unknown order %q", domain.ErrInvalidQuery, query.Order)
	}

	return func(a, b domain.Booking) bool {
		// Missing createdAt sorts last in both directions.
		if query.Sort == domain.SortByCreatedAt && (a.CreatedAt == nil) != (b.CreatedAt == nil) {
			return b.CreatedAt == nil
		}
		c := cmp(a, b)
		if c == 0 {
			c = compareIDs(a.ID, b.ID)
		}
		if desc {
			return c > 0
		}
		return c < 0
	}, nil
}

func compareCreated(a, b *time.Time) int {
	if a == nil || b == nil {
		return 0
	}
	return a.Compare(*b)
}

func compareIDs(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
