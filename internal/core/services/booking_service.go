package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/srgjo27/staybook/internal/core/domain"
	"github.com/srgjo27/staybook/internal/core/ports"
)

// BookingService owns one session's view of the bookings collection, kept in
// createdAt-descending order, and saves changes through the bookings API.
//
// The mutex only guards the slice. It is never held across an API call, so two
// concurrent saves for the same dates are not coordinated with each other.
type BookingService struct {
	api        ports.BookingAPI
	normalizer Normalizer
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.RWMutex
	bookings []domain.Booking
}

func NewBookingService(api ports.BookingAPI, normalizer Normalizer, logger *slog.Logger) *BookingService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BookingService{
		api:        api,
		normalizer: normalizer,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the clock used to stamp createdAt on new bookings.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

func (s *BookingService) Normalizer() Normalizer {
	return s.normalizer
}

// Load replaces the collection with the API's listing.
func (s *BookingService) Load(ctx context.Context) error {
	list, err := s.api.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.bookings = append([]domain.Booking(nil), list...)
	s.mu.Unlock()

	s.logger.Debug("bookings loaded", "count", len(list))
	return nil
}

// Bookings returns a copy of the collection.
func (s *BookingService) Bookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Booking(nil), s.bookings...)
}

func (s *BookingService) Find(id int64) (domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// Save normalizes input and checks it against the collection before any API
// call. A conflict returns a *domain.OverlapError and leaves everything
// untouched. Bookings without an id are created, the rest are updated; the
// collection then reflects the API's response. API errors are returned as is.
func (s *BookingService) Save(ctx context.Context, input domain.Booking) (domain.Booking, error) {
	candidate := s.normalizer.Normalize(input)

	if err := ValidateBooking(candidate, s.Bookings()); err != nil {
		s.logger.Info("booking rejected",
			"property", candidate.Property,
			"check_in", candidate.CheckIn,
			"check_out", candidate.CheckOut,
			"error", err)
		return domain.Booking{}, err
	}

	if candidate.IsPersisted() {
		updated, err := s.api.Update(ctx, candidate)
		if err != nil {
			return domain.Booking{}, err
		}
		s.replace(updated)
		s.logger.Info("booking updated", "id", updated.ID, "property", updated.Property)
		return updated, nil
	}

	createdAt := s.now()
	candidate.CreatedAt = &createdAt

	created, err := s.api.Create(ctx, candidate)
	if err != nil {
		return domain.Booking{}, err
	}
	s.prepend(created)
	s.logger.Info("booking created", "id", created.ID, "property", created.Property)
	return created, nil
}

// Delete removes a booking remotely and then locally. A zero id is ignored.
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return nil
	}

	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.bookings = kept
	s.mu.Unlock()

	s.logger.Info("booking deleted", "id", id)
	return nil
}

// RunAutoRefresh reloads the collection every interval until ctx is done, so
// overlap checks also see bookings made by other sessions.
func (s *BookingService) RunAutoRefresh(ctx context.Context, interval time.Duration, onRefresh func([]domain.Booking)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("auto refresh started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("auto refresh stopped")
			return
		case <-ticker.C:
			if err := s.Load(ctx); err != nil {
				s.logger.Warn("refreshing bookings failed", "error", err)
				continue
			}
			if onRefresh != nil {
				onRefresh(s.Bookings())
			}
		}
	}
}

func (s *BookingService) prepend(b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = append([]domain.Booking{b}, s.bookings...)
}

// replace swaps the element with b's id in place. A booking missing from the
// collection (deleted locally by a refresh meanwhile) is prepended.
func (s *BookingService) replace(b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]domain.Booking(nil), s.bookings...)
	for i := range next {
		if next[i].ID == b.ID {
			next[i] = b
			s.bookings = next
			return
		}
	}
	s.bookings = append([]domain.Booking{b}, next...)
}
