package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/staybook/internal/core/domain"
	"github.com/srgjo27/staybook/internal/core/ports"
)

// ListCacheKey is the redis hash holding cached listings, one field per ListQuery.
const ListCacheKey = "bookings:list"

const defaultListCacheTTL = 30 * time.Second

// BookingResource is the server side of the bookings API. It stores bookings,
// rejects overlapping stays, keeps a redis cache of listings and announces
// changes to an optional publisher.
type BookingResource struct {
	repo      ports.BookingRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	publisher ports.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewBookingResource accepts a nil cache and a nil publisher.
func NewBookingResource(repo ports.BookingRepository, cache *redis.Client, publisher ports.EventPublisher, logger *slog.Logger) *BookingResource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BookingResource{
		repo:      repo,
		cache:     cache,
		cacheTTL:  defaultListCacheTTL,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *BookingResource) WithCacheTTL(ttl time.Duration) *BookingResource {
	if ttl > 0 {
		s.cacheTTL = ttl
	}
	return s
}

func (s *BookingResource) WithClock(now func() time.Time) *BookingResource {
	s.now = now
	return s
}

func (s *BookingResource) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *BookingResource) List(ctx context.Context, query domain.ListQuery) ([]domain.Booking, error) {
	if cached, ok := s.cachedList(ctx, query); ok {
		return cached, nil
	}

	bookings, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	s.storeList(ctx, query, bookings)
	return bookings, nil
}

func (s *BookingResource) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new booking. The id is always assigned by the repository;
// a createdAt sent by the client is kept.
func (s *BookingResource) Create(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	booking.ID = 0
	if booking.CreatedAt == nil {
		now := s.now()
		booking.CreatedAt = &now
	}

	if err := s.checkAvailability(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &booking); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, domain.BookingCreated, booking.ID, &booking)
	return &booking, nil
}

// Update replaces the stored fields of booking id. id and createdAt cannot change.
func (s *BookingResource) Update(ctx context.Context, id int64, booking domain.Booking) (*domain.Booking, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking.ID = id
	booking.CreatedAt = current.CreatedAt

	if err := s.checkAvailability(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &booking); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, domain.BookingUpdated, booking.ID, &booking)
	return &booking, nil
}

func (s *BookingResource) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.afterWrite(ctx, domain.BookingDeleted, id, nil)
	return nil
}

func (s *BookingResource) checkAvailability(ctx context.Context, booking domain.Booking) error {
	existing, err := s.repo.ListByProperty(ctx, booking.Property)
	if err != nil {
		return err
	}
	if err := ValidateBooking(booking, existing); err != nil {
		var overlap *domain.OverlapError
		if errors.As(err, &overlap) {
			s.logger.Info("booking conflicts with existing stay",
				"property", booking.Property,
				"conflict_id", overlap.Conflict.ID)
		}
		return err
	}
	return nil
}

func (s *BookingResource) afterWrite(ctx context.Context, eventType domain.BookingEventType, id int64, booking *domain.Booking) {
	s.invalidateLists(ctx)

	if s.publisher == nil {
		return
	}

	event := domain.BookingEvent{
		Type:       eventType,
		BookingID:  id,
		Booking:    booking,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publishing booking event failed", "type", eventType, "id", id, "error", err)
	}
}

func (s *BookingResource) cachedList(ctx context.Context, query domain.ListQuery) ([]domain.Booking, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.HGet(ctx, ListCacheKey, query.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("reading booking cache failed", "error", err)
		}
		return nil, false
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		s.logger.Warn("decoding booking cache failed", "error", err)
		return nil, false
	}
	return bookings, true
}

func (s *BookingResource) storeList(ctx context.Context, query domain.ListQuery, bookings []domain.Booking) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(bookings)
	if err != nil {
		s.logger.Warn("encoding booking cache failed", "error", err)
		return
	}

	if err := s.cache.HSet(ctx, ListCacheKey, query.String(), payload).Err(); err != nil {
		s.logger.Warn("writing booking cache failed", "error", err)
		return
	}
	if err := s.cache.Expire(ctx, ListCacheKey, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("setting booking cache ttl failed", "error", err)
	}
}

func (s *BookingResource) invalidateLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, ListCacheKey).Err(); err != nil {
		s.logger.Warn("invalidating booking cache failed", "error", err)
	}
}
