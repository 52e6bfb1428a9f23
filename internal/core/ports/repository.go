package ports

import (
	"context"

	"github.com/srgjo27/staybook/internal/core/domain"
)

// BookingAPI is the remote bookings resource the client-side service saves through.
type BookingAPI interface {
	List(ctx context.Context) ([]domain.Booking, error)
	Create(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	Update(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	List(ctx context.Context, query domain.ListQuery) ([]domain.Booking, error)
	ListByProperty(ctx context.Context, property string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}
