package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/srgjo27/staybook/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id         BIGSERIAL PRIMARY KEY,
	property   TEXT NOT NULL,
	check_in   TIMESTAMPTZ NOT NULL,
	check_out  TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ,
	adults     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS bookings_property_idx ON bookings (property, check_in);
`

const bookingColumns = `id, property, check_in, check_out, created_at, adults`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// EnsureSchema creates the bookings table when it does not exist yet.
func (r *BookingRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create bookings schema: %w", err)
	}
	return nil
}

func (r *BookingRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *BookingRepository) List(ctx context.Context, query domain.ListQuery) ([]domain.Booking, error) {
	order, err := orderClause(query)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY `+order)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return scanBookings(rows)
}

func (r *BookingRepository) ListByProperty(ctx context.Context, property string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE property = $1 ORDER BY check_in`, property)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings of %q: %w", property, err)
	}
	return scanBookings(rows)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)

	booking, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	return &booking, nil
}

// Create inserts booking and writes the generated id back into it.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (property, check_in, check_out, created_at, adults)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		booking.Property, booking.CheckIn, booking.CheckOut, nullTime(booking.CreatedAt), booking.Adults,
	).Scan(&booking.ID)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
	UPDATE bookings
	SET property = $1, check_in = $2, check_out = $3, adults = $4
	WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query,
		booking.Property, booking.CheckIn, booking.CheckOut, booking.Adults, booking.ID)
	if err != nil {
		return fmt.Errorf("failed to update booking %d: %w", booking.ID, err)
	}
	return expectOneRow(res)
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	return expectOneRow(res)
}

var sortColumns = map[domain.SortField]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByCheckIn:   "check_in",
	domain.SortByCheckOut:  "check_out",
	domain.SortByProperty:  "property",
}

// orderClause only ever emits whitelisted column names.
func orderClause(query domain.ListQuery) (string, error) {
	column, ok := sortColumns[query.Sort]
	if !ok {
		return "", fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidQuery, query.Sort)
	}

	direction := "ASC"
	switch query.Order {
	case domain.OrderAsc:
	case domain.OrderDesc:
		direction = "DESC"
	default:
		return "", fmt.Errorf("%w: unknown order %q", domain.ErrInvalidQuery, query.Order)
	}

	return fmt.Sprintf("%s %s NULLS LAST, id %s", column, direction, direction), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var (
		b         domain.Booking
		createdAt sql.NullTime
	)
	if err := row.Scan(&b.ID, &b.Property, &b.CheckIn, &b.CheckOut, &createdAt, &b.Adults); err != nil {
		return domain.Booking{}, err
	}
	if createdAt.Valid {
		t := createdAt.Time
		b.CreatedAt = &t
	}
	return b, nil
}

func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
