package domain

import (
	"fmt"
	"strings"
)

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByCheckIn   SortField = "checkIn"
	SortByCheckOut  SortField = "checkOut"
	SortByProperty  SortField = "property"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListQuery selects the ordering of a booking listing.
type ListQuery struct {
	Sort  SortField
	Order SortOrder
}

// DefaultListQuery orders the newest bookings first.
func DefaultListQuery() ListQuery {
	return ListQuery{Sort: SortByCreatedAt, Order: OrderDesc}
}

// ParseListQuery validates raw sort and order values. Empty values fall back to
// DefaultListQuery.
func ParseListQuery(sort, order string) (ListQuery, error) {
	q := DefaultListQuery()

	if sort = strings.TrimSpace(sort); sort != "" {
		switch SortField(sort) {
		case SortByCreatedAt, SortByCheckIn, SortByCheckOut, SortByProperty:
			q.Sort = SortField(sort)
		default:
			return ListQuery{}, fmt.Errorf("%w: unknown sort field %q", ErrInvalidQuery, sort)
		}
	}

	if order = strings.ToLower(strings.TrimSpace(order)); order != "" {
		switch SortOrder(order) {
		case OrderAsc, OrderDesc:
			q.Order = SortOrder(order)
		default:
			return ListQuery{}, fmt.Errorf("%w: unknown order %q", ErrInvalidQuery, order)
		}
	}

	return q, nil
}

func (q ListQuery) String() string {
	return string(q.Sort) + ":" + string(q.Order)
}
