package services

import (
	"time"

	"github.com/srgjo27/staybook/internal/core/domain"
)

// FindOverlap returns the first booking in existing that shares the candidate's
// property and whose stay touches or intersects the candidate's. A persisted
// candidate never conflicts with its own stored copy.
func FindOverlap(candidate domain.Booking, existing []domain.Booking) *domain.Booking {
	for _, b := range existing {
		if b.Property != candidate.Property {
			continue
		}
		if candidate.IsPersisted() && b.ID == candidate.ID {
			continue
		}
		if intervalsOverlap(b.CheckIn, b.CheckOut, candidate.CheckIn, candidate.CheckOut) {
			conflict := b
			return &conflict
		}
	}
	return nil
}

func HasOverlap(candidate domain.Booking, existing []domain.Booking) bool {
	return FindOverlap(candidate, existing) != nil
}

// ValidateBooking returns a *domain.OverlapError when candidate conflicts with
// existing.
func ValidateBooking(candidate domain.Booking, existing []domain.Booking) error {
	if conflict := FindOverlap(candidate, existing); conflict != nil {
		return &domain.OverlapError{Conflict: *conflict}
	}
	return nil
}

// intervalsOverlap treats both ranges as closed: a stay ending at the instant
// another begins still overlaps.
func intervalsOverlap(start1, end1, start2, end2 time.Time) bool {
	return !end1.Before(start2) && !end2.Before(start1)
}
