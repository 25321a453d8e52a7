// Package repository contains the MySQL-backed implementations of the
// booking store interfaces. Each repository wraps a *sql.DB handle and
// keeps queries close to the tables they touch. Row absence is reported
// as a nil record, never as an error; infrastructure failures are
// wrapped with booking.ErrStoreUnavailable so handlers can map them to
// 503 instead of 404.
package repository

import (
	"fmt"

	"github.com/iliyamo/meeting-room-booking/internal/booking"
)

// storeErr wraps a database failure so callers can detect it with
// errors.Is(err, booking.ErrStoreUnavailable).
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, booking.ErrStoreUnavailable, err)
}
