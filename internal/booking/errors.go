// Package booking contains the reservation admission engine and the
// validation rules around it: interval timing checks, the shared overlap
// predicate, conflict detection, user-reference resolution and room
// registration. It is deliberately free of HTTP and SQL concerns;
// handlers map its errors to status codes and repositories implement
// its store interfaces.
package booking

import (
	"errors"
	"fmt"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// Sentinel errors returned by the engine, catalog and registrar.
// Handlers translate each into a distinct, stable HTTP status code.
var (
	// ErrRoomNotFound is returned when a referenced room does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrReservationNotFound is returned when deleting a reservation
	// that does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrUserNotFound is returned when a user referenced by exact ID
	// (e.g. a room's creator) does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnknownUser is returned when a booking's user reference
	// resolves to no user at all.
	ErrUnknownUser = errors.New("user reference matched no user")

	// ErrAmbiguousUser is returned when a booking's user reference
	// resolves to more than one user. The caller must supply a user ID
	// or the exact name instead.
	ErrAmbiguousUser = errors.New("user reference matched more than one user")

	// ErrNameTaken is returned on registration when the name is in use.
	ErrNameTaken = errors.New("user name already registered")

	// ErrEmailTaken is returned on registration when the email is in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrStoreUnavailable wraps infrastructure failures of the entity
	// store. It is never conflated with a missing entity.
	ErrStoreUnavailable = errors.New("entity store unavailable")
)

// InvalidIntervalError reports a candidate interval that fails one of
// the timing rules (past start, insufficient lead time, start >= end).
type InvalidIntervalError struct {
	Reason string
}

func (e *InvalidIntervalError) Error() string {
	return "invalid interval: " + e.Reason
}

// ConflictError reports that a candidate interval overlaps an existing
// reservation. Conflicting is the first conflicting reservation found
// and is included in API responses as diagnostic payload.
type ConflictError struct {
	Conflicting model.Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("reservation conflicts with reservation %d on room %d (%s – %s)",
		e.Conflicting.ID, e.Conflicting.RoomID,
		e.Conflicting.StartTime.Format("2006-01-02 15:04:05"),
		e.Conflicting.EndTime.Format("2006-01-02 15:04:05"))
}
