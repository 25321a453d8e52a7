package booking

import (
	"context"
	"time"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// RoomFilter narrows a room listing. Zero values are no-ops. ID and
// Capacity match exactly; Name and Location match case-insensitively
// as substrings.
type RoomFilter struct {
	ID       uint64
	Name     string
	Location string
	Capacity uint32
	PageRequest
}

// UserFilter narrows a user listing. ID matches exactly; Name and
// Email match case-insensitively as substrings.
type UserFilter struct {
	ID    uint64
	Name  string
	Email string
	PageRequest
}

// ReservationFilter narrows a reservation listing. Zero values are
// no-ops. Date restricts to reservations whose start falls on that
// calendar date (UTC); CreatedDate does the same for the creation
// timestamp.
type ReservationFilter struct {
	ID          uint64
	RoomID      uint64
	UserID      uint64
	Date        *time.Time
	CreatedDate *time.Time
	PageRequest
}

// RoomStore is the engine's view of durable room records.
// Lookups return (nil, nil) when the room does not exist;
// infrastructure failures are wrapped with ErrStoreUnavailable.
type RoomStore interface {
	// FindRoom returns the room with the given ID, or nil when absent.
	FindRoom(ctx context.Context, id uint64) (*model.Room, error)
	// InsertRoom persists a new room, filling in the assigned ID and
	// creation timestamp.
	InsertRoom(ctx context.Context, room *model.Room) error
	// ListRooms returns one page of rooms matching the filter and the
	// total number of matches.
	ListRooms(ctx context.Context, f RoomFilter) ([]model.Room, int, error)
}

// ReservationStore is the engine's view of durable reservation records.
type ReservationStore interface {
	// FindOverlapping returns every stored reservation for the room
	// whose interval overlaps [start, end) under the shared half-open
	// predicate, ordered by start time.
	FindOverlapping(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Reservation, error)
	// InsertReservation persists a new reservation, filling in the
	// assigned ID and creation timestamp.
	InsertReservation(ctx context.Context, res *model.Reservation) error
	// ListReservations returns one page of reservations matching the
	// filter and the total number of matches.
	ListReservations(ctx context.Context, f ReservationFilter) ([]model.Reservation, int, error)
	// DeleteReservation removes the reservation with the given ID and
	// reports whether a row existed.
	DeleteReservation(ctx context.Context, id uint64) (bool, error)
}

// UserStore is the engine's and registrar's view of durable user
// records.
type UserStore interface {
	// FindUser returns the user with the given ID, or nil when absent.
	FindUser(ctx context.Context, id uint64) (*model.User, error)
	// FindUserByName returns the user whose name matches exactly
	// (case-insensitive), or nil when absent.
	FindUserByName(ctx context.Context, name string) (*model.User, error)
	// FindUserByEmail returns the user with the normalized email, or
	// nil when absent.
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	// ResolveUsers looks up users by a human-entered reference: a
	// numeric reference matches by ID, anything else by exact
	// case-insensitive name. All matches are returned; the engine
	// requires exactly one.
	ResolveUsers(ctx context.Context, ref string) ([]model.User, error)
	// InsertUser persists a new user, filling in the assigned ID and
	// creation timestamp.
	InsertUser(ctx context.Context, u *model.User) error
	// ListUsers returns one page of users matching the filter and the
	// total number of matches.
	ListUsers(ctx context.Context, f UserFilter) ([]model.User, int, error)
}
