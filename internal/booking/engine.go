package booking

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// Candidate is a proposed reservation before admission. UserRef is a
// human-entered reference to the user the booking is for: either a
// numeric user ID or the user's exact name.
type Candidate struct {
	RoomID  uint64
	UserRef string
	Start   time.Time
	End     time.Time
}

// Engine decides whether candidate reservations are admitted. It
// consults the entity store for the room's existence and the room's
// stored reservations, and serializes the conflict-check-and-insert
// sequence per room so concurrent admissions cannot double-book.
type Engine struct {
	rooms        RoomStore
	reservations ReservationStore
	users        UserStore
	locks        *roomLocks
	now          func() time.Time
	log          zerolog.Logger
}

// NewEngine constructs an Engine over the given stores.
func NewEngine(rooms RoomStore, reservations ReservationStore, users UserStore, log zerolog.Logger) *Engine {
	if rooms == nil || reservations == nil || users == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{
		rooms:        rooms,
		reservations: reservations,
		users:        users,
		locks:        newRoomLocks(),
		now:          time.Now,
		log:          log,
	}
}

// Admit validates a candidate reservation and persists it when every
// rule passes. The rules run in a fixed order and the first failure
// wins: past start, lead time, ordering, room existence, conflict,
// user resolution. A rejection writes nothing.
func (e *Engine) Admit(ctx context.Context, cand Candidate) (*model.Reservation, error) {
	now := e.now().UTC()
	start := cand.Start.UTC()
	end := cand.End.UTC()

	if ierr := checkInterval(now, start, end); ierr != nil {
		e.log.Info().Uint64("room_id", cand.RoomID).Str("reason", ierr.Reason).Msg("reservation rejected")
		return nil, ierr
	}

	room, err := e.rooms.FindRoom(ctx, cand.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	// Hold the room's admission lock across the conflict check and the
	// insert; a concurrent Admit for the same room waits here instead
	// of racing past the overlap check.
	unlock := e.locks.acquire(room.ID)
	defer unlock()

	overlapping, err := e.reservations.FindOverlapping(ctx, room.ID, start, end)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		e.log.Info().
			Uint64("room_id", room.ID).
			Uint64("conflicting_id", overlapping[0].ID).
			Msg("reservation rejected: conflict")
		return nil, &ConflictError{Conflicting: overlapping[0]}
	}

	user, err := e.resolveUser(ctx, cand.UserRef)
	if err != nil {
		return nil, err
	}

	res := &model.Reservation{
		RoomID:    room.ID,
		UserID:    user.ID,
		StartTime: start,
		EndTime:   end,
	}
	if err := e.reservations.InsertReservation(ctx, res); err != nil {
		return nil, err
	}

	e.log.Info().
		Uint64("reservation_id", res.ID).
		Uint64("room_id", res.RoomID).
		Uint64("user_id", res.UserID).
		Time("start", res.StartTime).
		Time("end", res.EndTime).
		Msg("reservation admitted")
	return res, nil
}

// IsAvailable reports whether the room is free over [start, end). It
// uses the same overlap predicate as Admit.
func (e *Engine) IsAvailable(ctx context.Context, roomID uint64, start, end time.Time) (bool, error) {
	room, err := e.rooms.FindRoom(ctx, roomID)
	if err != nil {
		return false, err
	}
	if room == nil {
		return false, ErrRoomNotFound
	}
	overlapping, err := e.reservations.FindOverlapping(ctx, roomID, start.UTC(), end.UTC())
	if err != nil {
		return false, err
	}
	return len(overlapping) == 0, nil
}

// ListForRoom returns one page of the room's reservations, optionally
// restricted to those starting on the given calendar date (UTC).
func (e *Engine) ListForRoom(ctx context.Context, roomID uint64, date *time.Time, pr PageRequest) ([]model.Reservation, PageInfo, error) {
	room, err := e.rooms.FindRoom(ctx, roomID)
	if err != nil {
		return nil, PageInfo{}, err
	}
	if room == nil {
		return nil, PageInfo{}, ErrRoomNotFound
	}
	f := ReservationFilter{RoomID: roomID, Date: date, PageRequest: pr.Normalize()}
	items, total, err := e.reservations.ListReservations(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return items, NewPageInfo(f.PageRequest, total), nil
}

// List returns one page of reservations matching the filter.
func (e *Engine) List(ctx context.Context, f ReservationFilter) ([]model.Reservation, PageInfo, error) {
	f.PageRequest = f.PageRequest.Normalize()
	items, total, err := e.reservations.ListReservations(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return items, NewPageInfo(f.PageRequest, total), nil
}

// Delete removes a reservation by ID. Deletion is unconditional; there
// is no ownership check. ErrReservationNotFound is returned when no
// such reservation exists.
func (e *Engine) Delete(ctx context.Context, id uint64) error {
	removed, err := e.reservations.DeleteReservation(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrReservationNotFound
	}
	e.log.Info().Uint64("reservation_id", id).Msg("reservation deleted")
	return nil
}

// resolveUser turns a human-entered reference into exactly one user.
// Zero matches yield ErrUnknownUser; more than one, ErrAmbiguousUser.
func (e *Engine) resolveUser(ctx context.Context, ref string) (*model.User, error) {
	matches, err := e.users.ResolveUsers(ctx, strings.TrimSpace(ref))
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, ErrUnknownUser
	case 1:
		return &matches[0], nil
	default:
		return nil, ErrAmbiguousUser
	}
}
