package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/meeting-room-booking/internal/booking"
	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. All
// timestamps are stored in UTC (the connection uses loc=UTC). It
// implements booking.ReservationStore.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// FindOverlapping returns the room's stored reservations whose interval
// overlaps [start, end). The predicate is the half-open overlap test
// `stored.start < end AND stored.end > start`, so touching endpoints do
// not match. Results are ordered by start time; the first row is the
// one reported in conflict diagnostics.
func (r *ReservationRepo) FindOverlapping(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, room_id, user_id, start_time, end_time, created_at
	           FROM reservations
	           WHERE room_id = ? AND start_time < ? AND end_time > ?
	           ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, roomID, end, start)
	if err != nil {
		return nil, storeErr("reservations.overlapping", err)
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.RoomID, &res.UserID, &res.StartTime, &res.EndTime, &res.CreatedAt); err != nil {
			return nil, storeErr("reservations.overlapping", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("reservations.overlapping", err)
	}
	return out, nil
}

// InsertReservation persists a new reservation inside a transaction and
// queries the row back so the caller receives the assigned ID and
// creation timestamp. A failure rolls back; no partial writes remain.
func (r *ReservationRepo) InsertReservation(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("reservations.insert", err)
	}
	defer func() { _ = tx.Rollback() }()

	const qInsert = `INSERT INTO reservations (room_id, user_id, start_time, end_time) VALUES (?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, qInsert, res.RoomID, res.UserID, res.StartTime, res.EndTime)
	if err != nil {
		return storeErr("reservations.insert", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storeErr("reservations.insert", err)
	}
	res.ID = uint64(id)

	const qSelect = `SELECT created_at FROM reservations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, qSelect, res.ID).Scan(&res.CreatedAt); err != nil {
		return storeErr("reservations.insert", err)
	}
	if err := tx.Commit(); err != nil {
		return storeErr("reservations.insert", err)
	}
	return nil
}

// ListReservations returns one page of reservations matching the filter
// plus the total number of matches. Date filters compare only the
// calendar date of the column.
func (r *ReservationRepo) ListReservations(ctx context.Context, f booking.ReservationFilter) ([]model.Reservation, int, error) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 5)
	if f.ID != 0 {
		where = append(where, "id = ?")
		args = append(args, f.ID)
	}
	if f.RoomID != 0 {
		where = append(where, "room_id = ?")
		args = append(args, f.RoomID)
	}
	if f.UserID != 0 {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Date != nil {
		where = append(where, "DATE(start_time) = ?")
		args = append(args, f.Date.UTC().Format("2006-01-02"))
	}
	if f.CreatedDate != nil {
		where = append(where, "DATE(created_at) = ?")
		args = append(args, f.CreatedDate.UTC().Format("2006-01-02"))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations"+clause, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("reservations.count", err)
	}

	q := `SELECT id, room_id, user_id, start_time, end_time, created_at FROM reservations` +
		clause + ` ORDER BY start_time LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, storeErr("reservations.list", err)
	}
	defer rows.Close()

	out := make([]model.Reservation, 0, f.Limit)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.RoomID, &res.UserID, &res.StartTime, &res.EndTime, &res.CreatedAt); err != nil {
			return nil, 0, storeErr("reservations.list", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("reservations.list", err)
	}
	return out, total, nil
}

// DeleteReservation removes a reservation by ID and reports whether a
// row existed.
func (r *ReservationRepo) DeleteReservation(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return false, storeErr("reservations.delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("reservations.delete", err)
	}
	return n > 0, nil
}
