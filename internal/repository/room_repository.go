package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/meeting-room-booking/internal/booking"
	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// RoomRepo encapsulates all database queries related to rooms. It
// implements booking.RoomStore.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the provided DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// FindRoom returns the room with the given ID, or nil when no such row
// exists.
func (r *RoomRepo) FindRoom(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, location, capacity, creator_id, created_at FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&room.ID, &room.Name, &room.Location, &room.Capacity, &room.CreatorID, &room.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("rooms.find", err)
	}
	return &room, nil
}

// InsertRoom persists a new room. A follow-up SELECT populates the
// database-assigned creation timestamp so callers receive a fully
// populated record.
func (r *RoomRepo) InsertRoom(ctx context.Context, room *model.Room) error {
	const qInsert = `INSERT INTO rooms (name, location, capacity, creator_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, room.Name, room.Location, room.Capacity, room.CreatorID)
	if err != nil {
		return storeErr("rooms.insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storeErr("rooms.insert", err)
	}
	room.ID = uint64(id)

	const qSelect = `SELECT created_at FROM rooms WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, qSelect, room.ID).Scan(&room.CreatedAt); err != nil {
		return storeErr("rooms.insert", err)
	}
	return nil
}

// ListRooms returns one page of rooms matching the filter plus the
// total number of matches. Unset filter fields are no-ops; names and
// locations match case-insensitively as substrings.
func (r *RoomRepo) ListRooms(ctx context.Context, f booking.RoomFilter) ([]model.Room, int, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if f.ID != 0 {
		where = append(where, "id = ?")
		args = append(args, f.ID)
	}
	if f.Capacity != 0 {
		where = append(where, "capacity = ?")
		args = append(args, f.Capacity)
	}
	if f.Name != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Location != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Location)+"%")
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms"+clause, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("rooms.count", err)
	}

	q := `SELECT id, name, location, capacity, creator_id, created_at FROM rooms` +
		clause + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, storeErr("rooms.list", err)
	}
	defer rows.Close()

	out := make([]model.Room, 0, f.Limit)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Location, &room.Capacity, &room.CreatorID, &room.CreatedAt); err != nil {
			return nil, 0, storeErr("rooms.list", err)
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("rooms.list", err)
	}
	return out, total, nil
}
