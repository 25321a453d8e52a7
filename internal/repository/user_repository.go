package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/iliyamo/meeting-room-booking/internal/booking"
	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// UserRepo encapsulates all database queries related to users. It
// implements booking.UserStore and additionally serves the auth
// handler's credential lookups.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, name, email, password_hash, created_at`

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("users.find", err)
	}
	return &u, nil
}

// FindUser returns the user with the given ID, or nil when absent.
func (r *UserRepo) FindUser(ctx context.Context, id uint64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// FindUserByName returns the user whose name matches exactly,
// case-insensitively, or nil when absent.
func (r *UserRepo) FindUserByName(ctx context.Context, name string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(name) = LOWER(?) LIMIT 1`, name))
}

// FindUserByEmail returns the user with the normalized email, or nil
// when absent.
func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email))))
}

// ResolveUsers looks up users by a human-entered reference. A numeric
// reference matches by ID; anything else matches the exact name,
// case-insensitively. All matches are returned so the engine can
// require a unique resolution.
func (r *UserRepo) ResolveUsers(ctx context.Context, ref string) ([]model.User, error) {
	var (
		q    string
		args []any
	)
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		q = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
		args = []any{id}
	} else {
		q = `SELECT ` + userColumns + ` FROM users WHERE LOWER(name) = LOWER(?) ORDER BY id`
		args = []any{ref}
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storeErr("users.resolve", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, storeErr("users.resolve", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("users.resolve", err)
	}
	return out, nil
}

// InsertUser persists a new user and queries back the assigned creation
// timestamp.
func (r *UserRepo) InsertUser(ctx context.Context, u *model.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash)
	if err != nil {
		return storeErr("users.insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storeErr("users.insert", err)
	}
	u.ID = uint64(id)

	if err := r.db.QueryRowContext(ctx,
		`SELECT created_at FROM users WHERE id = ?`, u.ID).Scan(&u.CreatedAt); err != nil {
		return storeErr("users.insert", err)
	}
	return nil
}

// ListUsers returns one page of users matching the filter plus the
// total number of matches.
func (r *UserRepo) ListUsers(ctx context.Context, f booking.UserFilter) ([]model.User, int, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if f.ID != 0 {
		where = append(where, "id = ?")
		args = append(args, f.ID)
	}
	if f.Name != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Email != "" {
		where = append(where, "LOWER(email) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Email)+"%")
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+clause, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("users.count", err)
	}

	q := `SELECT ` + userColumns + ` FROM users` + clause + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, storeErr("users.list", err)
	}
	defer rows.Close()

	out := make([]model.User, 0, f.Limit)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, 0, storeErr("users.list", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("users.list", err)
	}
	return out, total, nil
}
