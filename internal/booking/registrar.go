package booking

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/meeting-room-booking/internal/model"
	"github.com/iliyamo/meeting-room-booking/internal/utils"
)

// Registrar creates user accounts with uniqueness guarantees on name
// and email. Passwords are stored only as bcrypt hashes.
type Registrar struct {
	users      UserStore
	bcryptCost int
	log        zerolog.Logger
}

// NewRegistrar constructs a Registrar. cost is the bcrypt cost used
// when hashing passwords.
func NewRegistrar(users UserStore, cost int, log zerolog.Logger) *Registrar {
	if users == nil {
		panic("nil store passed to NewRegistrar")
	}
	return &Registrar{users: users, bcryptCost: cost, log: log}
}

// Register stores a new user. The name is checked for uniqueness first,
// then the email; the first taken field wins. The returned user carries
// the assigned ID; callers must expose only its public projection.
func (r *Registrar) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := r.users.FindUserByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	existing, err = r.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password, r.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{Name: name, Email: email, PasswordHash: hash}
	if err := r.users.InsertUser(ctx, u); err != nil {
		return nil, err
	}
	r.log.Info().Uint64("user_id", u.ID).Str("name", u.Name).Msg("user registered")
	return u, nil
}

// ListUsers returns one page of users matching the filter.
func (r *Registrar) ListUsers(ctx context.Context, f UserFilter) ([]model.User, PageInfo, error) {
	f.PageRequest = f.PageRequest.Normalize()
	items, total, err := r.users.ListUsers(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return items, NewPageInfo(f.PageRequest, total), nil
}
