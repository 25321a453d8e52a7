package booking

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// NewRoom carries the fields needed to register a room. Syntactic
// validation (lengths, capacity > 2) happens at the API boundary; the
// catalog verifies referential integrity.
type NewRoom struct {
	Name      string
	Location  string
	Capacity  uint32
	CreatorID uint64
}

// Catalog registers rooms and answers room listings. Rooms are created
// once and never mutated or deleted.
type Catalog struct {
	rooms RoomStore
	users UserStore
	log   zerolog.Logger
}

// NewCatalog constructs a Catalog over the given stores.
func NewCatalog(rooms RoomStore, users UserStore, log zerolog.Logger) *Catalog {
	if rooms == nil || users == nil {
		panic("nil store passed to NewCatalog")
	}
	return &Catalog{rooms: rooms, users: users, log: log}
}

// CreateRoom persists a new room after verifying that the creator
// exists. The creation timestamp is assigned by the store.
func (c *Catalog) CreateRoom(ctx context.Context, in NewRoom) (*model.Room, error) {
	creator, err := c.users.FindUser(ctx, in.CreatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrUserNotFound
	}

	room := &model.Room{
		Name:      strings.TrimSpace(in.Name),
		Location:  strings.TrimSpace(in.Location),
		Capacity:  in.Capacity,
		CreatorID: creator.ID,
	}
	if err := c.rooms.InsertRoom(ctx, room); err != nil {
		return nil, err
	}
	c.log.Info().Uint64("room_id", room.ID).Str("name", room.Name).Msg("room created")
	return room, nil
}

// ListRooms returns one page of rooms matching the filter.
func (c *Catalog) ListRooms(ctx context.Context, f RoomFilter) ([]model.Room, PageInfo, error) {
	f.PageRequest = f.PageRequest.Normalize()
	items, total, err := c.rooms.ListRooms(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return items, NewPageInfo(f.PageRequest, total), nil
}
