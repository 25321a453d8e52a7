package model

import "time"

// Room represents a bookable meeting room. Rooms are created once and
// never mutated; the creation timestamp is assigned by the database so
// it is non-decreasing with insertion order.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human-friendly room name (3–255 characters).
//  Location  – where the room is (floor, building; 3–255 characters).
//  Capacity  – number of seats, always greater than 2.
//  CreatorID – references users.id of the user who registered the room.
//  CreatedAt – timestamp of creation.
type Room struct {
	ID        uint64    `json:"id"`         // rooms.id
	Name      string    `json:"name"`       // rooms.name
	Location  string    `json:"location"`   // rooms.location
	Capacity  uint32    `json:"capacity"`   // rooms.capacity
	CreatorID uint64    `json:"creator_id"` // rooms.creator_id
	CreatedAt time.Time `json:"created_at"` // rooms.created_at
}
