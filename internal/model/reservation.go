package model

import "time"

// Reservation records a booking of a room for a half-open time interval
// [StartTime, EndTime). Two stored reservations for the same room never
// overlap; the admission engine enforces this at write time.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room being reserved.
//  UserID    – user the reservation was booked for.
//  StartTime – first instant of the interval (UTC).
//  EndTime   – first instant after the interval (UTC), always after StartTime.
//  CreatedAt – creation timestamp assigned by the database.
type Reservation struct {
	ID        uint64    `json:"id"`         // reservations.id
	RoomID    uint64    `json:"room_id"`    // reservations.room_id
	UserID    uint64    `json:"user_id"`    // reservations.user_id
	StartTime time.Time `json:"start_time"` // reservations.start_time
	EndTime   time.Time `json:"end_time"`   // reservations.end_time
	CreatedAt time.Time `json:"created_at"` // reservations.created_at
}
