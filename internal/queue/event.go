// Package queue defines message payloads exchanged over the message
// broker and the publisher/consumer that move them.
package queue

// Queue names used on the broker. Both are durable.
const (
	ReservationCreatedQueue   = "reservation.created"
	ReservationCancelledQueue = "reservation.cancelled"
)

// ReservationCreatedEvent is published when a reservation is admitted.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	UserID        uint64 `json:"user_id"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	CreatedAt     string `json:"created_at"`
}

// ReservationCancelledEvent is published when a reservation is deleted.
type ReservationCancelledEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	CancelledAt   string `json:"cancelled_at"`
}
