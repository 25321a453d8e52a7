package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// StartReservationConsumer connects to RabbitMQ, declares the
// reservation queues (durable), and consumes events, writing each to
// the structured log. The function runs a reconnect loop with
// exponential backoff and never returns under normal operation; run it
// in its own goroutine. Processing errors reject the message without
// requeueing to avoid tight redelivery loops.
func StartReservationConsumer(url string, log zerolog.Logger) {
	if url == "" {
		url = brokerURL()
	}
	log = log.With().Str("component", "queue-consumer").Logger()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("broker dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, log); err != nil {
			log.Warn().Err(err).Msg("consume loop ended, reconnecting")
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, log zerolog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn().Err(err).Msg("set QoS failed")
	}

	for _, q := range []string{ReservationCreatedQueue, ReservationCancelledQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", q, err)
		}
	}

	created, err := ch.Consume(ReservationCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ReservationCreatedQueue, err)
	}
	cancelled, err := ch.Consume(ReservationCancelledQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ReservationCancelledQueue, err)
	}

	for {
		select {
		case d, ok := <-created:
			if !ok {
				return errors.New("created deliveries channel closed")
			}
			ackOrReject(d, handleCreated(d.Body, log), log)
		case d, ok := <-cancelled:
			if !ok {
				return errors.New("cancelled deliveries channel closed")
			}
			ackOrReject(d, handleCancelled(d.Body, log), log)
		}
	}
}

func ackOrReject(d amqp.Delivery, err error, log zerolog.Logger) {
	if err != nil {
		log.Warn().Err(err).Msg("handle message failed")
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func handleCreated(body []byte, log zerolog.Logger) error {
	var ev ReservationCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	log.Info().
		Uint64("reservation_id", ev.ReservationID).
		Uint64("room_id", ev.RoomID).
		Uint64("user_id", ev.UserID).
		Str("starts_at", ev.StartsAt).
		Str("ends_at", ev.EndsAt).
		Msg("reservation created")
	return nil
}

func handleCancelled(body []byte, log zerolog.Logger) error {
	var ev ReservationCancelledEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	log.Info().
		Uint64("reservation_id", ev.ReservationID).
		Str("cancelled_at", ev.CancelledAt).
		Msg("reservation cancelled")
	return nil
}
