package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/booking"
	"github.com/iliyamo/meeting-room-booking/internal/metrics"
	"github.com/iliyamo/meeting-room-booking/internal/queue"
)

// ReservationHandler serves reservation creation, listing and deletion.
type ReservationHandler struct {
	Engine    *booking.Engine
	Publisher *queue.Publisher
}

func NewReservationHandler(eng *booking.Engine, pub *queue.Publisher) *ReservationHandler {
	return &ReservationHandler{Engine: eng, Publisher: pub}
}

type createReservationReq struct {
	RoomID    uint64    `json:"room_id" validate:"required"`
	User      string    `json:"user" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

// Create runs a candidate reservation through admission. The user field
// is a reference: a numeric user ID or the exact user name.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	started := time.Now()
	res, err := h.Engine.Admit(ctx, booking.Candidate{
		RoomID:  req.RoomID,
		UserRef: req.User,
		Start:   req.StartTime,
		End:     req.EndTime,
	})
	metrics.AdmissionDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.AdmissionsTotal.WithLabelValues(admissionOutcome(err)).Inc()
		return bookingError(c, err)
	}
	metrics.AdmissionsTotal.WithLabelValues("admitted").Inc()

	// Broker failures are logged by the publisher and never fail the
	// request.
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pubCancel()
		_ = h.Publisher.ReservationCreated(pubCtx, queue.ReservationCreatedEvent{
			ReservationID: res.ID,
			RoomID:        res.RoomID,
			UserID:        res.UserID,
			StartsAt:      res.StartTime.Format(time.RFC3339),
			EndsAt:        res.EndTime.Format(time.RFC3339),
			CreatedAt:     res.CreatedAt.Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, res)
}

// List returns a page of reservations matching the query filters (id,
// room_id, user_id, date, created).
func (h *ReservationHandler) List(c echo.Context) error {
	f := booking.ReservationFilter{PageRequest: parsePage(c)}
	if v, err := strconv.ParseUint(c.QueryParam("id"), 10, 64); err == nil {
		f.ID = v
	}
	if v, err := strconv.ParseUint(c.QueryParam("room_id"), 10, 64); err == nil {
		f.RoomID = v
	}
	if v, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64); err == nil {
		f.UserID = v
	}
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	f.Date = date
	created, err := parseDateParam(c, "created")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "created must be YYYY-MM-DD"})
	}
	f.CreatedDate = created

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, meta, err := h.Engine.List(ctx, f)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: items, Meta: meta})
}

// Delete removes a reservation. 204 when a reservation was removed, 404
// when none existed.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Engine.Delete(ctx, id); err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			metrics.CancellationsTotal.WithLabelValues("not_found").Inc()
		}
		return bookingError(c, err)
	}
	metrics.CancellationsTotal.WithLabelValues("removed").Inc()

	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pubCancel()
		_ = h.Publisher.ReservationCancelled(pubCtx, queue.ReservationCancelledEvent{
			ReservationID: id,
			CancelledAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.NoContent(http.StatusNoContent)
}

func admissionOutcome(err error) string {
	var ie *booking.InvalidIntervalError
	var ce *booking.ConflictError
	switch {
	case errors.As(err, &ie):
		return "invalid_interval"
	case errors.As(err, &ce):
		return "conflict"
	case errors.Is(err, booking.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, booking.ErrUnknownUser):
		return "unknown_user"
	case errors.Is(err, booking.ErrAmbiguousUser):
		return "ambiguous_user"
	default:
		return "store_error"
	}
}
