// Package handler contains the HTTP handlers. Each handler binds and
// validates its request, calls into the booking core with a bounded
// context, and maps the core's errors onto stable status codes:
// invalid intervals are 400, missing entities 404, conflicts 409 with
// the conflicting reservation as payload, unresolvable user references
// 422, and store outages 503.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/booking"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// pagedResponse is the envelope for every listing endpoint.
type pagedResponse struct {
	Items any              `json:"items"`
	Meta  booking.PageInfo `json:"meta"`
}

// parsePage reads page/limit query parameters. Unset or malformed
// values fall back to the defaults during Normalize.
func parsePage(c echo.Context) booking.PageRequest {
	var pr booking.PageRequest
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		pr.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		pr.Limit = v
	}
	return pr
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseDateParam parses an optional YYYY-MM-DD query parameter. A
// missing parameter yields (nil, nil); a malformed one, an error.
func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// currentUser returns the authenticated user's ID set by the JWT
// middleware, or 0 when the route is unauthenticated.
func currentUser(c echo.Context) uint64 {
	if uid, ok := c.Get("user_id").(uint64); ok {
		return uid
	}
	return 0
}

// bookingError maps a booking core error onto an HTTP response. The
// mapping is total: any error not recognised as a domain rejection is
// reported as a store failure or an internal error.
func bookingError(c echo.Context, err error) error {
	var ie *booking.InvalidIntervalError
	if errors.As(err, &ie) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ie.Reason})
	}
	var ce *booking.ConflictError
	if errors.As(err, &ce) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":       "reservation conflicts with an existing reservation",
			"conflicting": ce.Conflicting,
		})
	}
	switch {
	case errors.Is(err, booking.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, booking.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, booking.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case errors.Is(err, booking.ErrUnknownUser):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "user reference matched no user"})
	case errors.Is(err, booking.ErrAmbiguousUser):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "user reference is ambiguous; use a user id or exact name"})
	case errors.Is(err, booking.ErrNameTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "name already registered"})
	case errors.Is(err, booking.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	case errors.Is(err, booking.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage temporarily unavailable"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
