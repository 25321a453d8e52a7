package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/booking"
)

// RoomHandler serves room creation, listing, availability and per-room
// reservation listings.
type RoomHandler struct {
	Catalog *booking.Catalog
	Engine  *booking.Engine
}

func NewRoomHandler(cat *booking.Catalog, eng *booking.Engine) *RoomHandler {
	return &RoomHandler{Catalog: cat, Engine: eng}
}

type createRoomReq struct {
	Name     string `json:"name" validate:"required,min=3,max=255"`
	Location string `json:"location" validate:"required,min=3,max=255"`
	Capacity uint32 `json:"capacity" validate:"required,gt=2"`
}

// Create registers a room. The creator is the authenticated user.
func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	room, err := h.Catalog.CreateRoom(ctx, booking.NewRoom{
		Name:      req.Name,
		Location:  req.Location,
		Capacity:  req.Capacity,
		CreatorID: currentUser(c),
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// List returns a page of rooms matching the query filters (id, name,
// location, capacity).
func (h *RoomHandler) List(c echo.Context) error {
	f := booking.RoomFilter{
		Name:        c.QueryParam("name"),
		Location:    c.QueryParam("location"),
		PageRequest: parsePage(c),
	}
	if v, err := strconv.ParseUint(c.QueryParam("id"), 10, 64); err == nil {
		f.ID = v
	}
	if v, err := strconv.ParseUint(c.QueryParam("capacity"), 10, 32); err == nil {
		f.Capacity = uint32(v)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rooms, meta, err := h.Catalog.ListRooms(ctx, f)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: rooms, Meta: meta})
}

// Availability reports whether a room is free over [start, end). The
// window is checked with the same overlap rule as admission, so a
// positive answer here means an immediate booking of the same window
// would not conflict.
func (h *RoomHandler) Availability(c echo.Context) error {
	roomID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be RFC3339"})
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be RFC3339"})
	}
	if !start.Before(end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start time must be earlier than end time"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	free, err := h.Engine.IsAvailable(ctx, roomID, start, end)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"available": free})
}

// Reservations lists one page of a room's reservations, optionally
// restricted to those starting on a given date (YYYY-MM-DD, UTC).
func (h *RoomHandler) Reservations(c echo.Context) error {
	roomID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, meta, err := h.Engine.ListForRoom(ctx, roomID, date, parsePage(c))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: items, Meta: meta})
}
