package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/booking"
	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// UserHandler serves user listings.
type UserHandler struct {
	Registrar *booking.Registrar
}

func NewUserHandler(reg *booking.Registrar) *UserHandler {
	return &UserHandler{Registrar: reg}
}

// List returns a page of users matching the query filters (id, name,
// email). Password hashes never leave the server; every record is
// reduced to its public projection.
func (h *UserHandler) List(c echo.Context) error {
	f := booking.UserFilter{
		Name:        c.QueryParam("name"),
		Email:       c.QueryParam("email"),
		PageRequest: parsePage(c),
	}
	if v, err := strconv.ParseUint(c.QueryParam("id"), 10, 64); err == nil {
		f.ID = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, meta, err := h.Registrar.ListUsers(ctx, f)
	if err != nil {
		return bookingError(c, err)
	}
	public := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: public, Meta: meta})
}
