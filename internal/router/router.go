// Package router maps HTTP routes onto handlers and decides which
// middleware guards each group.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/meeting-room-booking/internal/handler"
	"github.com/iliyamo/meeting-room-booking/internal/middleware"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Rooms        *handler.RoomHandler
	Reservations *handler.ReservationHandler
}

// RegisterRoutes registers all application routes. Read endpoints and
// auth live outside the JWT group; room creation, logout-all and /v1/me
// require a valid access token.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Session endpoints. Logout works with a refresh token in the body
	// and therefore needs no JWT.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Read endpoints are open: listings, availability and the
	// reservation book are queryable without a session.
	e.GET("/v1/users", h.Users.List)
	e.GET("/v1/rooms", h.Rooms.List)
	e.GET("/v1/rooms/:id/availability", h.Rooms.Availability)
	e.GET("/v1/rooms/:id/reservations", h.Rooms.Reservations)
	e.GET("/v1/reservations", h.Reservations.List)

	// Mutations require a valid access token. The user a booking is for
	// still comes from the request's user reference, not from the
	// session; the token only gates who may write.
	protected := e.Group("/v1")
	protected.Use(middleware.JWTAuth(jwtSecret))
	protected.GET("/me", h.Auth.Me)
	protected.POST("/rooms", h.Rooms.Create)
	protected.POST("/reservations", h.Reservations.Create)
	protected.DELETE("/reservations/:id", h.Reservations.Delete)
	protected.POST("/logout", h.Auth.Logout)
}
