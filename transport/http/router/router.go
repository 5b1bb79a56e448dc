package router

import (
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/ledger"
	"hotel/internal/handlers/payment"
	"hotel/internal/handlers/room"
	"hotel/shared/failure"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const apiVersion = "/v1"

type DomainHandlers struct {
	Room    room.Handler
	Booking booking.Handler
	Payment payment.Handler
	Ledger  ledger.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts the hotel API under /v1. Every request passes the API
// key check, authentication and RBAC unless its route is public.
func (r *Router) SetupRoutes(router chi.Router) {
	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, failure.NotFound("route not found"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, failure.New(http.StatusMethodNotAllowed, "method not allowed"))
	})

	router.Route(apiVersion, func(api chi.Router) {
		api.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Room.Router(api)
		r.DomainHandlers.Booking.Router(api)
		r.DomainHandlers.Payment.Router(api)
		r.DomainHandlers.Ledger.Router(api)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
