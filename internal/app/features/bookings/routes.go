// internal/app/features/bookings/routes.go
package bookings

import (
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Booking routes under the base path
// (typically "/bookings" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleAdmin))

		pr.Get("/", h.ServeList)

		pr.Get("/new", h.ServeNew)
		pr.Post("/new", h.HandleCreate)

		pr.Get("/{id}", h.ServeView)

		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		pr.Post("/{id}/status", h.HandleStatus)
		pr.Post("/{id}/assign", h.HandleAssign)

		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
