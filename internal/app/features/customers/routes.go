// internal/app/features/customers/routes.go
package customers

import (
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Customer routes under the base path
// (typically "/customers" from bootstrap). Customers sign up through the
// mobile app, so there is no create route.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)

		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		// Block / unblock
		pr.Post("/{id}/status", h.HandleStatus)

		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
