// internal/app/features/complaints/routes.go
package complaints

import (
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Complaint routes under the base path
// (typically "/complaints" from bootstrap). Complaints are raised by
// customers, so there is no create route.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
		pr.Post("/{id}/status", h.HandleStatus)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
