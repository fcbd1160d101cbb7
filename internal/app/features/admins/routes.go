// internal/app/features/admins/routes.go
package admins

import (
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts admin management under "/admins". Superadmin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleSuperAdmin))

		pr.Get("/", h.ServeList)

		pr.Get("/new", h.ServeNew)
		pr.Post("/new", h.HandleCreate)

		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		pr.Post("/{id}/status", h.HandleStatus)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
