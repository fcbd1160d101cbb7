// internal/app/features/activity/routes.go
package activity

import (
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the activity pages (typically at "/activity").
// Superadmins only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleSuperAdmin))

		// Who's online
		pr.Get("/", h.ServeOnline)

		// Admin session history
		pr.Get("/admin/{adminID}", h.ServeHistory)
		pr.Get("/admin/{adminID}/sessions.csv", h.ServeHistoryCSV)
	})

	return r
}
