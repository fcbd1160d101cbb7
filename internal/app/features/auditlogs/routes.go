// internal/app/features/auditlogs/routes.go
package auditlogs

import (
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit trail under "/audit-logs".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Get("/export.csv", h.ServeCSV)
	})

	return r
}
