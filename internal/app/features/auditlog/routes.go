// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the dashboard audit log (typically at "/audit").
// Only superadmins may read it.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleSuperAdmin))

		pr.Get("/", h.ServeList)
	})

	return r
}
