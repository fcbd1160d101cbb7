// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Notification routes under the base path
// (typically "/notifications" from bootstrap). Notifications cannot be
// edited once sent.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleAdmin))

		pr.Get("/", h.ServeList)

		pr.Get("/new", h.ServeNew)
		pr.Post("/new", h.HandleSend)

		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
