// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/store/activity"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Closer ends activity sessions.
type Closer interface {
	Close(ctx context.Context, id, reason string) error
}

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Activity   Closer // optional
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, closer Closer, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Activity:   closer,
		AuditLog:   audit,
	}
}

// ServeLogout handles GET and POST /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "logout")
	defer cancel()

	if u, ok := auth.CurrentUser(r); ok {
		if h.Activity != nil && u.ActivityID != "" {
			if err := h.Activity.Close(ctx, u.ActivityID, activity.EndLogout); err != nil {
				h.Log.Warn("logout: close activity session", zap.Error(err))
			}
		}
		h.AuditLog.Logout(ctx, r)
	}

	h.SessionMgr.SignOut(w, r)

	// HTMX: force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
