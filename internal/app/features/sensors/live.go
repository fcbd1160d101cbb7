// internal/app/features/sensors/live.go
package sensors

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// ServeLive upgrades to a websocket subscribed to the sensor feed. The
// subscriber's token becomes the one the poller reads sensors with.
//
// Route: GET /sensors/live
func (h *Handler) ServeLive(w http.ResponseWriter, r *http.Request) {
	if h.Hub == nil {
		http.Error(w, "live feed disabled", http.StatusNotFound)
		return
	}
	u, ok := auth.CurrentUser(r)
	if !ok || u.Token == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	// Upgrade writes its own error response.
	if err := h.Hub.Serve(w, r, u.Token); err != nil {
		h.Log.Debug("sensor feed upgrade failed", zap.Error(err), zap.String("user_id", u.ID))
	}
}
