// internal/app/features/notifications/delete.go
package notifications

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5"
)

// HandleDelete removes a notification from the backend history.
//
// Route: POST /notifications/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ret := navigation.SafeBackURL(r, navigation.NotificationsBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "notification delete")
	defer cancel()

	if err := h.Notifications.Delete(ctx, id); err != nil {
		h.ErrLog.Upstream(w, r, "delete notification failed", err, "Could not delete the notification.", ret)
		return
	}
	h.Audit.EntityDeleted(ctx, r, audit.EntityNotification, id, r.FormValue("label"))

	toast.Success(w, r, "Notification deleted.")
	uierrors.Redirect(w, r, ret)
}
