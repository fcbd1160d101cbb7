// internal/app/features/tankers/delete.go
package tankers

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5"
)

// HandleDelete deletes a tanker and redirects back to the list
// (or to a caller-provided return URL if present).
//
// Route: POST /tankers/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	plate := r.FormValue("label")
	ret := navigation.SafeBackURL(r, navigation.TankersBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "tanker delete")
	defer cancel()

	if err := h.Tankers.Delete(ctx, id); err != nil {
		h.ErrLog.Upstream(w, r, "delete tanker failed", err, "Could not delete the tanker.", ret)
		return
	}
	h.Audit.EntityDeleted(ctx, r, audit.EntityTanker, id, plate)

	toast.Success(w, r, "Tanker deleted.")
	uierrors.Redirect(w, r, ret)
}
