// internal/app/features/drivers/delete.go
package drivers

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5"
)

// HandleDelete deletes a driver.
//
// Route: POST /drivers/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ret := navigation.SafeBackURL(r, navigation.DriversBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "driver delete")
	defer cancel()

	if err := h.Drivers.Delete(ctx, id); err != nil {
		h.ErrLog.Upstream(w, r, "delete driver failed", err, "Could not delete the driver.", ret)
		return
	}
	h.Audit.EntityDeleted(ctx, r, audit.EntityDriver, id, r.FormValue("label"))

	toast.Success(w, r, "Driver deleted.")
	uierrors.Redirect(w, r, ret)
}
