// internal/app/features/sensors/delete.go
package sensors

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5"
)

// HandleDelete deletes a sensor.
//
// Route: POST /sensors/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	label := r.FormValue("label")
	ret := navigation.SafeBackURL(r, navigation.SensorsBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "sensor delete")
	defer cancel()

	if err := h.Sensors.Delete(ctx, id); err != nil {
		h.ErrLog.Upstream(w, r, "delete sensor failed", err, "Could not delete the sensor.", ret)
		return
	}
	h.Audit.EntityDeleted(ctx, r, audit.EntitySensor, id, label)

	toast.Success(w, r, "Sensor deleted.")
	uierrors.Redirect(w, r, ret)
}
