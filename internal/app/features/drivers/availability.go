// internal/app/features/drivers/availability.go
package drivers

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5"
)

// HandleAvailability sets the driver's availability to the posted value.
//
// Route: POST /drivers/{id}/availability
func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	available := formutil.Bool(r, "available")
	ret := navigation.SafeBackURL(r, navigation.DriversBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "driver availability")
	defer cancel()

	d, err := h.Drivers.SetAvailability(ctx, id, available)
	if err != nil {
		h.ErrLog.Upstream(w, r, "set driver availability failed", err, "Could not change availability.", ret)
		return
	}
	h.Audit.DriverAvailability(ctx, r, id, available)

	name := d.Name
	if name == "" {
		name = "Driver"
	}
	if available {
		toast.Success(w, r, name+" is now available.")
	} else {
		toast.Info(w, r, name+" is now unavailable.")
	}
	uierrors.Redirect(w, r, ret)
}
