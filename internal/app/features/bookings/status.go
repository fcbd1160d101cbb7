// internal/app/features/bookings/status.go
package bookings

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	bookingstore "github.com/dalemusser/tankerhub/internal/app/store/bookings"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5"
)

// HandleStatus moves a booking along its lifecycle. The current status
// is re-read from the backend so a stale page cannot skip a step.
//
// Route: POST /bookings/{id}/status (status=...)
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	to := normalize.Status(r.FormValue("status"))
	ret := navigation.SafeBackURL(r, navigation.BookingsBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "booking status")
	defer cancel()

	b, err := h.Bookings.Get(ctx, id)
	if err != nil {
		h.ErrLog.Upstream(w, r, "get booking failed", err, "Could not load the booking.", ret)
		return
	}

	if _, err := h.Bookings.SetStatus(ctx, b, to); err != nil {
		if errors.Is(err, bookingstore.ErrInvalidTransition) {
			toast.Error(w, r, "Cannot change a booking from "+listing.Label(b.Status)+" to "+listing.Label(to)+".")
			uierrors.Redirect(w, r, ret)
			return
		}
		h.ErrLog.Upstream(w, r, "set booking status failed", err, "Could not change the booking status.", ret)
		return
	}
	h.Audit.StatusChanged(ctx, r, audit.EntityBooking, id, b.Status, to)

	toast.Success(w, r, "Booking marked "+listing.Label(to)+".")
	uierrors.Redirect(w, r, ret)
}
