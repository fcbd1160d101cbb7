// internal/app/features/bookings/delete.go
package bookings

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5"
)

// HandleDelete deletes a booking.
//
// Route: POST /bookings/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ret := navigation.SafeBackURL(r, navigation.BookingsBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "booking delete")
	defer cancel()

	if err := h.Bookings.Delete(ctx, id); err != nil {
		h.ErrLog.Upstream(w, r, "delete booking failed", err, "Could not delete the booking.", ret)
		return
	}
	h.Audit.EntityDeleted(ctx, r, audit.EntityBooking, id, r.FormValue("label"))

	toast.Success(w, r, "Booking deleted.")
	uierrors.Redirect(w, r, ret)
}
