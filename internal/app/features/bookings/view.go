// internal/app/features/bookings/view.go
package bookings

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// ServeView shows one booking. While the booking is still assignable the
// page also offers the dispatchable drivers and active tankers.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "booking view")
	defer cancel()

	b, err := h.Bookings.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get booking failed", err, "Unable to load the booking.", "/bookings")
		return
	}

	data := viewData{
		Booking:      b,
		NextStatuses: models.NextBookingStatuses(b.Status),
		Assignable:   b.IsAssignable(),
	}

	if data.Assignable {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			data.Drivers, err = h.Drivers.Dispatchable(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			data.Tankers, err = h.Tankers.Active(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			// The booking itself loaded; show it without the assign form.
			if !h.ErrLog.Toast(w, r, "load assignment options failed", err, "Drivers and tankers could not be loaded.") {
				return
			}
			data.Assignable = false
		}
	}

	data.BaseVM = viewdata.NewBaseVM(w, r, "Booking", "/bookings")
	templates.Render(w, r, "booking_view", data)
}
