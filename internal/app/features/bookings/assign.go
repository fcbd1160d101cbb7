// internal/app/features/bookings/assign.go
package bookings

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	bookingstore "github.com/dalemusser/tankerhub/internal/app/store/bookings"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// HandleAssign puts a driver and a tanker on a booking. Only drivers
// that can be dispatched and tankers that are active are accepted.
//
// Route: POST /bookings/{id}/assign (driver_id, tanker_id)
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a := bookingstore.Assignment{
		DriverID: formutil.Trimmed(r, "driver_id"),
		TankerID: formutil.Trimmed(r, "tanker_id"),
	}
	ret := navigation.SafeBackURL(r, navigation.BookingsBackURL)

	if a.DriverID == "" || a.TankerID == "" {
		toast.Error(w, r, "Choose both a driver and a tanker.")
		uierrors.Redirect(w, r, ret)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "booking assign")
	defer cancel()

	var (
		b       models.Booking
		drivers []models.Driver
		tankers []models.Tanker
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { b, err = h.Bookings.Get(gctx, id); return })
	g.Go(func() (err error) { drivers, err = h.Drivers.Dispatchable(gctx); return })
	g.Go(func() (err error) { tankers, err = h.Tankers.Active(gctx); return })
	if err := g.Wait(); err != nil {
		h.ErrLog.Upstream(w, r, "load assignment data failed", err, "Could not assign the booking.", ret)
		return
	}

	if !hasDriver(drivers, a.DriverID) {
		toast.Error(w, r, "That driver is not available.")
		uierrors.Redirect(w, r, ret)
		return
	}
	if !hasTanker(tankers, a.TankerID) {
		toast.Error(w, r, "That tanker is not in service.")
		uierrors.Redirect(w, r, ret)
		return
	}

	if _, err := h.Bookings.Assign(ctx, b, a); err != nil {
		if errors.Is(err, bookingstore.ErrNotAssignable) {
			toast.Error(w, r, "This booking can no longer be assigned.")
			uierrors.Redirect(w, r, ret)
			return
		}
		h.ErrLog.Upstream(w, r, "assign booking failed", err, "Could not assign the booking.", ret)
		return
	}
	h.Audit.BookingAssigned(ctx, r, id, a.DriverID, a.TankerID)

	toast.Success(w, r, "Driver and tanker assigned.")
	uierrors.Redirect(w, r, ret)
}

func hasDriver(ds []models.Driver, id string) bool {
	for _, d := range ds {
		if d.ID == id {
			return true
		}
	}
	return false
}

func hasTanker(ts []models.Tanker, id string) bool {
	for _, t := range ts {
		if t.ID == id {
			return true
		}
	}
	return false
}
