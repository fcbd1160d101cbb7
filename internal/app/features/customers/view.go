// internal/app/features/customers/view.go
package customers

import (
	"cmp"
	"net/http"
	"net/url"
	"slices"

	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// ServeView shows one customer with their most recent bookings.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "customer view")
	defer cancel()

	var (
		c        models.Customer
		bookings []models.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c, err = h.Customers.Get(gctx, id)
		return err
	})
	g.Go(func() error {
		all, err := h.Bookings.List(gctx)
		if err != nil {
			return err
		}
		for _, b := range all {
			if b.CustomerID == id {
				bookings = append(bookings, b)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		h.ErrLog.LogServerError(w, r, "load customer failed", err, "Unable to load the customer.", "/customers")
		return
	}

	slices.SortFunc(bookings, func(a, b models.Booking) int {
		return cmp.Compare(b.ScheduledAt.UnixNano(), a.ScheduledAt.UnixNano())
	})
	count := len(bookings)
	if len(bookings) > recentBookings {
		bookings = bookings[:recentBookings]
	}

	templates.Render(w, r, "customer_view", viewData{
		BaseVM:         viewdata.NewBaseVM(w, r, c.Name, "/customers"),
		Customer:       c,
		Blocked:        c.Status == models.StatusBlocked,
		RecentBookings: bookings,
		BookingCount:   count,
		BookingsURL:    "/bookings?customer=" + url.QueryEscape(id),
	})
}
