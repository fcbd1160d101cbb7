// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/authz"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// source is one independently loaded dashboard figure.
type source struct {
	name string
	msg  string
	load func() error
	fail func()
	err  error
}

// ServeDashboard handles GET /dashboard. Every figure loads concurrently;
// a failing source shows a dash and a toast while the rest still render.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "dashboard")
	defer cancel()

	data, failed := h.load(ctx, h.Online != nil && authz.IsSuperAdmin(r))
	for _, s := range failed {
		if !h.ErrLog.Toast(w, r, "dashboard source failed: "+s.name, s.err, s.msg) {
			return
		}
	}

	data.BaseVM = viewdata.NewBaseVM(w, r, "Dashboard", "/")
	h.Log.Debug("dashboard served", zap.String("user", data.UserName))
	templates.Render(w, r, "dashboard", data)
}

// load fetches every figure and returns the sources that failed, with
// their placeholders already applied.
func (h *Handler) load(ctx context.Context, withOnline bool) (dashboardData, []*source) {
	data := dashboardData{Threshold: h.Threshold}

	sources := []*source{
		{name: "customers", msg: "Customer count could not be loaded.",
			load: func() error {
				all, err := h.Customers.List(ctx)
				data.Customers.Value = len(all)
				return err
			},
			fail: func() { data.Customers.Failed = true }},
		{name: "drivers", msg: "Driver availability could not be loaded.",
			load: func() error {
				all, err := h.Drivers.List(ctx)
				data.DriversAvailable.Value = countIf(all, models.Driver.CanDispatch)
				return err
			},
			fail: func() { data.DriversAvailable.Failed = true }},
		{name: "tankers", msg: "Tanker count could not be loaded.",
			load: func() error {
				all, err := h.Tankers.List(ctx)
				data.TankersActive.Value = countIf(all, models.Tanker.IsActive)
				return err
			},
			fail: func() { data.TankersActive.Failed = true }},
		{name: "bookings", msg: "Bookings could not be loaded.",
			load: func() error {
				all, err := h.Bookings.List(ctx)
				if err != nil {
					return err
				}
				data.BookingsByStatus = byStatus(all)
				data.Revenue = h.Fmt.Money(deliveredRevenue(all))
				data.Latest = latest(all, latestBookings)
				return nil
			},
			fail: func() {
				data.BookingsFailed = true
				data.Revenue = unavailable
			}},
		{name: "complaints", msg: "Complaints could not be loaded.",
			load: func() error {
				all, err := h.Complaints.List(ctx)
				data.OpenComplaints.Value = countIf(all, func(c models.Complaint) bool { return !c.IsClosed() })
				return err
			},
			fail: func() { data.OpenComplaints.Failed = true }},
		{name: "sensors", msg: "Sensor levels could not be loaded.",
			load: func() error {
				all, err := h.Sensors.List(ctx)
				data.LowSensors.Value = countIf(all, func(s models.Sensor) bool { return s.IsLow(h.Threshold) })
				return err
			},
			fail: func() { data.LowSensors.Failed = true }},
	}

	if withOnline {
		data.ShowOnline = true
		sources = append(sources, &source{name: "online", msg: "Online admins could not be loaded.",
			load: func() error {
				sess, err := h.Online.Online(ctx, time.Now().Add(-onlineWindow))
				data.Online = sess
				return err
			},
			fail: func() { data.OnlineFailed = true }})
	}

	// Each source writes only its own fields and keeps its own error.
	var g errgroup.Group
	for _, s := range sources {
		g.Go(func() error {
			s.err = s.load()
			return nil
		})
	}
	_ = g.Wait()

	var failed []*source
	for _, s := range sources {
		if s.err != nil {
			s.fail()
			failed = append(failed, s)
		}
	}
	return data, failed
}
