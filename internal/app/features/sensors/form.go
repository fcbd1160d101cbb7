// internal/app/features/sensors/form.go
package sensors

import (
	"context"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	sensorstore "github.com/dalemusser/tankerhub/internal/app/store/sensors"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var sensorStatuses = []string{models.SensorOnline, models.SensorOffline}

// ServeNew renders the "Add Sensor" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "sensor new")
	defer cancel()

	data := formData{Action: "/sensors/new", Status: models.SensorOnline}
	data.Customers = h.customers(ctx)
	formutil.SetBase(&data.Base, w, r, "Add Sensor", "/sensors")
	h.renderForm(w, r, data)
}

// HandleCreate processes the Add Sensor form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/sensors")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "sensor create")
	defer cancel()

	in, msg := readForm(r)
	if msg != "" {
		h.rerender(ctx, w, r, "", "Add Sensor", msg)
		return
	}

	created, err := h.Sensors.Create(ctx, in)
	if err != nil {
		h.ErrLog.Upstream(w, r, "create sensor failed", err, "Could not add the sensor.", "/sensors")
		return
	}
	h.Audit.EntityCreated(ctx, r, audit.EntitySensor, created.ID, in.Name)

	toast.Success(w, r, in.Name+" added.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.SensorsBackURL))
}

// ServeEdit renders the Edit Sensor form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "sensor edit")
	defer cancel()

	s, err := h.Sensors.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get sensor failed", err, "Unable to load the sensor.", "/sensors")
		return
	}

	data := formData{
		ID:           s.ID,
		Action:       "/sensors/" + s.ID + "/edit",
		DeviceID:     s.DeviceID,
		Name:         s.Name,
		CustomerID:   s.CustomerID,
		Location:     s.Location,
		TankCapacity: strconv.Itoa(s.TankCapacity),
		Status:       s.Status,
		Customers:    h.customers(ctx),
	}
	formutil.SetBase(&data.Base, w, r, "Edit Sensor", "/sensors")
	h.renderForm(w, r, data)
}

// HandleEdit processes the Edit Sensor form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/sensors")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "sensor update")
	defer cancel()

	in, msg := readForm(r)
	if msg != "" {
		h.rerender(ctx, w, r, id, "Edit Sensor", msg)
		return
	}

	if _, err := h.Sensors.Update(ctx, id, in); err != nil {
		h.ErrLog.Upstream(w, r, "update sensor failed", err, "Could not save the sensor.", "/sensors")
		return
	}
	h.Audit.EntityUpdated(ctx, r, audit.EntitySensor, id, in.Name)

	toast.Success(w, r, in.Name+" updated.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.SensorsBackURL))
}

func readForm(r *http.Request) (sensorstore.Input, string) {
	in := sensorstore.Input{
		DeviceID:     formutil.Trimmed(r, "device_id"),
		Name:         normalize.Name(r.FormValue("name")),
		CustomerID:   formutil.Trimmed(r, "customer_id"),
		Location:     formutil.Trimmed(r, "location"),
		TankCapacity: formutil.Int(r, "tank_capacity"),
		Status:       normalize.Status(r.FormValue("status")),
	}
	res := inputval.Validate(sensorInput{
		DeviceID:     in.DeviceID,
		Name:         in.Name,
		Location:     in.Location,
		TankCapacity: in.TankCapacity,
		Status:       in.Status,
	})
	return in, res.First()
}

func (h *Handler) rerender(ctx context.Context, w http.ResponseWriter, r *http.Request, id, title, msg string) {
	data := formData{
		ID:           id,
		Action:       "/sensors/new",
		DeviceID:     formutil.Trimmed(r, "device_id"),
		Name:         formutil.Trimmed(r, "name"),
		CustomerID:   formutil.Trimmed(r, "customer_id"),
		Location:     formutil.Trimmed(r, "location"),
		TankCapacity: formutil.Trimmed(r, "tank_capacity"),
		Status:       formutil.Trimmed(r, "status"),
		Customers:    h.customers(ctx),
	}
	if id != "" {
		data.Action = "/sensors/" + id + "/edit"
	}
	formutil.SetBase(&data.Base, w, r, title, "/sensors")
	data.SetError(msg)
	h.renderForm(w, r, data)
}

// customers loads the owner picker; a failure leaves it empty.
func (h *Handler) customers(ctx context.Context) []models.Customer {
	cs, err := h.Customers.List(ctx)
	if err != nil {
		h.Log.Warn("list customers for sensor form failed", zap.Error(err))
		return nil
	}
	return cs
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData) {
	data.Statuses = sensorStatuses
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "modal" {
		templates.RenderSnippet(w, "sensor_form", data)
		return
	}
	templates.Render(w, r, "sensor_form_page", data)
}
