// internal/app/features/bookings/form.go
package bookings

import (
	"context"
	"net/http"
	"strconv"
	"time"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	bookingstore "github.com/dalemusser/tankerhub/internal/app/store/bookings"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeNew renders the "New Booking" form. ?customer= preselects the
// customer.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "booking new")
	defer cancel()

	customers, err := h.Customers.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list customers failed", err, "Unable to load customers.", "/bookings")
		return
	}

	data := formData{
		Action:      "/bookings/new",
		CustomerID:  query.Get(r, "customer"),
		ScheduledAt: time.Now().Add(time.Hour).Truncate(time.Hour).Format(datetimeLocal),
		Customers:   selectable(customers),
	}
	formutil.SetBase(&data.Base, w, r, "New Booking", "/bookings")
	h.renderForm(w, r, data)
}

// HandleCreate processes the New Booking form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/bookings")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "booking create")
	defer cancel()

	in, msg := readForm(r)
	if msg != "" {
		h.rerender(ctx, w, r, "", "New Booking", msg)
		return
	}

	created, err := h.Bookings.Create(ctx, in)
	if err != nil {
		h.ErrLog.Upstream(w, r, "create booking failed", err, "Could not create the booking.", "/bookings")
		return
	}
	h.Audit.EntityCreated(ctx, r, audit.EntityBooking, created.ID, in.Address)

	toast.Success(w, r, "Booking created.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.BookingsBackURL))
}

// ServeEdit renders the Edit Booking form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "booking edit")
	defer cancel()

	b, err := h.Bookings.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get booking failed", err, "Unable to load the booking.", "/bookings")
		return
	}
	customers, err := h.Customers.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list customers failed", err, "Unable to load customers.", "/bookings/"+id)
		return
	}

	data := formData{
		ID:          b.ID,
		Action:      "/bookings/" + b.ID + "/edit",
		CustomerID:  b.CustomerID,
		Address:     b.Address,
		Phone:       b.Phone,
		Liters:      strconv.Itoa(b.Liters),
		Price:       strconv.FormatFloat(b.Price, 'f', -1, 64),
		ScheduledAt: b.ScheduledAt.Local().Format(datetimeLocal),
		Notes:       b.Notes,
		Customers:   customers,
	}
	formutil.SetBase(&data.Base, w, r, "Edit Booking", "/bookings/"+id)
	h.renderForm(w, r, data)
}

// HandleEdit processes the Edit Booking form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/bookings")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "booking update")
	defer cancel()

	in, msg := readForm(r)
	if msg != "" {
		h.rerender(ctx, w, r, id, "Edit Booking", msg)
		return
	}

	if _, err := h.Bookings.Update(ctx, id, in); err != nil {
		h.ErrLog.Upstream(w, r, "update booking failed", err, "Could not save the booking.", "/bookings/"+id)
		return
	}
	h.Audit.EntityUpdated(ctx, r, audit.EntityBooking, id, in.Address)

	toast.Success(w, r, "Booking updated.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.BookingsBackURL))
}

// readForm parses the booking form in server-local time.
func readForm(r *http.Request) (bookingstore.Input, string) {
	in := bookingstore.Input{
		CustomerID:  formutil.Trimmed(r, "customer_id"),
		Address:     formutil.Trimmed(r, "address"),
		Phone:       normalize.Phone(r.FormValue("phone")),
		Liters:      formutil.Int(r, "liters"),
		Price:       formutil.Float(r, "price"),
		ScheduledAt: formutil.DateTime(r, "scheduled_at", time.Local),
		Notes:       formutil.Trimmed(r, "notes"),
	}
	res := inputval.Validate(bookingInput(in))
	return in, res.First()
}

// rerender shows the form again with the submitted values and msg. The
// customer picker is best effort: if it cannot load, the form still
// renders with the posted id.
func (h *Handler) rerender(ctx context.Context, w http.ResponseWriter, r *http.Request, id, title, msg string) {
	customers, err := h.Customers.List(ctx)
	if err != nil {
		h.Log.Warn("list customers for form failed", zap.Error(err))
	}
	data := formData{
		ID:          id,
		Action:      "/bookings/new",
		CustomerID:  formutil.Trimmed(r, "customer_id"),
		Address:     formutil.Trimmed(r, "address"),
		Phone:       formutil.Trimmed(r, "phone"),
		Liters:      formutil.Trimmed(r, "liters"),
		Price:       formutil.Trimmed(r, "price"),
		ScheduledAt: formutil.Trimmed(r, "scheduled_at"),
		Notes:       formutil.Trimmed(r, "notes"),
		Customers:   selectable(customers),
	}
	if id != "" {
		data.Action = "/bookings/" + id + "/edit"
	}
	formutil.SetBase(&data.Base, w, r, title, "/bookings")
	data.SetError(msg)
	h.renderForm(w, r, data)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData) {
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "modal" {
		templates.RenderSnippet(w, "booking_form", data)
		return
	}
	templates.Render(w, r, "booking_form_page", data)
}

// selectable drops blocked customers from the picker.
func selectable(all []models.Customer) []models.Customer {
	out := make([]models.Customer, 0, len(all))
	for _, c := range all {
		if c.Status != models.StatusBlocked {
			out = append(out, c)
		}
	}
	return out
}
