// internal/app/features/drivers/form.go
package drivers

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	driverstore "github.com/dalemusser/tankerhub/internal/app/store/drivers"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeNew renders the "Add Driver" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Action: "/drivers/new", Available: true}
	formutil.SetBase(&data.Base, w, r, "Add Driver", "/drivers")
	h.renderForm(w, r, data)
}

// HandleCreate processes the Add Driver form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/drivers")
		return
	}

	in, msg := readForm(r)
	if msg != "" {
		h.rerender(w, r, "", "Add Driver", in, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "driver create")
	defer cancel()

	created, err := h.Drivers.Create(ctx, in)
	if err != nil {
		h.ErrLog.Upstream(w, r, "create driver failed", err, "Could not add the driver.", "/drivers")
		return
	}
	h.Audit.EntityCreated(ctx, r, audit.EntityDriver, created.ID, in.Name)

	toast.Success(w, r, in.Name+" added.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.DriversBackURL))
}

// ServeEdit renders the Edit Driver form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "driver get")
	defer cancel()

	d, err := h.Drivers.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get driver failed", err, "Unable to load the driver.", "/drivers")
		return
	}

	data := formData{
		ID:            d.ID,
		Action:        "/drivers/" + d.ID + "/edit",
		Name:          d.Name,
		Phone:         d.Phone,
		Email:         d.Email,
		LicenseNumber: d.LicenseNumber,
		Available:     d.Available,
	}
	formutil.SetBase(&data.Base, w, r, "Edit Driver", "/drivers")
	h.renderForm(w, r, data)
}

// HandleEdit processes the Edit Driver form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/drivers")
		return
	}

	in, msg := readForm(r)
	if msg != "" {
		h.rerender(w, r, id, "Edit Driver", in, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "driver update")
	defer cancel()

	if _, err := h.Drivers.Update(ctx, id, in); err != nil {
		h.ErrLog.Upstream(w, r, "update driver failed", err, "Could not save the driver.", "/drivers")
		return
	}
	h.Audit.EntityUpdated(ctx, r, audit.EntityDriver, id, in.Name)

	toast.Success(w, r, in.Name+" updated.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.DriversBackURL))
}

func readForm(r *http.Request) (driverstore.Input, string) {
	in := driverstore.Input{
		Name:          normalize.Name(r.FormValue("name")),
		Phone:         normalize.Phone(r.FormValue("phone")),
		Email:         normalize.Email(r.FormValue("email")),
		LicenseNumber: formutil.Trimmed(r, "license_number"),
		Available:     formutil.Bool(r, "available"),
	}
	res := inputval.Validate(driverInput{
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		LicenseNumber: in.LicenseNumber,
	})
	return in, res.First()
}

func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, id, title string, in driverstore.Input, msg string) {
	data := formData{
		ID:            id,
		Action:        "/drivers/new",
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		LicenseNumber: in.LicenseNumber,
		Available:     in.Available,
	}
	if id != "" {
		data.Action = "/drivers/" + id + "/edit"
	}
	formutil.SetBase(&data.Base, w, r, title, "/drivers")
	data.SetError(msg)
	h.renderForm(w, r, data)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData) {
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "modal" {
		templates.RenderSnippet(w, "driver_form", data)
		return
	}
	templates.Render(w, r, "driver_form_page", data)
}
