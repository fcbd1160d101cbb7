// internal/app/features/tankers/new.go
package tankers

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	tankerstore "github.com/dalemusser/tankerhub/internal/app/store/tankers"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeNew renders the "Add Tanker" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Action: "/tankers/new", Status: models.TankerActive, Statuses: models.TankerStatuses}
	formutil.SetBase(&data.Base, w, r, "Add Tanker", "/tankers")
	h.renderForm(w, r, data)
}

// HandleCreate processes the Add Tanker form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/tankers")
		return
	}

	data := formFromRequest(r)
	data.Action = "/tankers/new"
	in, msg := validate(r)
	if msg != "" {
		formutil.SetBase(&data.Base, w, r, "Add Tanker", "/tankers")
		data.SetError(msg)
		h.renderForm(w, r, data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "tanker create")
	defer cancel()

	created, err := h.Tankers.Create(ctx, in)
	if err != nil {
		h.ErrLog.Upstream(w, r, "create tanker failed", err, "Could not add the tanker.", "/tankers")
		return
	}
	h.Audit.EntityCreated(ctx, r, audit.EntityTanker, created.ID, in.PlateNumber)

	toast.Success(w, r, "Tanker "+in.PlateNumber+" added.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.TankersBackURL))
}

// formFromRequest echoes the submitted values back into the form.
func formFromRequest(r *http.Request) formData {
	return formData{
		PlateNumber: formutil.Trimmed(r, "plate_number"),
		Capacity:    formutil.Trimmed(r, "capacity"),
		Model:       formutil.Trimmed(r, "model"),
		Status:      formutil.Trimmed(r, "status"),
		Statuses:    models.TankerStatuses,
	}
}

// validate builds the backend input, or returns the first validation
// message.
func validate(r *http.Request) (tankerstore.Input, string) {
	v := tankerInput{
		PlateNumber: formutil.Trimmed(r, "plate_number"),
		Capacity:    formutil.Int(r, "capacity"),
		Model:       formutil.Trimmed(r, "model"),
		Status:      formutil.Trimmed(r, "status"),
	}
	if res := inputval.Validate(v); res.HasErrors() {
		return tankerstore.Input{}, res.First()
	}
	return tankerstore.Input{
		PlateNumber:    v.PlateNumber,
		CapacityLiters: v.Capacity,
		Model:          v.Model,
		Status:         v.Status,
	}, ""
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData) {
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "modal" {
		templates.RenderSnippet(w, "tanker_form", data)
		return
	}
	templates.Render(w, r, "tanker_form_page", data)
}
