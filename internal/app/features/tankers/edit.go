// internal/app/features/tankers/edit.go
package tankers

import (
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the Edit Tanker form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "tanker get")
	defer cancel()

	t, err := h.Tankers.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get tanker failed", err, "Unable to load the tanker.", "/tankers")
		return
	}

	data := formData{
		ID:          t.ID,
		Action:      "/tankers/" + t.ID + "/edit",
		PlateNumber: t.PlateNumber,
		Capacity:    strconv.Itoa(t.CapacityLiters),
		Model:       t.Model,
		Status:      t.Status,
		Statuses:    models.TankerStatuses,
	}
	formutil.SetBase(&data.Base, w, r, "Edit Tanker", "/tankers")
	h.renderForm(w, r, data)
}

// HandleEdit processes the Edit Tanker form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/tankers")
		return
	}

	in, msg := validate(r)
	if msg != "" {
		data := formFromRequest(r)
		data.ID = id
		data.Action = "/tankers/" + id + "/edit"
		formutil.SetBase(&data.Base, w, r, "Edit Tanker", "/tankers")
		data.SetError(msg)
		h.renderForm(w, r, data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "tanker update")
	defer cancel()

	if _, err := h.Tankers.Update(ctx, id, in); err != nil {
		h.ErrLog.Upstream(w, r, "update tanker failed", err, "Could not save the tanker.", "/tankers")
		return
	}
	h.Audit.EntityUpdated(ctx, r, audit.EntityTanker, id, in.PlateNumber)

	toast.Success(w, r, "Tanker "+in.PlateNumber+" updated.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.TankersBackURL))
}
