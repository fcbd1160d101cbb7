// internal/app/features/customers/edit.go
package customers

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	customerstore "github.com/dalemusser/tankerhub/internal/app/store/customers"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the Edit Customer form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "customer get")
	defer cancel()

	c, err := h.Customers.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get customer failed", err, "Unable to load the customer.", "/customers")
		return
	}

	data := editData{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address, City: c.City}
	formutil.SetBase(&data.Base, w, r, "Edit Customer", "/customers/"+id)
	h.renderForm(w, r, data)
}

// HandleEdit processes the Edit Customer form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/customers")
		return
	}

	in := customerstore.Input{
		Name:    normalize.Name(r.FormValue("name")),
		Email:   normalize.Email(r.FormValue("email")),
		Phone:   normalize.Phone(r.FormValue("phone")),
		Address: formutil.Trimmed(r, "address"),
		City:    formutil.Trimmed(r, "city"),
	}
	if res := inputval.Validate(customerInput(in)); res.HasErrors() {
		data := editData{ID: id, Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address, City: in.City}
		formutil.SetBase(&data.Base, w, r, "Edit Customer", "/customers/"+id)
		data.SetError(res.First())
		h.renderForm(w, r, data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "customer update")
	defer cancel()

	if _, err := h.Customers.Update(ctx, id, in); err != nil {
		h.ErrLog.Upstream(w, r, "update customer failed", err, "Could not save the customer.", "/customers/"+id)
		return
	}
	h.Audit.EntityUpdated(ctx, r, audit.EntityCustomer, id, in.Email)

	toast.Success(w, r, in.Name+" updated.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.CustomersBackURL))
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data editData) {
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "modal" {
		templates.RenderSnippet(w, "customer_form", data)
		return
	}
	templates.Render(w, r, "customer_form_page", data)
}
