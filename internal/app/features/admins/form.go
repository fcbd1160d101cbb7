// internal/app/features/admins/form.go
package admins

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	adminstore "github.com/dalemusser/tankerhub/internal/app/store/admins"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/authz"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeNew renders the "Add Admin" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Action: "/admins/new", Role: models.RoleAdmin}
	formutil.SetBase(&data.Base, w, r, "Add Admin", "/admins")
	h.renderForm(w, r, data)
}

// HandleCreate processes the Add Admin form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/admins")
		return
	}

	in := readForm(r)
	msg := validate(in)
	if msg == "" && in.Password == "" {
		msg = "Password is required."
	}
	if msg != "" {
		h.rerender(w, r, "", "Add Admin", in, false, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin create")
	defer cancel()

	created, err := h.Admins.Create(ctx, in)
	if err != nil {
		h.ErrLog.Upstream(w, r, "create admin failed", err, "Could not add the admin.", "/admins")
		return
	}
	h.Audit.EntityCreated(ctx, r, audit.EntityAdmin, created.ID, in.Email)

	toast.Success(w, r, in.Name+" added.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.AdminsBackURL))
}

// ServeEdit renders the Edit Admin form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin get")
	defer cancel()

	a, err := h.Admins.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get admin failed", err, "Unable to load the admin.", "/admins")
		return
	}

	data := formData{
		ID:     a.ID,
		Action: "/admins/" + a.ID + "/edit",
		Name:   a.Name,
		Email:  a.Email,
		Phone:  a.Phone,
		Role:   a.Role,
		IsSelf: authz.IsSelf(r, a.ID),
	}
	formutil.SetBase(&data.Base, w, r, "Edit Admin", "/admins")
	h.renderForm(w, r, data)
}

// HandleEdit processes the Edit Admin form submission. A blank password
// keeps the current one. Superadmins cannot change their own role.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/admins")
		return
	}

	self := authz.IsSelf(r, id)
	in := readForm(r)
	if self {
		in.Role = models.RoleSuperAdmin
	}
	if msg := validate(in); msg != "" {
		h.rerender(w, r, id, "Edit Admin", in, self, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin update")
	defer cancel()

	if _, err := h.Admins.Update(ctx, id, in); err != nil {
		h.ErrLog.Upstream(w, r, "update admin failed", err, "Could not save the admin.", "/admins")
		return
	}
	h.Audit.EntityUpdated(ctx, r, audit.EntityAdmin, id, in.Email)

	toast.Success(w, r, in.Name+" updated.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.AdminsBackURL))
}

func readForm(r *http.Request) adminstore.Input {
	return adminstore.Input{
		Name:     normalize.Name(r.FormValue("name")),
		Email:    normalize.Email(r.FormValue("email")),
		Phone:    normalize.Phone(r.FormValue("phone")),
		Password: r.FormValue("password"),
		Role:     normalize.Role(r.FormValue("role")),
	}
}

func validate(in adminstore.Input) string {
	return inputval.Validate(adminInput(in)).First()
}

func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, id, title string, in adminstore.Input, self bool, msg string) {
	data := formData{
		ID:     id,
		Action: "/admins/new",
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Role:   in.Role,
		IsSelf: self,
	}
	if id != "" {
		data.Action = "/admins/" + id + "/edit"
	}
	formutil.SetBase(&data.Base, w, r, title, "/admins")
	data.SetError(msg)
	h.renderForm(w, r, data)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData) {
	data.Roles = roles
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "modal" {
		templates.RenderSnippet(w, "admin_form", data)
		return
	}
	templates.Render(w, r, "admin_form_page", data)
}
