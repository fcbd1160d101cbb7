// internal/app/features/admins/status.go
package admins

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	adminstore "github.com/dalemusser/tankerhub/internal/app/store/admins"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// HandleStatus enables or disables an admin.
//
// Route: POST /admins/{id}/status (status=active|disabled)
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	to := normalize.Status(r.FormValue("status"))
	ret := navigation.SafeBackURL(r, navigation.AdminsBackURL)

	if to != models.StatusActive && to != models.StatusDisabled {
		toast.Error(w, r, "Unknown status.")
		uierrors.Redirect(w, r, ret)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin status")
	defer cancel()

	all, err := h.Admins.List(ctx)
	if err != nil {
		h.ErrLog.Upstream(w, r, "list admins failed", err, "Could not change the admin's status.", ret)
		return
	}
	target, ok := find(all, id)
	if !ok {
		toast.Error(w, r, "Admin not found.")
		uierrors.Redirect(w, r, ret)
		return
	}
	if to == models.StatusDisabled && lastSuperAdmin(all, target) {
		toast.Error(w, r, "There must be at least one active superadmin.")
		uierrors.Redirect(w, r, ret)
		return
	}

	if _, err := h.Admins.SetStatus(ctx, actorID(r), id, to); err != nil {
		if errors.Is(err, adminstore.ErrSelf) {
			toast.Error(w, r, "You can't disable your own account.")
			uierrors.Redirect(w, r, ret)
			return
		}
		h.ErrLog.Upstream(w, r, "set admin status failed", err, "Could not change the admin's status.", ret)
		return
	}
	h.Audit.StatusChanged(ctx, r, audit.EntityAdmin, id, status(target), to)

	if to == models.StatusActive {
		toast.Success(w, r, target.Name+" enabled.")
	} else {
		toast.Success(w, r, target.Name+" disabled.")
	}
	uierrors.Redirect(w, r, ret)
}

// HandleDelete deletes an admin account.
//
// Route: POST /admins/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ret := navigation.SafeBackURL(r, navigation.AdminsBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin delete")
	defer cancel()

	all, err := h.Admins.List(ctx)
	if err != nil {
		h.ErrLog.Upstream(w, r, "list admins failed", err, "Could not delete the admin.", ret)
		return
	}
	target, ok := find(all, id)
	if !ok {
		toast.Error(w, r, "Admin not found.")
		uierrors.Redirect(w, r, ret)
		return
	}
	if lastSuperAdmin(all, target) {
		toast.Error(w, r, "There must be at least one active superadmin.")
		uierrors.Redirect(w, r, ret)
		return
	}

	if err := h.Admins.Delete(ctx, actorID(r), id); err != nil {
		if errors.Is(err, adminstore.ErrSelf) {
			toast.Error(w, r, "You can't delete your own account. Ask another superadmin to remove it.")
			uierrors.Redirect(w, r, ret)
			return
		}
		h.ErrLog.Upstream(w, r, "delete admin failed", err, "Could not delete the admin.", ret)
		return
	}
	h.Audit.EntityDeleted(ctx, r, audit.EntityAdmin, id, target.Email)

	toast.Success(w, r, target.Name+" deleted.")
	uierrors.Redirect(w, r, ret)
}

func find(all []models.Admin, id string) (models.Admin, bool) {
	for _, a := range all {
		if a.ID == id {
			return a, true
		}
	}
	return models.Admin{}, false
}

// lastSuperAdmin reports whether removing target would leave no active
// superadmin.
func lastSuperAdmin(all []models.Admin, target models.Admin) bool {
	return target.Role == models.RoleSuperAdmin && target.IsActive() && activeSuperAdmins(all) <= 1
}

func actorID(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.ID
	}
	return ""
}
