// internal/app/features/customers/status.go
package customers

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// HandleStatus blocks or unblocks a customer.
//
// Route: POST /customers/{id}/status (status=active|blocked)
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status := normalize.Status(r.FormValue("status"))
	ret := navigation.SafeBackURL(r, navigation.CustomersBackURL)

	if status != models.StatusActive && status != models.StatusBlocked {
		toast.Error(w, r, "Unknown customer status.")
		uierrors.Redirect(w, r, ret)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "customer status")
	defer cancel()

	if _, err := h.Customers.SetStatus(ctx, id, status); err != nil {
		h.ErrLog.Upstream(w, r, "set customer status failed", err, "Could not change the customer status.", ret)
		return
	}
	from := models.StatusActive
	if status == models.StatusActive {
		from = models.StatusBlocked
	}
	h.Audit.StatusChanged(ctx, r, audit.EntityCustomer, id, from, status)

	if status == models.StatusBlocked {
		toast.Info(w, r, "Customer blocked.")
	} else {
		toast.Success(w, r, "Customer unblocked.")
	}
	uierrors.Redirect(w, r, ret)
}
