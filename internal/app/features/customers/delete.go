// internal/app/features/customers/delete.go
package customers

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5"
)

// HandleDelete deletes a customer account.
//
// Route: POST /customers/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ret := navigation.SafeBackURL(r, navigation.CustomersBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "customer delete")
	defer cancel()

	if err := h.Customers.Delete(ctx, id); err != nil {
		h.ErrLog.Upstream(w, r, "delete customer failed", err, "Could not delete the customer.", ret)
		return
	}
	h.Audit.EntityDeleted(ctx, r, audit.EntityCustomer, id, r.FormValue("label"))

	toast.Success(w, r, "Customer deleted.")
	uierrors.Redirect(w, r, ret)
}
