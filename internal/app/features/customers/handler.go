// internal/app/features/customers/handler.go
package customers

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	bookingstore "github.com/dalemusser/tankerhub/internal/app/store/bookings"
	customerstore "github.com/dalemusser/tankerhub/internal/app/store/customers"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Customers.
type Handler struct {
	Customers *customerstore.Store
	Bookings  *bookingstore.Store
	ErrLog    *uierrors.ErrorLogger
	Audit     *auditlog.Logger
	Log       *zap.Logger
}

// NewHandler constructs a Customers handler bound to the backend client.
func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Customers: customerstore.New(api),
		Bookings:  bookingstore.New(api),
		ErrLog:    errLog,
		Audit:     audit,
		Log:       logger,
	}
}
