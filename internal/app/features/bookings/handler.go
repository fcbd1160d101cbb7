// internal/app/features/bookings/handler.go
package bookings

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	bookingstore "github.com/dalemusser/tankerhub/internal/app/store/bookings"
	customerstore "github.com/dalemusser/tankerhub/internal/app/store/customers"
	driverstore "github.com/dalemusser/tankerhub/internal/app/store/drivers"
	tankerstore "github.com/dalemusser/tankerhub/internal/app/store/tankers"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Bookings. Besides the
// booking store it reads customers for the new-booking picker and
// drivers/tankers for assignment.
type Handler struct {
	Bookings  *bookingstore.Store
	Customers *customerstore.Store
	Drivers   *driverstore.Store
	Tankers   *tankerstore.Store
	ErrLog    *uierrors.ErrorLogger
	Audit     *auditlog.Logger
	Log       *zap.Logger
}

// NewHandler constructs a Bookings handler bound to the backend client.
func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Bookings:  bookingstore.New(api),
		Customers: customerstore.New(api),
		Drivers:   driverstore.New(api),
		Tankers:   tankerstore.New(api),
		ErrLog:    errLog,
		Audit:     audit,
		Log:       logger,
	}
}
