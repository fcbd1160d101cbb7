// internal/app/features/reports/handler.go
package reports

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	bookingstore "github.com/dalemusser/tankerhub/internal/app/store/bookings"
	complaintstore "github.com/dalemusser/tankerhub/internal/app/store/complaints"
	customerstore "github.com/dalemusser/tankerhub/internal/app/store/customers"
	driverstore "github.com/dalemusser/tankerhub/internal/app/store/drivers"
	sensorstore "github.com/dalemusser/tankerhub/internal/app/store/sensors"
	tankerstore "github.com/dalemusser/tankerhub/internal/app/store/tankers"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Options carries the report branding and thresholds from configuration.
type Options struct {
	Company   string
	Currency  string
	Threshold float64
}

// Handler owns the report form and the PDF/XLSX/CSV downloads.
//
// It follows the same pattern as other features: a thin struct wrapping
// the entity stores and logger, constructed once at startup in bootstrap
// and passed into Routes().
type Handler struct {
	Customers  *customerstore.Store
	Drivers    *driverstore.Store
	Tankers    *tankerstore.Store
	Bookings   *bookingstore.Store
	Complaints *complaintstore.Store
	Sensors    *sensorstore.Store

	Opts Options

	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
}

// NewHandler constructs a reports Handler bound to the backend client.
func NewHandler(api *backend.Client, opts Options, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	if opts.Company == "" {
		opts.Company = "TankerHub"
	}
	return &Handler{
		Customers:  customerstore.New(api),
		Drivers:    driverstore.New(api),
		Tankers:    tankerstore.New(api),
		Bookings:   bookingstore.New(api),
		Complaints: complaintstore.New(api),
		Sensors:    sensorstore.New(api),
		Opts:       opts,
		Log:        logger,
		ErrLog:     errLog,
		Audit:      audit,
	}
}
