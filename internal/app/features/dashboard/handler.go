// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"time"

	// Registers the dashboard templates.
	_ "github.com/dalemusser/tankerhub/internal/app/features/dashboard/views"
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/activity"
	bookingstore "github.com/dalemusser/tankerhub/internal/app/store/bookings"
	complaintstore "github.com/dalemusser/tankerhub/internal/app/store/complaints"
	customerstore "github.com/dalemusser/tankerhub/internal/app/store/customers"
	driverstore "github.com/dalemusser/tankerhub/internal/app/store/drivers"
	sensorstore "github.com/dalemusser/tankerhub/internal/app/store/sensors"
	tankerstore "github.com/dalemusser/tankerhub/internal/app/store/tankers"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/app/system/reportgen"
	"go.uber.org/zap"
)

// OnlineLister reports dashboard sessions active since a point in time.
type OnlineLister interface {
	Online(ctx context.Context, since time.Time) ([]activity.Session, error)
}

// onlineWindow is how recently a session must have been active to count
// as online.
const onlineWindow = 5 * time.Minute

type Handler struct {
	Customers  *customerstore.Store
	Drivers    *driverstore.Store
	Tankers    *tankerstore.Store
	Bookings   *bookingstore.Store
	Complaints *complaintstore.Store
	Sensors    *sensorstore.Store

	Online    OnlineLister // optional; superadmin panel
	Threshold float64
	Fmt       reportgen.Formatter

	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(api *backend.Client, online OnlineLister, threshold float64, currency string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Customers:  customerstore.New(api),
		Drivers:    driverstore.New(api),
		Tankers:    tankerstore.New(api),
		Bookings:   bookingstore.New(api),
		Complaints: complaintstore.New(api),
		Sensors:    sensorstore.New(api),
		Online:     online,
		Threshold:  threshold,
		Fmt:        reportgen.NewFormatter(currency),
		ErrLog:     errLog,
		Log:        logger,
	}
}
