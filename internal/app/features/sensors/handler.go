// internal/app/features/sensors/handler.go
package sensors

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	customerstore "github.com/dalemusser/tankerhub/internal/app/store/customers"
	sensorstore "github.com/dalemusser/tankerhub/internal/app/store/sensors"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/app/system/sensorfeed"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Sensors.
//
// Threshold is the level percent at or below which a tank counts as low.
// Hub is nil when the live feed is disabled.
type Handler struct {
	Sensors   *sensorstore.Store
	Customers *customerstore.Store
	Hub       *sensorfeed.Hub
	Threshold float64
	ErrLog    *uierrors.ErrorLogger
	Audit     *auditlog.Logger
	Log       *zap.Logger
}

// NewHandler constructs a Sensors handler bound to the backend client.
func NewHandler(api *backend.Client, hub *sensorfeed.Hub, threshold float64, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Sensors:   sensorstore.New(api),
		Customers: customerstore.New(api),
		Hub:       hub,
		Threshold: threshold,
		ErrLog:    errLog,
		Audit:     audit,
		Log:       logger,
	}
}
