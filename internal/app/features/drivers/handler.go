// internal/app/features/drivers/handler.go
package drivers

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	driverstore "github.com/dalemusser/tankerhub/internal/app/store/drivers"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Drivers.
type Handler struct {
	Drivers *driverstore.Store
	ErrLog  *uierrors.ErrorLogger
	Audit   *auditlog.Logger
	Log     *zap.Logger
}

// NewHandler constructs a Drivers handler bound to the backend client.
func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Drivers: driverstore.New(api),
		ErrLog:  errLog,
		Audit:   audit,
		Log:     logger,
	}
}
