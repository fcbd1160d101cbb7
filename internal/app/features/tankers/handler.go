// internal/app/features/tankers/handler.go
package tankers

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	tankerstore "github.com/dalemusser/tankerhub/internal/app/store/tankers"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Tankers.
type Handler struct {
	Tankers *tankerstore.Store
	ErrLog  *uierrors.ErrorLogger
	Audit   *auditlog.Logger
	Log     *zap.Logger
}

// NewHandler constructs a Tankers handler bound to the backend client.
func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Tankers: tankerstore.New(api),
		ErrLog:  errLog,
		Audit:   audit,
		Log:     logger,
	}
}
