// internal/app/features/auditlogs/handler.go
package auditlogs

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	auditlogstore "github.com/dalemusser/tankerhub/internal/app/store/auditlogs"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Handler serves the backend audit trail. It is read-only; the
// dashboard's own events are under features/auditlog.
type Handler struct {
	Logs   *auditlogstore.Store
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Logs:   auditlogstore.New(api),
		ErrLog: errLog,
		Audit:  audit,
		Log:    logger,
	}
}
