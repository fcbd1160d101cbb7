// internal/app/features/admins/handler.go
package admins

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	adminstore "github.com/dalemusser/tankerhub/internal/app/store/admins"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for admin management. Only
// superadmins reach it.
type Handler struct {
	Admins *adminstore.Store
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

// NewHandler constructs an Admins handler bound to the backend client.
func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Admins: adminstore.New(api),
		ErrLog: errLog,
		Audit:  audit,
		Log:    logger,
	}
}
