// internal/app/features/complaints/handler.go
package complaints

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	complaintstore "github.com/dalemusser/tankerhub/internal/app/store/complaints"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Complaints.
type Handler struct {
	Complaints *complaintstore.Store
	ErrLog     *uierrors.ErrorLogger
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a Complaints handler bound to the backend client.
func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Complaints: complaintstore.New(api),
		ErrLog:     errLog,
		Audit:      audit,
		Log:        logger,
	}
}
