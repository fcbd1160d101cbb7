// internal/app/features/notifications/handler.go
package notifications

import (
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	customerstore "github.com/dalemusser/tankerhub/internal/app/store/customers"
	notificationstore "github.com/dalemusser/tankerhub/internal/app/store/notifications"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Notifications.
type Handler struct {
	Notifications *notificationstore.Store
	Customers     *customerstore.Store
	ErrLog        *uierrors.ErrorLogger
	Audit         *auditlog.Logger
	Log           *zap.Logger
}

// NewHandler constructs a Notifications handler bound to the backend client.
func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Notifications: notificationstore.New(api),
		Customers:     customerstore.New(api),
		ErrLog:        errLog,
		Audit:         audit,
		Log:           logger,
	}
}
