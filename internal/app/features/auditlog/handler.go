// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"go.uber.org/zap"
)

// EventQuerier reads dashboard audit events.
type EventQuerier interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, filter audit.QueryFilter) (int64, error)
}

// Handler serves the dashboard's own audit log: sign-ins, sign-outs and
// the changes admins made through the dashboard.
type Handler struct {
	Events EventQuerier
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(events EventQuerier, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Events: events,
		ErrLog: errLog,
		Log:    logger,
	}
}
