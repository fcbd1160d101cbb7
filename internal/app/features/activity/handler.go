// internal/app/features/activity/handler.go
package activity

import (
	"context"
	"time"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	activitystore "github.com/dalemusser/tankerhub/internal/app/store/activity"
	"go.uber.org/zap"
)

// SessionReader reads admin dashboard sessions.
type SessionReader interface {
	Online(ctx context.Context, since time.Time) ([]activitystore.Session, error)
	History(ctx context.Context, adminID string, limit int64) ([]activitystore.Session, error)
}

// Handler serves the superadmin view of who is signed in to the
// dashboard and each admin's session history.
type Handler struct {
	Sessions  SessionReader
	IdleAfter time.Duration // sessions quiet for longer are shown as idle
	Window    time.Duration // sessions quiet for longer are not listed
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger

	now func() time.Time
}

// NewHandler lists sessions active within window. A non-positive window
// falls back to 30 minutes.
func NewHandler(sessions SessionReader, window time.Duration, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if window <= 0 {
		window = 30 * time.Minute
	}
	return &Handler{
		Sessions:  sessions,
		IdleAfter: 5 * time.Minute,
		Window:    window,
		ErrLog:    errLog,
		Log:       logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
