// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Destination settings for a category.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off" // disabled
)

// ValidSetting reports whether s is one of all, db, log, off.
func ValidSetting(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case All, DB, Log, Off:
		return true
	}
	return false
}

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for sign-in and sign-out events.
	Auth string
	// Admin controls logging for changes made through the dashboard.
	Admin string
}

// Counter receives one call per event that is not switched off.
type Counter interface {
	CountAudit(category, event string)
}

// Logger provides convenience methods for logging audit events.
// It logs to MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store   *audit.Store
	zapLog  *zap.Logger
	config  Config
	counter Counter
}

// New creates a new audit Logger. store may be nil, in which case "db"
// destinations are ignored.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// WithCounter attaches a metrics counter and returns l.
func (l *Logger) WithCounter(c Counter) *Logger {
	if l != nil {
		l.counter = c
	}
	return l
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.ActorEmail != "" {
		fields = append(fields, zap.String("actor_email", event.ActorEmail))
	}
	if event.Entity != "" {
		fields = append(fields, zap.String("entity", event.Entity), zap.String("entity_id", event.EntityID))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func (l *Logger) setting(category string) string {
	var s string
	switch category {
	case audit.CategoryAuth:
		s = l.config.Auth
	case audit.CategoryAdmin:
		s = l.config.Admin
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return All
	}
	return s
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := l.setting(event.Category)
	if setting == Off {
		return
	}
	if l.counter != nil {
		l.counter.CountAudit(event.Category, event.EventType)
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}

	if (setting == All || setting == DB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// base fills request context and, when a user is signed in, the actor.
func base(r *http.Request, category, eventType string) audit.Event {
	ev := audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		RequestID: middleware.GetReqID(r.Context()),
		Success:   true,
	}
	if u, ok := auth.CurrentUser(r); ok {
		ev.ActorID = u.ID
		ev.ActorEmail = u.Email
		ev.ActorRole = u.Role
	}
	return ev
}

// --- Authentication Events ---

// LoginSuccess logs a successful sign-in of u.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, u auth.SessionUser) {
	ev := base(r, audit.CategoryAuth, audit.EventLoginSuccess)
	ev.ActorID, ev.ActorEmail, ev.ActorRole = u.ID, u.Email, u.Role
	ev.Details = map[string]string{"session_id": u.ActivityID}
	l.Log(ctx, ev)
}

// LoginFailed logs a sign-in the backend refused.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, role, reason string) {
	ev := base(r, audit.CategoryAuth, audit.EventLoginFailed)
	ev.ActorEmail, ev.ActorRole = email, role
	ev.Success = false
	ev.FailureReason = reason
	l.Log(ctx, ev)
}

// LoginFailedDisabled logs a sign-in refused because the account is disabled.
func (l *Logger) LoginFailedDisabled(ctx context.Context, r *http.Request, email, role string) {
	ev := base(r, audit.CategoryAuth, audit.EventLoginFailedDisabled)
	ev.ActorEmail, ev.ActorRole = email, role
	ev.Success = false
	ev.FailureReason = "account disabled"
	l.Log(ctx, ev)
}

// LoginFailedUnreachable logs a sign-in that could not reach the backend.
func (l *Logger) LoginFailedUnreachable(ctx context.Context, r *http.Request, email, role string) {
	ev := base(r, audit.CategoryAuth, audit.EventLoginFailedUnreachable)
	ev.ActorEmail, ev.ActorRole = email, role
	ev.Success = false
	ev.FailureReason = "backend unreachable"
	l.Log(ctx, ev)
}

// Logout logs a sign-out by the current user.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	l.Log(ctx, base(r, audit.CategoryAuth, audit.EventLogout))
}

// SessionRejected logs a request whose token the backend refused.
func (l *Logger) SessionRejected(ctx context.Context, r *http.Request) {
	ev := base(r, audit.CategoryAuth, audit.EventSessionRejected)
	ev.Success = false
	ev.FailureReason = "token rejected by backend"
	ev.Details = map[string]string{"path": r.URL.Path}
	l.Log(ctx, ev)
}

// --- Admin Events ---

func (l *Logger) entity(ctx context.Context, r *http.Request, eventType, entity, id string, details map[string]string) {
	ev := base(r, audit.CategoryAdmin, eventType)
	ev.Entity = entity
	ev.EntityID = id
	ev.Details = details
	l.Log(ctx, ev)
}

// EntityCreated logs a record created through the dashboard. label is a
// human handle such as a plate number or email.
func (l *Logger) EntityCreated(ctx context.Context, r *http.Request, entity, id, label string) {
	l.entity(ctx, r, audit.EventEntityCreated, entity, id, labelDetails(label))
}

// EntityUpdated logs an edit.
func (l *Logger) EntityUpdated(ctx context.Context, r *http.Request, entity, id, label string) {
	l.entity(ctx, r, audit.EventEntityUpdated, entity, id, labelDetails(label))
}

// EntityDeleted logs a deletion.
func (l *Logger) EntityDeleted(ctx context.Context, r *http.Request, entity, id, label string) {
	l.entity(ctx, r, audit.EventEntityDeleted, entity, id, labelDetails(label))
}

// StatusChanged logs a status transition.
func (l *Logger) StatusChanged(ctx context.Context, r *http.Request, entity, id, from, to string) {
	l.entity(ctx, r, audit.EventEntityStatusChanged, entity, id, map[string]string{
		"from": from,
		"to":   to,
	})
}

// BookingAssigned logs a driver and tanker assignment.
func (l *Logger) BookingAssigned(ctx context.Context, r *http.Request, bookingID, driverID, tankerID string) {
	l.entity(ctx, r, audit.EventBookingAssigned, audit.EntityBooking, bookingID, map[string]string{
		"driver_id": driverID,
		"tanker_id": tankerID,
	})
}

// DriverAvailability logs an availability toggle.
func (l *Logger) DriverAvailability(ctx context.Context, r *http.Request, driverID string, available bool) {
	l.entity(ctx, r, audit.EventDriverAvailability, audit.EntityDriver, driverID, map[string]string{
		"available": strconv.FormatBool(available),
	})
}

// NotificationSent logs a notification broadcast.
func (l *Logger) NotificationSent(ctx context.Context, r *http.Request, id, audience, title string) {
	l.entity(ctx, r, audit.EventNotificationSent, audit.EntityNotification, id, map[string]string{
		"audience": audience,
		"title":    title,
	})
}

// ReportGenerated logs a report download.
func (l *Logger) ReportGenerated(ctx context.Context, r *http.Request, format string, sections []string) {
	l.entity(ctx, r, audit.EventReportGenerated, audit.EntityReport, "", map[string]string{
		"format":   format,
		"sections": strings.Join(sections, ","),
	})
}

// AuditExported logs a CSV export of the backend audit trail.
func (l *Logger) AuditExported(ctx context.Context, r *http.Request, rows int) {
	ev := base(r, audit.CategoryAdmin, audit.EventAuditExported)
	ev.Details = map[string]string{"rows": strconv.Itoa(rows)}
	l.Log(ctx, ev)
}

func labelDetails(label string) map[string]string {
	if label == "" {
		return nil
	}
	return map[string]string{"label": label}
}
