// internal/app/features/errors/logger.go
package errors

import (
	"errors"
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SignOuter clears the dashboard credentials.
type SignOuter interface {
	SignOut(w http.ResponseWriter, r *http.Request)
}

// ErrorLogger centralises how handlers log and surface failures. A 401
// from the backend always ends the session.
type ErrorLogger struct {
	log     *zap.Logger
	session SignOuter
	audit   *auditlog.Logger
}

// NewErrorLogger builds an ErrorLogger. session and audit may be nil.
func NewErrorLogger(logger *zap.Logger, session SignOuter, audit *auditlog.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{log: logger, session: session, audit: audit}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("upstream_status", backend.StatusOf(err)),
	}
}

// SessionExpired signs the user out and sends them to the login page.
func (e *ErrorLogger) SessionExpired(w http.ResponseWriter, r *http.Request) {
	e.audit.SessionRejected(r.Context(), r)
	if e.session != nil {
		e.session.SignOut(w, r)
	}
	e.log.Info("backend rejected token; signed out",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())))

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LogServerError handles a failed page load: 401 ends the session,
// anything else is logged and rendered as an error page. Unreachable
// backends answer 502, other failures 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	if backend.IsUnauthorized(err) {
		e.SessionExpired(w, r)
		return
	}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, backend.ErrUnavailable):
		status = http.StatusBadGateway
		userMsg = "The TankerHub service is not reachable right now. Please try again shortly."
	case backend.IsNotFound(err):
		status = http.StatusNotFound
		userMsg = backend.UserMessage(err, userMsg)
	case backend.IsForbidden(err):
		status = http.StatusForbidden
		userMsg = backend.UserMessage(err, userMsg)
	}
	if status >= 500 {
		e.log.Error(msg, e.fields(r, err)...)
	} else {
		e.log.Warn(msg, e.fields(r, err)...)
	}
	RenderPage(w, r, status, http.StatusText(status), userMsg, backURL)
}

// LogBadRequest logs a malformed request and answers 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, e.fields(r, err)...)
	RenderPage(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

// Upstream handles a failed mutation: 401 ends the session; otherwise
// a toast carries the backend's wording for validation, conflict,
// not-found and forbidden replies, or fallback for anything else, and
// the browser is sent to backURL.
func (e *ErrorLogger) Upstream(w http.ResponseWriter, r *http.Request, msg string, err error, fallback, backURL string) {
	if backend.IsUnauthorized(err) {
		e.SessionExpired(w, r)
		return
	}
	if errors.Is(err, backend.ErrUnavailable) {
		fallback = "The TankerHub service is not reachable right now. Please try again shortly."
	}
	userMsg := backend.UserMessage(err, fallback)
	if userMsg == fallback {
		e.log.Error(msg, e.fields(r, err)...)
	} else {
		e.log.Info(msg, e.fields(r, err)...)
	}
	toast.Error(w, r, userMsg)
	Redirect(w, r, backURL)
}

// Toast logs err and queues an error toast without responding, for
// pages that can still render with partial data. It returns false when
// the backend rejected the token; the response has then been written.
func (e *ErrorLogger) Toast(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) bool {
	if backend.IsUnauthorized(err) {
		e.SessionExpired(w, r)
		return false
	}
	e.log.Warn(msg, e.fields(r, err)...)
	toast.Error(w, r, userMsg)
	return true
}

// Redirect sends a 303, or HX-Redirect for HTMX requests.
func Redirect(w http.ResponseWriter, r *http.Request, to string) {
	if to == "" {
		to = "/dashboard"
	}
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
