// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	activityfeature "github.com/dalemusser/tankerhub/internal/app/features/activity"
	adminsfeature "github.com/dalemusser/tankerhub/internal/app/features/admins"
	auditlogfeature "github.com/dalemusser/tankerhub/internal/app/features/auditlog"
	auditlogsfeature "github.com/dalemusser/tankerhub/internal/app/features/auditlogs"
	bookingsfeature "github.com/dalemusser/tankerhub/internal/app/features/bookings"
	complaintsfeature "github.com/dalemusser/tankerhub/internal/app/features/complaints"
	customersfeature "github.com/dalemusser/tankerhub/internal/app/features/customers"
	dashboardfeature "github.com/dalemusser/tankerhub/internal/app/features/dashboard"
	driversfeature "github.com/dalemusser/tankerhub/internal/app/features/drivers"
	errorsfeature "github.com/dalemusser/tankerhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/tankerhub/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/tankerhub/internal/app/features/heartbeat"
	loginfeature "github.com/dalemusser/tankerhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/tankerhub/internal/app/features/logout"
	notificationsfeature "github.com/dalemusser/tankerhub/internal/app/features/notifications"
	reportsfeature "github.com/dalemusser/tankerhub/internal/app/features/reports"
	sensorsfeature "github.com/dalemusser/tankerhub/internal/app/features/sensors"
	_ "github.com/dalemusser/tankerhub/internal/app/features/shared/views"
	tankersfeature "github.com/dalemusser/tankerhub/internal/app/features/tankers"
	activitystore "github.com/dalemusser/tankerhub/internal/app/store/activity"
	auditstore "github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// TankerHub boots the template engine, installs the request middleware
// (request IDs, metrics, CSRF, session user, activity tracking) and mounts
// one feature router per dashboard page.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	toast.Use(sessionMgr)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Dashboard-local state
	events := auditstore.New(deps.MongoDatabase)
	sessions := activitystore.New(deps.MongoDatabase)
	auditLogger := auditlog.New(events, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	}).WithCounter(deps.Metrics)

	errLog := errorsfeature.NewErrorLogger(logger, sessionMgr, auditLogger)
	heartbeatHandler := heartbeatfeature.NewHandler(sessions, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(deps.Metrics.Middleware)
	if !secure {
		// gorilla/csrf assumes TLS; dev and test servers speak plain HTTP.
		r.Use(plaintext)
	}
	r.Use(csrf.Protect(csrfKey(appCfg),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(csrfFailure(logger)),
	))

	// Global auth middleware: loads SessionUser into context if a token
	// cookie is present.
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(heartbeatHandler.Track)

	// Operations
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", deps.Metrics.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.API, sessionMgr, sessions, errLog, auditLogger, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, sessions, auditLogger, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	r.Mount("/api/heartbeat", heartbeatfeature.Routes(heartbeatHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	// Overview
	dashboardHandler := dashboardfeature.NewHandler(deps.API, sessions, appCfg.SensorLowLevelPercent, appCfg.ReportCurrency, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Backend entities
	customersHandler := customersfeature.NewHandler(deps.API, errLog, auditLogger, logger)
	r.Mount("/customers", customersfeature.Routes(customersHandler, sessionMgr))

	driversHandler := driversfeature.NewHandler(deps.API, errLog, auditLogger, logger)
	r.Mount("/drivers", driversfeature.Routes(driversHandler, sessionMgr))

	tankersHandler := tankersfeature.NewHandler(deps.API, errLog, auditLogger, logger)
	r.Mount("/tankers", tankersfeature.Routes(tankersHandler, sessionMgr))

	bookingsHandler := bookingsfeature.NewHandler(deps.API, errLog, auditLogger, logger)
	r.Mount("/bookings", bookingsfeature.Routes(bookingsHandler, sessionMgr))

	sensorsHandler := sensorsfeature.NewHandler(deps.API, deps.Feed, appCfg.SensorLowLevelPercent, errLog, auditLogger, logger)
	r.Mount("/sensors", sensorsfeature.Routes(sensorsHandler, sessionMgr))

	notificationsHandler := notificationsfeature.NewHandler(deps.API, errLog, auditLogger, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, sessionMgr))

	complaintsHandler := complaintsfeature.NewHandler(deps.API, errLog, auditLogger, logger)
	r.Mount("/complaints", complaintsfeature.Routes(complaintsHandler, sessionMgr))

	auditLogsHandler := auditlogsfeature.NewHandler(deps.API, errLog, auditLogger, logger)
	r.Mount("/audit-logs", auditlogsfeature.Routes(auditLogsHandler, sessionMgr))

	// Reports
	reportsHandler := reportsfeature.NewHandler(deps.API, reportsfeature.Options{
		Company:   appCfg.ReportCompanyName,
		Currency:  appCfg.ReportCurrency,
		Threshold: appCfg.SensorLowLevelPercent,
	}, errLog, auditLogger, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	// Superadmin
	adminsHandler := adminsfeature.NewHandler(deps.API, errLog, auditLogger, logger)
	r.Mount("/admins", adminsfeature.Routes(adminsHandler, sessionMgr))

	activityHandler := activityfeature.NewHandler(sessions, appCfg.SessionIdleTimeout, errLog, logger)
	r.Mount("/activity", activityfeature.Routes(activityHandler, sessionMgr))

	auditHandler := auditlogfeature.NewHandler(events, errLog, logger)
	r.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

	return r, nil
}

func plaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func csrfFailure(logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("CSRF check failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(csrf.FailureReason(r)))
		errorsfeature.RenderForbidden(w, r, "Your form expired. Please go back, reload the page and try again.", "")
	})
}
