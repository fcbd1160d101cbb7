// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig carries what TankerHub itself needs: where the backend
// lives, the local MongoDB used for sessions and the dashboard audit
// trail, cookie settings, and the knobs for the live feed and reports.
type AppConfig struct {
	// TankerHub REST backend
	APIBaseURL string        // absolute http(s) URL, e.g. https://api.tankerhub.pk
	APITimeout time.Duration // per-call timeout of the backend client

	// MongoDB connection configuration (dashboard-local state only)
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey         string        // Secret key for signing session cookies (must be strong in production)
	SessionName        string        // Cookie name for sessions (default: tankerhub-session)
	SessionDomain      string        // Cookie domain (blank means current host)
	SessionMaxAge      time.Duration // lifetime of the session and token cookies
	SessionIdleTimeout time.Duration // activity sessions idle this long are closed
	CSRFKey            string        // 32 bytes; derived from SessionKey when blank

	// Audit logging: all|db|log|off
	AuditLogAuth  string
	AuditLogAdmin string

	// Sensors
	SensorPollInterval    time.Duration // 0 disables the live feed
	SensorLowLevelPercent float64

	// Reports
	ReportCompanyName string
	ReportCurrency    string
}
