// internal/app/bootstrap/config.go
package bootstrap

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for TankerHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: TANKERHUB_API_BASE_URL, TANKERHUB_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "", Desc: "TankerHub backend base URL (required, e.g. https://api.tankerhub.pk)"},
	{Name: "api_timeout", Default: "15s", Desc: "Timeout of one backend call"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "tankerhub_dashboard", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size (default: 50)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "tankerhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Lifetime of the session and token cookies"},
	{Name: "session_idle_timeout", Default: "30m", Desc: "Close dashboard activity sessions idle this long"},
	{Name: "csrf_key", Default: "", Desc: "CSRF signing key, 32 bytes (derived from session_key when blank)"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Sensors
	{Name: "sensor_poll_interval", Default: "15s", Desc: "Live sensor feed poll interval (0 disables the feed)"},
	{Name: "sensor_low_level_percent", Default: 20, Desc: "Tank level at or below which a sensor is low"},

	// Reports
	{Name: "report_company_name", Default: "TankerHub", Desc: "Company name printed on reports and in the header"},
	{Name: "report_currency", Default: "PKR", Desc: "ISO currency code for money in reports"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TANKERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TANKERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: strings.TrimSpace(appValues.String("api_base_url")),
		APITimeout: appValues.Duration("api_timeout", 15*time.Second),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:         appValues.String("session_key"),
		SessionName:        appValues.String("session_name"),
		SessionDomain:      appValues.String("session_domain"),
		SessionMaxAge:      appValues.Duration("session_max_age", 24*time.Hour),
		SessionIdleTimeout: appValues.Duration("session_idle_timeout", 30*time.Minute),
		CSRFKey:            appValues.String("csrf_key"),

		AuditLogAuth:  strings.ToLower(appValues.String("audit_log_auth")),
		AuditLogAdmin: strings.ToLower(appValues.String("audit_log_admin")),

		SensorPollInterval:    appValues.Duration("sensor_poll_interval", 15*time.Second),
		SensorLowLevelPercent: float64(appValues.Int("sensor_low_level_percent")),

		ReportCompanyName: appValues.String("report_company_name"),
		ReportCurrency:    strings.ToUpper(appValues.String("report_currency")),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// TankerHub cannot do anything without its backend, so the base URL is
// checked here rather than on the first request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateApp(appCfg); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	if len(appCfg.SessionKey) < 32 {
		logger.Warn("session_key is shorter than 32 characters")
	}
	return nil
}

func validateApp(appCfg AppConfig) error {
	if err := backend.ValidateBaseURL(appCfg.APIBaseURL); err != nil {
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if appCfg.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive, got %s", appCfg.APITimeout)
	}
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database is required")
	}
	if strings.TrimSpace(appCfg.SessionKey) == "" {
		return fmt.Errorf("session_key is required")
	}
	if !auditlog.ValidSetting(appCfg.AuditLogAuth) {
		return fmt.Errorf("audit_log_auth must be one of all|db|log|off, got %q", appCfg.AuditLogAuth)
	}
	if !auditlog.ValidSetting(appCfg.AuditLogAdmin) {
		return fmt.Errorf("audit_log_admin must be one of all|db|log|off, got %q", appCfg.AuditLogAdmin)
	}
	if appCfg.SensorPollInterval < 0 {
		return fmt.Errorf("sensor_poll_interval must not be negative")
	}
	if appCfg.SensorLowLevelPercent < 0 || appCfg.SensorLowLevelPercent > 100 {
		return fmt.Errorf("sensor_low_level_percent must be between 0 and 100, got %v", appCfg.SensorLowLevelPercent)
	}
	if appCfg.SessionIdleTimeout <= 0 {
		return fmt.Errorf("session_idle_timeout must be positive")
	}
	return nil
}

// csrfKey returns the 32-byte CSRF key. A configured key of exactly 32
// bytes is used as is; anything else is hashed down to 32 bytes.
func csrfKey(appCfg AppConfig) []byte {
	if len(appCfg.CSRFKey) == 32 {
		return []byte(appCfg.CSRFKey)
	}
	seed := appCfg.CSRFKey
	if seed == "" {
		seed = "csrf:" + appCfg.SessionKey
	}
	sum := sha256.Sum256([]byte(seed))
	return sum[:]
}
