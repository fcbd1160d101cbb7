// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/store/activity"
	sensorstore "github.com/dalemusser/tankerhub/internal/app/store/sensors"
	"github.com/dalemusser/tankerhub/internal/app/system/sensorfeed"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// cleanupInterval is how often idle activity sessions are closed.
const cleanupInterval = time.Minute

// background holds the goroutines started by Startup so Shutdown can
// stop them.
var background struct {
	mu      sync.Mutex
	cleanup *workers.SessionCleanup
	cancel  context.CancelFunc
	done    chan struct{}
}

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built: timeout
// overrides, the site name, the idle-session worker and the live sensor
// poller.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}
	viewdata.SetSiteName(appCfg.ReportCompanyName)

	background.mu.Lock()
	defer background.mu.Unlock()

	background.cleanup = workers.NewSessionCleanup(activity.New(deps.MongoDatabase), logger, cleanupInterval, appCfg.SessionIdleTimeout)
	background.cleanup.Start()

	if deps.Feed != nil {
		poller := sensorfeed.NewPoller(sensorstore.New(deps.API), deps.Feed, appCfg.SensorPollInterval, appCfg.SensorLowLevelPercent, logger)
		runCtx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		background.cancel, background.done = cancel, done
		go func() {
			defer close(done)
			poller.Run(runCtx)
		}()
	}
	return nil
}

// stopBackground stops what Startup started. Safe to call more than once.
func stopBackground(ctx context.Context) {
	background.mu.Lock()
	defer background.mu.Unlock()

	if background.cleanup != nil {
		background.cleanup.Stop()
		background.cleanup = nil
	}
	if background.cancel != nil {
		background.cancel()
		select {
		case <-background.done:
		case <-ctx.Done():
		}
		background.cancel, background.done = nil, nil
	}
}
