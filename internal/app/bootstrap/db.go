// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/tankerhub/internal/app/store/activity"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/app/system/metrics"
	"github.com/dalemusser/tankerhub/internal/app/system/sensorfeed"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and builds the backend client. The
// backend is not contacted here: an unreachable backend must not keep
// the dashboard from starting.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetAppName("tankerhub")
	if appCfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
	}
	if appCfg.MongoMinPoolSize > 0 {
		opts.SetMinPoolSize(appCfg.MongoMinPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	m := metrics.New()
	api, err := backend.New(appCfg.APIBaseURL, appCfg.APITimeout, logger, backend.WithObserver(m.ObserveUpstream))
	if err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("backend client: %w", err)
	}

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		API:           api,
		Metrics:       m,
	}
	if appCfg.SensorPollInterval > 0 {
		deps.Feed = sensorfeed.NewHub(logger, m.SetLiveSubscribers)
	}
	return deps, nil
}

// EnsureSchema creates the indexes of the dashboard-local collections.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if err := audit.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	if err := activity.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("activity indexes: %w", err)
	}
	logger.Info("indexes ensured", zap.Strings("collections", []string{"audit_events", "activity_sessions"}))
	return nil
}
