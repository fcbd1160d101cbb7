// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/app/system/metrics"
	"github.com/dalemusser/tankerhub/internal/app/system/sensorfeed"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// API is the TankerHub backend client, shared by every store.
	API     *backend.Client
	Metrics *metrics.Metrics
	// Feed is nil when the live sensor feed is disabled.
	Feed *sensorfeed.Hub
}
