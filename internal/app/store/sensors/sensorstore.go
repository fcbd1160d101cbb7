package sensorstore

import (
	"context"

	reststore "github.com/dalemusser/tankerhub/internal/app/store/rest"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const readingsPath = "/api/sensor/{id}/readings"

var paths = reststore.Paths{
	List:   "/api/sensor/all",
	Get:    "/api/sensor/{id}",
	Create: "/api/sensor/create",
	Update: "/api/sensor/{id}",
	Delete: "/api/sensor/{id}",
}

// Input is the create/update body.
type Input struct {
	DeviceID     string `json:"deviceId"`
	Name         string `json:"name"`
	CustomerID   string `json:"customerId,omitempty"`
	Location     string `json:"location,omitempty"`
	TankCapacity int    `json:"tankCapacity"`
	Status       string `json:"status,omitempty"`
}

type Store struct {
	rs *reststore.Store[models.Sensor]
}

func New(api *backend.Client) *Store {
	return &Store{rs: reststore.New[models.Sensor](api, paths)}
}

func (s *Store) List(ctx context.Context) ([]models.Sensor, error) { return s.rs.List(ctx) }

func (s *Store) Get(ctx context.Context, id string) (models.Sensor, error) { return s.rs.Get(ctx, id) }

func (s *Store) Create(ctx context.Context, in Input) (models.Sensor, error) {
	return s.rs.Create(ctx, in)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.Sensor, error) {
	return s.rs.Update(ctx, id, in)
}

func (s *Store) Delete(ctx context.Context, id string) error { return s.rs.Delete(ctx, id) }

// Readings returns the recorded samples of one sensor, newest first as
// the backend orders them.
func (s *Store) Readings(ctx context.Context, id string) ([]models.SensorReading, error) {
	return backend.List[models.SensorReading](ctx, s.rs.API(), backend.PathID(readingsPath, id))
}

// Low returns the sensors at or below threshold percent.
func Low(all []models.Sensor, threshold float64) []models.Sensor {
	var out []models.Sensor
	for _, s := range all {
		if s.IsLow(threshold) {
			out = append(out, s)
		}
	}
	return out
}
