package tankerstore

import (
	"context"

	reststore "github.com/dalemusser/tankerhub/internal/app/store/rest"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

var paths = reststore.Paths{
	List:   "/api/tankers/all",
	Get:    "/api/tankers/{id}",
	Create: "/api/tankers/create",
	Update: "/api/tankers/{id}",
	Delete: "/api/tankers/{id}",
}

// Input is the create/update body.
type Input struct {
	PlateNumber    string `json:"plateNumber"`
	CapacityLiters int    `json:"capacity"`
	Model          string `json:"model,omitempty"`
	Status         string `json:"status"`
	DriverID       string `json:"driverId,omitempty"`
}

type Store struct {
	rs *reststore.Store[models.Tanker]
}

func New(api *backend.Client) *Store {
	return &Store{rs: reststore.New[models.Tanker](api, paths)}
}

func (s *Store) List(ctx context.Context) ([]models.Tanker, error) { return s.rs.List(ctx) }

func (s *Store) Get(ctx context.Context, id string) (models.Tanker, error) { return s.rs.Get(ctx, id) }

func (s *Store) Create(ctx context.Context, in Input) (models.Tanker, error) {
	return s.rs.Create(ctx, in)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.Tanker, error) {
	return s.rs.Update(ctx, id, in)
}

func (s *Store) Delete(ctx context.Context, id string) error { return s.rs.Delete(ctx, id) }

// Active returns tankers that can be assigned to a booking.
func (s *Store) Active(ctx context.Context) ([]models.Tanker, error) {
	all, err := s.rs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Tanker, 0, len(all))
	for _, t := range all {
		if t.IsActive() {
			out = append(out, t)
		}
	}
	return out, nil
}
