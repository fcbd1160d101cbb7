package driverstore

import (
	"context"

	reststore "github.com/dalemusser/tankerhub/internal/app/store/rest"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const availabilityPath = "/api/driver/{id}/availability"

var paths = reststore.Paths{
	List:   "/api/driver/all",
	Get:    "/api/driver/{id}",
	Create: "/api/driver/create",
	Update: "/api/driver/{id}",
	Delete: "/api/driver/{id}",
}

// Input is the create/update body.
type Input struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	LicenseNumber string `json:"licenseNumber"`
	Available     bool   `json:"isAvailable"`
	Status        string `json:"status,omitempty"`
}

type Store struct {
	rs *reststore.Store[models.Driver]
}

func New(api *backend.Client) *Store {
	return &Store{rs: reststore.New[models.Driver](api, paths)}
}

func (s *Store) List(ctx context.Context) ([]models.Driver, error) { return s.rs.List(ctx) }

func (s *Store) Get(ctx context.Context, id string) (models.Driver, error) { return s.rs.Get(ctx, id) }

func (s *Store) Create(ctx context.Context, in Input) (models.Driver, error) {
	return s.rs.Create(ctx, in)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.Driver, error) {
	return s.rs.Update(ctx, id, in)
}

func (s *Store) Delete(ctx context.Context, id string) error { return s.rs.Delete(ctx, id) }

// SetAvailability marks a driver available or unavailable for dispatch.
func (s *Store) SetAvailability(ctx context.Context, id string, available bool) (models.Driver, error) {
	return s.rs.Patch(ctx, availabilityPath, id, map[string]bool{"isAvailable": available})
}

// Dispatchable returns drivers that may be assigned to a booking.
func (s *Store) Dispatchable(ctx context.Context) ([]models.Driver, error) {
	all, err := s.rs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Driver, 0, len(all))
	for _, d := range all {
		if d.CanDispatch() {
			out = append(out, d)
		}
	}
	return out, nil
}
