package customerstore

import (
	"context"

	reststore "github.com/dalemusser/tankerhub/internal/app/store/rest"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const statusPath = "/api/admin/customers/{id}/status"

var paths = reststore.Paths{
	List:   "/api/admin/customers",
	Get:    "/api/admin/customers/{id}",
	Update: "/api/admin/customers/{id}",
	Delete: "/api/admin/customers/{id}",
}

// Input is the update body. Customers register themselves through the
// mobile app, so the dashboard never creates them.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

type Store struct {
	rs *reststore.Store[models.Customer]
}

func New(api *backend.Client) *Store {
	return &Store{rs: reststore.New[models.Customer](api, paths)}
}

func (s *Store) List(ctx context.Context) ([]models.Customer, error) { return s.rs.List(ctx) }

func (s *Store) Get(ctx context.Context, id string) (models.Customer, error) {
	return s.rs.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.Customer, error) {
	return s.rs.Update(ctx, id, in)
}

func (s *Store) Delete(ctx context.Context, id string) error { return s.rs.Delete(ctx, id) }

// SetStatus blocks or reactivates a customer account.
func (s *Store) SetStatus(ctx context.Context, id, status string) (models.Customer, error) {
	return s.rs.Patch(ctx, statusPath, id, map[string]string{"status": status})
}
