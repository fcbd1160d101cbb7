package notificationstore

import (
	"context"

	reststore "github.com/dalemusser/tankerhub/internal/app/store/rest"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

var paths = reststore.Paths{
	List:   "/api/notification/all",
	Create: "/api/notification/send",
	Delete: "/api/notification/{id}",
}

// Input is the send body. CustomerID is only sent for the single
// customer audience.
type Input struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Audience   string `json:"audience"`
	CustomerID string `json:"customerId,omitempty"`
}

type Store struct {
	rs *reststore.Store[models.Notification]
}

func New(api *backend.Client) *Store {
	return &Store{rs: reststore.New[models.Notification](api, paths)}
}

func (s *Store) List(ctx context.Context) ([]models.Notification, error) { return s.rs.List(ctx) }

// Send pushes a notification to its audience.
func (s *Store) Send(ctx context.Context, in Input) (models.Notification, error) {
	if in.Audience != models.AudienceCustomer {
		in.CustomerID = ""
	}
	return s.rs.Create(ctx, in)
}

func (s *Store) Delete(ctx context.Context, id string) error { return s.rs.Delete(ctx, id) }
