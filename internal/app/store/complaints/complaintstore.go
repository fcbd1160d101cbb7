package complaintstore

import (
	"context"
	"errors"

	reststore "github.com/dalemusser/tankerhub/internal/app/store/rest"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const statusPath = "/api/complain/{id}/status"

// ErrInvalidTransition is returned when the status change is not allowed
// from the complaint's current status.
var ErrInvalidTransition = errors.New("complaint status change not allowed")

var paths = reststore.Paths{
	List:   "/api/complain/all",
	Get:    "/api/complain/{id}",
	Delete: "/api/complain/{id}",
}

// StatusUpdate is the body of the status endpoint.
type StatusUpdate struct {
	Status   string `json:"status"`
	Response string `json:"response,omitempty"`
}

type Store struct {
	rs *reststore.Store[models.Complaint]
}

func New(api *backend.Client) *Store {
	return &Store{rs: reststore.New[models.Complaint](api, paths)}
}

func (s *Store) List(ctx context.Context) ([]models.Complaint, error) { return s.rs.List(ctx) }

func (s *Store) Get(ctx context.Context, id string) (models.Complaint, error) {
	return s.rs.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error { return s.rs.Delete(ctx, id) }

// SetStatus moves c along its workflow, attaching the admin's response.
func (s *Store) SetStatus(ctx context.Context, c models.Complaint, up StatusUpdate) (models.Complaint, error) {
	if !models.CanTransitionComplaint(c.Status, up.Status) {
		return models.Complaint{}, ErrInvalidTransition
	}
	return s.rs.Patch(ctx, statusPath, c.ID, up)
}
