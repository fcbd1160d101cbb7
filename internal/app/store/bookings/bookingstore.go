package bookingstore

import (
	"context"
	"errors"
	"time"

	reststore "github.com/dalemusser/tankerhub/internal/app/store/rest"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const (
	statusPath = "/api/bookings/{id}/status"
	assignPath = "/api/bookings/{id}/assign"
)

// ErrInvalidTransition is returned before calling the backend when the
// requested status change is not allowed from the booking's status.
var ErrInvalidTransition = errors.New("booking status change not allowed")

// ErrNotAssignable is returned when a booking is past the point where a
// driver and tanker can be assigned.
var ErrNotAssignable = errors.New("booking can no longer be assigned")

var paths = reststore.Paths{
	List:   "/api/bookings/all",
	Get:    "/api/bookings/{id}",
	Create: "/api/bookings/create",
	Update: "/api/bookings/{id}",
	Delete: "/api/bookings/{id}",
}

// Input is the create/update body.
type Input struct {
	CustomerID  string    `json:"customerId"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone,omitempty"`
	Liters      int       `json:"quantity"`
	Price       float64   `json:"price"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Notes       string    `json:"notes,omitempty"`
}

// Assignment is the body of the assign endpoint.
type Assignment struct {
	DriverID string `json:"driverId"`
	TankerID string `json:"tankerId"`
}

type Store struct {
	rs *reststore.Store[models.Booking]
}

func New(api *backend.Client) *Store {
	return &Store{rs: reststore.New[models.Booking](api, paths)}
}

func (s *Store) List(ctx context.Context) ([]models.Booking, error) { return s.rs.List(ctx) }

func (s *Store) Get(ctx context.Context, id string) (models.Booking, error) {
	return s.rs.Get(ctx, id)
}

func (s *Store) Create(ctx context.Context, in Input) (models.Booking, error) {
	return s.rs.Create(ctx, in)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.Booking, error) {
	return s.rs.Update(ctx, id, in)
}

func (s *Store) Delete(ctx context.Context, id string) error { return s.rs.Delete(ctx, id) }

// SetStatus moves b to status. The transition is checked locally first so
// an illegal move never reaches the backend.
func (s *Store) SetStatus(ctx context.Context, b models.Booking, status string) (models.Booking, error) {
	if !models.CanTransitionBooking(b.Status, status) {
		return models.Booking{}, ErrInvalidTransition
	}
	return s.rs.Patch(ctx, statusPath, b.ID, map[string]string{"status": status})
}

// Assign puts a driver and a tanker on b.
func (s *Store) Assign(ctx context.Context, b models.Booking, a Assignment) (models.Booking, error) {
	if !b.IsAssignable() {
		return models.Booking{}, ErrNotAssignable
	}
	return s.rs.Patch(ctx, assignPath, b.ID, a)
}
