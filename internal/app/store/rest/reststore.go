// internal/app/store/rest/reststore.go
package reststore

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/backend"
)

// ErrUnsupported is returned when the backend exposes no endpoint for an
// operation on this entity.
var ErrUnsupported = errors.New("operation not supported by the backend")

// Paths maps CRUD operations to backend endpoints. Get, Update and
// Delete patterns contain an {id} placeholder. UpdateMethod defaults to
// PUT.
type Paths struct {
	List         string
	Get          string
	Create       string
	Update       string
	UpdateMethod string
	Delete       string
}

// Store is the CRUD core shared by the entity stores.
type Store[T any] struct {
	api   *backend.Client
	paths Paths
}

// New builds a Store over api using paths.
func New[T any](api *backend.Client, paths Paths) *Store[T] {
	return &Store[T]{api: api, paths: paths}
}

// API exposes the client so entity stores can issue their own calls.
func (s *Store[T]) API() *backend.Client { return s.api }

// List returns every record of the collection.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	if s.paths.List == "" {
		return nil, ErrUnsupported
	}
	return backend.List[T](ctx, s.api, s.paths.List)
}

// Get returns one record by id.
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	if s.paths.Get == "" {
		var zero T
		return zero, ErrUnsupported
	}
	return backend.Get[T](ctx, s.api, backend.PathID(s.paths.Get, id))
}

// Create posts in and returns the created record (zero value if the
// backend replies without a body).
func (s *Store[T]) Create(ctx context.Context, in any) (T, error) {
	if s.paths.Create == "" {
		var zero T
		return zero, ErrUnsupported
	}
	return backend.Send[T](ctx, s.api, http.MethodPost, s.paths.Create, in)
}

// Update sends in to the record's update endpoint.
func (s *Store[T]) Update(ctx context.Context, id string, in any) (T, error) {
	if s.paths.Update == "" {
		var zero T
		return zero, ErrUnsupported
	}
	method := s.paths.UpdateMethod
	if method == "" {
		method = http.MethodPut
	}
	return backend.Send[T](ctx, s.api, method, backend.PathID(s.paths.Update, id), in)
}

// Delete removes one record.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if s.paths.Delete == "" {
		return ErrUnsupported
	}
	return s.api.Do(ctx, http.MethodDelete, backend.PathID(s.paths.Delete, id), nil, nil)
}

// Patch sends body to an action endpoint such as /{id}/status.
func (s *Store[T]) Patch(ctx context.Context, pattern, id string, body any) (T, error) {
	return backend.Send[T](ctx, s.api, http.MethodPatch, backend.PathID(pattern, id), body)
}
