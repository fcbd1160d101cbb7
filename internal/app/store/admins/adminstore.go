package adminstore

import (
	"context"
	"errors"
	"net/http"
	"strings"

	reststore "github.com/dalemusser/tankerhub/internal/app/store/rest"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const (
	adminLoginPath = "/api/admin/login"
	superLoginPath = "/api/superadmin/login"
	profilePath    = "/api/admin/profile"
	statusPath     = "/api/superadmin/admins/{id}/status"
)

// ErrNoToken is returned when a login succeeds at the HTTP level but the
// response carries no token.
var ErrNoToken = errors.New("login response has no token")

// ErrSelf is returned when an admin tries to delete or disable their own
// account.
var ErrSelf = errors.New("admins cannot change their own account status")

var paths = reststore.Paths{
	List:   "/api/superadmin/admins",
	Create: "/api/superadmin/admins",
	Update: "/api/superadmin/admins/{id}",
	Delete: "/api/superadmin/admins/{id}",
}

// Input is the create/update body. Password is omitted on update when
// blank so the backend keeps the existing one.
type Input struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Store struct {
	rs *reststore.Store[models.Admin]
}

func New(api *backend.Client) *Store {
	return &Store{rs: reststore.New[models.Admin](api, paths)}
}

// Login authenticates against the endpoint for role. The returned admin
// always carries a role: if the backend leaves it blank the requested
// role is used.
func (s *Store) Login(ctx context.Context, role, email, password string) (models.AuthResult, error) {
	path := adminLoginPath
	if role == models.RoleSuperAdmin {
		path = superLoginPath
	}
	res, err := backend.Send[models.AuthResult](ctx, s.rs.API(), http.MethodPost, path,
		credentials{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return models.AuthResult{}, err
	}
	if res.Token == "" {
		return models.AuthResult{}, ErrNoToken
	}
	if res.Admin.Role == "" {
		res.Admin.Role = role
	}
	if res.Admin.Email == "" {
		res.Admin.Email = strings.TrimSpace(email)
	}
	return res, nil
}

// Profile returns the admin owning the token on ctx.
func (s *Store) Profile(ctx context.Context) (models.Admin, error) {
	return backend.Get[models.Admin](ctx, s.rs.API(), profilePath)
}

func (s *Store) List(ctx context.Context) ([]models.Admin, error) { return s.rs.List(ctx) }

// Get finds one admin. The backend has no single-admin endpoint, so the
// list is scanned.
func (s *Store) Get(ctx context.Context, id string) (models.Admin, error) {
	all, err := s.rs.List(ctx)
	if err != nil {
		return models.Admin{}, err
	}
	for _, a := range all {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Admin{}, &backend.APIError{Status: http.StatusNotFound, Message: "Admin not found", Method: http.MethodGet, Path: paths.List}
}

func (s *Store) Create(ctx context.Context, in Input) (models.Admin, error) {
	return s.rs.Create(ctx, in)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.Admin, error) {
	return s.rs.Update(ctx, id, in)
}

// Delete removes another admin. actorID is the signed-in admin.
func (s *Store) Delete(ctx context.Context, actorID, id string) error {
	if actorID != "" && actorID == id {
		return ErrSelf
	}
	return s.rs.Delete(ctx, id)
}

// SetStatus enables or disables another admin.
func (s *Store) SetStatus(ctx context.Context, actorID, id, status string) (models.Admin, error) {
	if actorID != "" && actorID == id {
		return models.Admin{}, ErrSelf
	}
	return s.rs.Patch(ctx, statusPath, id, map[string]string{"status": status})
}
