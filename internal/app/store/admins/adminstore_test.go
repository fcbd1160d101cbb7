package adminstore_test

import (
	"context"
	"net/http"
	"testing"

	adminstore "github.com/dalemusser/tankerhub/internal/app/store/admins"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_PathByRole(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodPost, "/api/admin/login", map[string]any{"token": "a-tok", "admin": map[string]any{"_id": "a1", "name": "Ayesha"}})
	fb.JSON(http.MethodPost, "/api/superadmin/login", map[string]any{"token": "s-tok", "admin": map[string]any{"_id": "s1", "role": "superadmin"}})
	s := adminstore.New(fb.Client(t))
	ctx := context.Background()

	res, err := s.Login(ctx, models.RoleAdmin, "  ayesha@example.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a-tok", res.Token)
	assert.Equal(t, models.RoleAdmin, res.Admin.Role)
	assert.Equal(t, "ayesha@example.com", res.Admin.Email)

	req, _ := fb.Last(http.MethodPost, "/api/admin/login")
	assert.Equal(t, "ayesha@example.com", req.Body["email"])

	res, err = s.Login(ctx, models.RoleSuperAdmin, "root@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "s-tok", res.Token)
	assert.Equal(t, models.RoleSuperAdmin, res.Admin.Role)
}

func TestLogin_Failures(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Handle(http.MethodPost, "/api/admin/login", http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	fb.JSON(http.MethodPost, "/api/superadmin/login", map[string]any{"success": true})
	s := adminstore.New(fb.Client(t))
	ctx := context.Background()

	_, err := s.Login(ctx, models.RoleAdmin, "x@example.com", "bad")
	assert.True(t, backend.IsUnauthorized(err))

	_, err = s.Login(ctx, models.RoleSuperAdmin, "x@example.com", "pw")
	assert.ErrorIs(t, err, adminstore.ErrNoToken)
}

func TestSelfProtection(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	s := adminstore.New(fb.Client(t))
	ctx := context.Background()

	assert.ErrorIs(t, s.Delete(ctx, "a1", "a1"), adminstore.ErrSelf)
	_, err := s.SetStatus(ctx, "a1", "a1", models.StatusDisabled)
	assert.ErrorIs(t, err, adminstore.ErrSelf)
	assert.Empty(t, fb.Requests())
}

func TestGet_ScansList(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/api/superadmin/admins", []models.Admin{{ID: "a1", Name: "One"}, {ID: "a2", Name: "Two"}})
	s := adminstore.New(fb.Client(t))

	a, err := s.Get(context.Background(), "a2")
	require.NoError(t, err)
	assert.Equal(t, "Two", a.Name)

	_, err = s.Get(context.Background(), "zz")
	assert.True(t, backend.IsNotFound(err))
}
