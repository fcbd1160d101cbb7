package driverstore_test

import (
	"context"
	"net/http"
	"testing"

	driverstore "github.com/dalemusser/tankerhub/internal/app/store/drivers"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchable(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/api/driver/all", map[string]any{"drivers": []map[string]any{
		{"_id": "d1", "name": "A", "isAvailable": true},
		{"_id": "d2", "name": "B", "isAvailable": false},
		{"_id": "d3", "name": "C", "isAvailable": true, "status": "inactive"},
	}})
	s := driverstore.New(fb.Client(t))

	got, err := s.Dispatchable(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
}

func TestSetAvailability(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodPatch, "/api/driver/d1/availability", map[string]any{"_id": "d1", "isAvailable": false})
	s := driverstore.New(fb.Client(t))

	d, err := s.SetAvailability(context.Background(), "d1", false)
	require.NoError(t, err)
	assert.False(t, d.Available)

	req, _ := fb.Last(http.MethodPatch, "/api/driver/d1/availability")
	assert.Equal(t, false, req.Body["isAvailable"])
}
