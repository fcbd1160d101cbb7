package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/tankerhub/internal/app/features/health"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type fakeDB struct{ err error }

func (f fakeDB) Ping(context.Context, *readpref.ReadPref) error { return f.err }

type response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Backend  string `json:"backend"`
	Message  string `json:"message"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.Serve(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, resp
}

func TestServe_AllUp(t *testing.T) {
	api := testutil.NewFakeBackend(t)
	handler := health.NewHandler(fakeDB{}, api.Client(t), zap.NewNop())

	rec, resp := serve(t, handler)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if resp.Status != "ok" || resp.Database != "connected" || resp.Backend != "reachable" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestServe_DatabaseDown(t *testing.T) {
	api := testutil.NewFakeBackend(t)
	handler := health.NewHandler(fakeDB{err: errors.New("no reachable servers")}, api.Client(t), zap.NewNop())

	rec, resp := serve(t, handler)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if resp.Database != "disconnected" || resp.Backend != "reachable" {
		t.Errorf("unexpected body: %+v", resp)
	}
	if resp.Message != "Database unavailable" {
		t.Errorf("message: got %q", resp.Message)
	}
}

func TestServe_BackendDown(t *testing.T) {
	api := testutil.NewFakeBackend(t)
	client := api.Client(t)
	api.Close()
	handler := health.NewHandler(fakeDB{}, client, zap.NewNop())

	rec, resp := serve(t, handler)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if resp.Status != "error" || resp.Backend != "unreachable" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestServe_RealDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	api := testutil.NewFakeBackend(t)
	handler := health.NewHandler(db.Client(), api.Client(t), zap.NewNop())

	rec, resp := serve(t, handler)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if resp.Database != "connected" {
		t.Errorf("database: got %q", resp.Database)
	}
}
