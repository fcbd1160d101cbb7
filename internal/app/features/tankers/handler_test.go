package tankers_test

import (
	"net/http"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/features/tankers"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*tankers.Handler, *testutil.FakeBackend) {
	t.Helper()
	api := testutil.NewFakeBackend(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger, nil, nil)
	return tankers.NewHandler(api.Client(t), errLog, nil, logger), api
}

func TestHandleCreate_Success(t *testing.T) {
	handler, api := newTestHandler(t)
	api.JSON(http.MethodPost, "/api/tankers/create", map[string]any{
		"success": true,
		"data":    map[string]any{"_id": "t9", "plateNumber": "LEB-900"},
	})

	form := url.Values{
		"plate_number": {"LEB-900"},
		"capacity":     {"12,000"},
		"status":       {"active"},
	}
	user := testutil.AdminUser()
	req := testutil.NewFormRequest("/tankers/new", form, user)

	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertRedirect(t, "/tankers")

	got, ok := api.Last(http.MethodPost, "/api/tankers/create")
	if !ok {
		t.Fatal("expected create call to backend")
	}
	if got.Auth != user.Token {
		t.Errorf("token: got %q, want %q", got.Auth, user.Token)
	}
	if got.Body["plateNumber"] != "LEB-900" {
		t.Errorf("plateNumber: got %v", got.Body["plateNumber"])
	}
	if got.Body["capacity"] != float64(12000) {
		t.Errorf("capacity: got %v, want 12000", got.Body["capacity"])
	}
}

func TestHandleCreate_ValidationBlocksBackendCall(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"missing plate", url.Values{"capacity": {"6000"}, "status": {"active"}}},
		{"zero capacity", url.Values{"plate_number": {"LEB-1"}, "capacity": {"0"}, "status": {"active"}}},
		{"negative capacity", url.Values{"plate_number": {"LEB-1"}, "capacity": {"-5"}, "status": {"active"}}},
		{"bad status", url.Values{"plate_number": {"LEB-1"}, "capacity": {"6000"}, "status": {"parked"}}},
		{"bad plate", url.Values{"plate_number": {"LEB/1"}, "capacity": {"6000"}, "status": {"active"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, api := newTestHandler(t)
			req := testutil.NewFormRequest("/tankers/new", tt.form, testutil.AdminUser())
			rec := testutil.NewRecorder()

			testutil.Render(t, func() { handler.HandleCreate(rec, req) })

			if api.Called(http.MethodPost, "/api/tankers/create") {
				t.Error("backend should not be called when validation fails")
			}
		})
	}
}

func TestHandleCreate_BackendConflictRedirects(t *testing.T) {
	handler, api := newTestHandler(t)
	api.Handle(http.MethodPost, "/api/tankers/create", http.StatusConflict, `{"message":"Plate number already exists"}`)

	form := url.Values{"plate_number": {"LEB-1"}, "capacity": {"6000"}, "status": {"active"}}
	req := testutil.NewFormRequest("/tankers/new", form, testutil.AdminUser())
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertRedirect(t, "/tankers")
}

func TestHandleEdit_Success(t *testing.T) {
	handler, api := newTestHandler(t)
	api.JSON(http.MethodPut, "/api/tankers/t1", map[string]any{"_id": "t1"})

	form := url.Values{
		"plate_number": {"LEB-001"},
		"capacity":     {"8000"},
		"status":       {"maintenance"},
		"return":       {"/tankers?status=active"},
	}
	req := testutil.NewFormRequest("/tankers/t1/edit", form, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "t1")
	rec := testutil.NewRecorder()
	handler.HandleEdit(rec, req)

	rec.AssertRedirect(t, "/tankers?status=active")
	got, ok := api.Last(http.MethodPut, "/api/tankers/t1")
	if !ok {
		t.Fatal("expected update call to backend")
	}
	if got.Body["status"] != "maintenance" {
		t.Errorf("status: got %v", got.Body["status"])
	}
}

func TestHandleDelete_HTMXRedirect(t *testing.T) {
	handler, api := newTestHandler(t)
	api.Handle(http.MethodDelete, "/api/tankers/t1", http.StatusNoContent, nil)

	req := testutil.NewFormRequest("/tankers/t1/delete", url.Values{"label": {"LEB-001"}}, testutil.AdminUser())
	req = testutil.WithChiURLParam(testutil.HTMX(req, ""), "id", "t1")
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec, req)

	rec.AssertStatus(t, http.StatusNoContent)
	if got := rec.Header().Get("HX-Redirect"); got != "/tankers" {
		t.Errorf("HX-Redirect: got %q, want /tankers", got)
	}
	if !api.Called(http.MethodDelete, "/api/tankers/t1") {
		t.Error("expected delete call to backend")
	}
}

func TestHandleDelete_RejectedTokenSignsOut(t *testing.T) {
	handler, api := newTestHandler(t)
	api.Handle(http.MethodDelete, "/api/tankers/t1", http.StatusUnauthorized, `{"message":"jwt expired"}`)

	req := testutil.NewFormRequest("/tankers/t1/delete", url.Values{}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "t1")
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/login")
}

func TestServeList_RejectedTokenSignsOut(t *testing.T) {
	handler, api := newTestHandler(t)
	api.Handle(http.MethodGet, "/api/tankers/all", http.StatusUnauthorized, ``)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/tankers", testutil.AdminUser())
	rec := testutil.NewRecorder()
	handler.ServeList(rec, req)

	rec.AssertRedirect(t, "/login")
}

func TestServeList_LoadsCollection(t *testing.T) {
	handler, api := newTestHandler(t)
	testutil.NewFixtures(t, api).Tankers(3)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/tankers?status=active", testutil.AdminUser())
	rec := testutil.NewRecorder()
	testutil.Render(t, func() { handler.ServeList(rec, req) })

	if !api.Called(http.MethodGet, "/api/tankers/all") {
		t.Error("expected list call to backend")
	}
}
