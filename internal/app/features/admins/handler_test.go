package admins_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/tankerhub/internal/app/features/admins"
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*admins.Handler, *testutil.FakeBackend) {
	t.Helper()
	api := testutil.NewFakeBackend(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger, nil, nil)
	return admins.NewHandler(api.Client(t), errLog, nil, logger), api
}

func adminList(selfID string) []map[string]any {
	return []map[string]any{
		{"_id": selfID, "name": "Me", "email": "super@test.com", "role": "superadmin", "status": "active"},
		{"_id": "a2", "name": "Ops Admin", "email": "ops@test.com", "role": "admin", "status": "active"},
		{"_id": "a3", "name": "Old Admin", "email": "old@test.com", "role": "admin", "status": "disabled"},
	}
}

func TestRoutes_AdminForbidden(t *testing.T) {
	handler, api := newTestHandler(t)
	sm, err := auth.NewSessionManager(strings.Repeat("k", 32), "", "", 0, false, nil)
	if err != nil {
		t.Fatal(err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser())
	req.Header.Set("Accept", "text/html")
	rec := testutil.NewRecorder()
	admins.Routes(handler, sm).ServeHTTP(rec, req)

	rec.AssertRedirect(t, "/forbidden")
	if api.Called(http.MethodGet, "/api/superadmin/admins") {
		t.Error("backend should not be called for an admin")
	}
}

func TestServeList_LoadsAdmins(t *testing.T) {
	handler, api := newTestHandler(t)
	user := testutil.SuperAdminUser()
	api.JSON(http.MethodGet, "/api/superadmin/admins", adminList(user.ID))

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admins?status=disabled", user)
	req = testutil.HTMX(req, "admins-table-wrap")
	rec := testutil.NewRecorder()
	testutil.Render(t, func() { handler.ServeList(rec, req) })

	got, ok := api.Last(http.MethodGet, "/api/superadmin/admins")
	if !ok {
		t.Fatal("expected list call to backend")
	}
	if got.Auth != "super-token" {
		t.Errorf("auth: got %q", got.Auth)
	}
}

func TestServeList_UpstreamError(t *testing.T) {
	handler, api := newTestHandler(t)
	api.Handle(http.MethodGet, "/api/superadmin/admins", http.StatusInternalServerError, `{"message":"boom"}`)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admins", testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	testutil.Render(t, func() { handler.ServeList(rec, req) })

	if rec.Code == http.StatusOK {
		t.Error("expected an error status when the backend fails")
	}
}

func TestHandleCreate_Success(t *testing.T) {
	handler, api := newTestHandler(t)
	api.JSON(http.MethodPost, "/api/superadmin/admins", map[string]any{"_id": "a9"})

	form := url.Values{
		"name":     {" New Admin "},
		"email":    {"NEW@Example.com"},
		"password": {"s3cretpass"},
		"role":     {"Admin"},
	}
	req := testutil.NewFormRequest("/admins/new", form, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertRedirect(t, "/admins")
	got, ok := api.Last(http.MethodPost, "/api/superadmin/admins")
	if !ok {
		t.Fatal("expected create call to backend")
	}
	if got.Body["email"] != "new@example.com" {
		t.Errorf("email: got %v", got.Body["email"])
	}
	if got.Body["role"] != "admin" {
		t.Errorf("role: got %v", got.Body["role"])
	}
	if got.Auth != "super-token" {
		t.Errorf("auth: got %q", got.Auth)
	}
}

func TestHandleCreate_ValidationBlocksBackendCall(t *testing.T) {
	base := func(mut func(url.Values)) url.Values {
		v := url.Values{
			"name":     {"Admin"},
			"email":    {"a@example.com"},
			"password": {"s3cretpass"},
			"role":     {"admin"},
		}
		mut(v)
		return v
	}
	tests := []struct {
		name string
		form url.Values
	}{
		{"missing name", base(func(v url.Values) { v.Del("name") })},
		{"bad email", base(func(v url.Values) { v.Set("email", "nope") })},
		{"missing password", base(func(v url.Values) { v.Del("password") })},
		{"short password", base(func(v url.Values) { v.Set("password", "short") })},
		{"unknown role", base(func(v url.Values) { v.Set("role", "driver") })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, api := newTestHandler(t)
			req := testutil.NewFormRequest("/admins/new", tt.form, testutil.SuperAdminUser())
			rec := testutil.NewRecorder()

			testutil.Render(t, func() { handler.HandleCreate(rec, req) })

			if api.Called(http.MethodPost, "/api/superadmin/admins") {
				t.Error("backend should not be called when validation fails")
			}
		})
	}
}

func TestHandleEdit_SelfRoleLocked(t *testing.T) {
	handler, api := newTestHandler(t)
	user := testutil.SuperAdminUser()
	api.JSON(http.MethodPut, "/api/superadmin/admins/"+user.ID, map[string]any{"_id": user.ID})

	form := url.Values{"name": {"Me"}, "email": {"super@test.com"}, "role": {"admin"}}
	req := testutil.NewFormRequest("/admins/"+user.ID+"/edit", form, user)
	req = testutil.WithChiURLParam(req, "id", user.ID)
	rec := testutil.NewRecorder()
	handler.HandleEdit(rec, req)

	rec.AssertRedirect(t, "/admins")
	got, ok := api.Last(http.MethodPut, "/api/superadmin/admins/"+user.ID)
	if !ok {
		t.Fatal("expected update call to backend")
	}
	if got.Body["role"] != "superadmin" {
		t.Errorf("own role should stay superadmin, got %v", got.Body["role"])
	}
	if _, sent := got.Body["password"]; sent {
		t.Error("blank password should be omitted")
	}
}

func TestHandleStatus(t *testing.T) {
	tests := []struct {
		name     string
		id       func(self string) string
		status   string
		wantCall bool
	}{
		{"disable other admin", func(string) string { return "a2" }, "disabled", true},
		{"enable disabled admin", func(string) string { return "a3" }, "active", true},
		{"disable self", func(self string) string { return self }, "disabled", false},
		{"unknown status", func(string) string { return "a2" }, "paused", false},
		{"missing admin", func(string) string { return "zz" }, "disabled", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, api := newTestHandler(t)
			user := testutil.SuperAdminUser()
			id := tt.id(user.ID)
			path := "/api/superadmin/admins/" + id + "/status"
			api.JSON(http.MethodGet, "/api/superadmin/admins", adminList(user.ID))
			api.JSON(http.MethodPatch, path, map[string]any{"_id": id})

			req := testutil.NewFormRequest("/admins/"+id+"/status", url.Values{"status": {tt.status}}, user)
			req = testutil.WithChiURLParam(req, "id", id)
			rec := testutil.NewRecorder()
			handler.HandleStatus(rec, req)

			rec.AssertRedirect(t, "/admins")
			if got := api.Called(http.MethodPatch, path); got != tt.wantCall {
				t.Errorf("status call: got %v, want %v", got, tt.wantCall)
			}
		})
	}
}

func TestHandleDelete_LastSuperAdminBlocked(t *testing.T) {
	handler, api := newTestHandler(t)
	api.JSON(http.MethodGet, "/api/superadmin/admins", []map[string]any{
		{"_id": "s1", "name": "Only Super", "role": "superadmin", "status": "active"},
		{"_id": "s2", "name": "Retired Super", "role": "superadmin", "status": "disabled"},
	})

	req := testutil.NewFormRequest("/admins/s1/delete", url.Values{}, testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", "s1")
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/admins")
	if api.Called(http.MethodDelete, "/api/superadmin/admins/s1") {
		t.Error("last active superadmin must not be deleted")
	}
}

func TestHandleDelete(t *testing.T) {
	handler, api := newTestHandler(t)
	user := testutil.SuperAdminUser()
	api.JSON(http.MethodGet, "/api/superadmin/admins", adminList(user.ID))
	api.Handle(http.MethodDelete, "/api/superadmin/admins/a2", http.StatusNoContent, nil)

	req := testutil.NewFormRequest("/admins/a2/delete", url.Values{}, user)
	req = testutil.WithChiURLParam(req, "id", "a2")
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/admins")
	if !api.Called(http.MethodDelete, "/api/superadmin/admins/a2") {
		t.Error("expected delete call to backend")
	}
}

func TestHandleDelete_Self(t *testing.T) {
	handler, api := newTestHandler(t)
	user := testutil.SuperAdminUser()
	list := adminList(user.ID)
	list = append(list, map[string]any{"_id": "s2", "name": "Other Super", "role": "superadmin", "status": "active"})
	api.JSON(http.MethodGet, "/api/superadmin/admins", list)

	req := testutil.NewFormRequest("/admins/"+user.ID+"/delete", url.Values{}, user)
	req = testutil.WithChiURLParam(req, "id", user.ID)
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/admins")
	if api.Called(http.MethodDelete, "/api/superadmin/admins/"+user.ID) {
		t.Error("an admin must not delete their own account")
	}
}
