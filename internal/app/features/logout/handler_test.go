package logout_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/tankerhub/internal/app/features/logout"
	"github.com/dalemusser/tankerhub/internal/app/store/activity"
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"go.uber.org/zap"
)

type fakeCloser struct {
	closed map[string]string
}

func (f *fakeCloser) Close(_ context.Context, id, reason string) error {
	f.closed[id] = reason
	return nil
}

func newTestHandler(t *testing.T) (*logout.Handler, *auth.SessionManager, *fakeCloser) {
	t.Helper()
	sm, err := auth.NewSessionManager(strings.Repeat("x", 32), "test-session", "", 0, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	closer := &fakeCloser{closed: map[string]string{}}
	return logout.NewHandler(sm, closer, nil, zap.NewNop()), sm, closer
}

func TestServeLogout_ClearsCookies(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/logout", testutil.AdminUser())
	rec := testutil.NewRecorder()
	handler.ServeLogout(rec, req)

	rec.AssertRedirect(t, "/login")

	expired := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			expired[c.Name] = true
		}
	}
	for _, name := range []string{auth.AdminTokenCookie, auth.AccessTokenCookie, "test-session"} {
		if !expired[name] {
			t.Errorf("cookie %q should be expired", name)
		}
	}
}

func TestServeLogout_ClosesActivitySession(t *testing.T) {
	handler, _, closer := newTestHandler(t)

	req := testutil.NewRequest(http.MethodPost, "/logout")
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "a1", Role: auth.RoleAdmin, Token: "tok", ActivityID: "act-7"})
	rec := testutil.NewRecorder()
	handler.ServeLogout(rec, req)

	if got := closer.closed["act-7"]; got != activity.EndLogout {
		t.Errorf("activity session close reason: got %q, want %q", got, activity.EndLogout)
	}
}

func TestServeLogout_HTMX(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.HTMX(testutil.NewAuthenticatedRequest(http.MethodPost, "/logout", testutil.AdminUser()), "")
	rec := testutil.NewRecorder()
	handler.ServeLogout(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if got := rec.Header().Get("HX-Redirect"); got != "/login" {
		t.Errorf("HX-Redirect: got %q, want /login", got)
	}
}

func TestRoutes_RequireSignedIn(t *testing.T) {
	handler, sm, _ := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/")
	req.Header.Set("Accept", "text/html")
	rec := testutil.NewRecorder()
	logout.Routes(handler, sm).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusSeeOther)
}
