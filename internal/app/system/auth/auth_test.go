package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		logger,
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func TestRequireSignedIn_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("protected content"))
	}))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/login") {
		t.Errorf("expected redirect to /login, got %q", location)
	}
}

func TestRequireSignedIn_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/data", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_NoUser_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}

	hxRedirect := rec.Header().Get("HX-Redirect")
	if !strings.HasPrefix(hxRedirect, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hxRedirect)
	}
}

func TestRequireRole_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/login") {
		t.Errorf("expected redirect to /login, got %q", location)
	}
}

func TestRequireRole_WrongRole_RedirectsToForbidden(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Create a request with a non-dashboard role in context
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Accept", "text/html")

	// Inject a user with a role the dashboard does not grant
	req = withTestUser(req, "driver")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	location := rec.Header().Get("Location")
	if location != "/forbidden" {
		t.Errorf("expected redirect to /forbidden, got %q", location)
	}
}

func TestRequireRole_WrongRole_API_Returns403(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/admins", nil)
	req.Header.Set("Accept", "application/json")
	req = withTestUser(req, "driver")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireRole_CorrectRole_Proceeds(t *testing.T) {
	sm := newTestSessionManager(t)

	called := false
	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	req = withTestUser(req, "admin")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_SuperAdminOnly(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("superadmin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		role     string
		expected int
	}{
		{"superadmin", http.StatusOK},
		{"admin", http.StatusSeeOther},    // redirect to forbidden
		{"customer", http.StatusSeeOther}, // redirect to forbidden
	}

	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admins", nil)
			req.Header.Set("Accept", "text/html")
			req = withTestUser(req, tc.role)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expected {
				t.Errorf("role %q: expected status %d, got %d", tc.role, tc.expected, rec.Code)
			}
		})
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Test with uppercase role
	req := httptest.NewRequest("GET", "/admin", nil)
	req = withTestUser(req, "ADMIN")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for uppercase role, got %d", http.StatusOK, rec.Code)
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	user, ok := auth.CurrentUser(req)

	if ok {
		t.Error("expected ok to be false when no user in context")
	}
	if user != nil {
		t.Error("expected user to be nil when no user in context")
	}
}

func TestCurrentUser_WithUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = withTestUser(req, "admin")

	user, ok := auth.CurrentUser(req)

	if !ok {
		t.Error("expected ok to be true when user in context")
	}
	if user == nil {
		t.Fatal("expected user to not be nil")
	}
	if user.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", user.Role)
	}
}

// withTestUser injects a SessionUser into the request context for testing.
// This simulates what LoadSessionUser middleware does.
func withTestUser(r *http.Request, role string) *http.Request {
	user := &auth.SessionUser{
		ID:    "6650c0ffee0000000000a001",
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
		Token: "tok-" + role,
	}
	return auth.WithTestUser(r, user)
}

func TestRequireRole_SuperAdminCountsAsAdmin(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/bookings", nil)
	req = withTestUser(req, "superadmin")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("superadmin on admin route: expected %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestLoadSessionUser_CookiePresence(t *testing.T) {
	sm := newTestSessionManager(t)

	tests := []struct {
		name      string
		cookie    *http.Cookie
		wantUser  bool
		wantRole  string
		wantToken string
	}{
		{"no cookie", nil, false, "", ""},
		{"empty admin cookie", &http.Cookie{Name: auth.AdminTokenCookie, Value: "  "}, false, "", ""},
		{"admin cookie", &http.Cookie{Name: auth.AdminTokenCookie, Value: "abc"}, true, "admin", "abc"},
		{"access cookie", &http.Cookie{Name: auth.AccessTokenCookie, Value: "xyz"}, true, "admin", "xyz"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got *auth.SessionUser
			var ctxToken string
			handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = auth.CurrentUser(r)
				ctxToken = backend.TokenFrom(r.Context())
			}))

			req := httptest.NewRequest("GET", "/", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if (got != nil) != tc.wantUser {
				t.Fatalf("user present = %v, want %v", got != nil, tc.wantUser)
			}
			if got == nil {
				return
			}
			if got.Role != tc.wantRole {
				t.Errorf("role = %q, want %q", got.Role, tc.wantRole)
			}
			if got.Token != tc.wantToken || ctxToken != tc.wantToken {
				t.Errorf("token = %q (ctx %q), want %q", got.Token, ctxToken, tc.wantToken)
			}
		})
	}
}

func TestSignIn_ThenLoadSessionUser(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	err := sm.SignIn(rec, req, "tok-1", auth.SessionUser{
		ID:    "a1",
		Name:  "Ayesha Khan",
		Email: "ayesha@example.com",
		Role:  "superadmin",
	})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	next := httptest.NewRequest("GET", "/dashboard", nil)
	var sawAdmin, sawAccess bool
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case auth.AccessTokenCookie:
			sawAccess = c.Value == "tok-1" && c.HttpOnly
		case auth.AdminTokenCookie:
			sawAdmin = c.MaxAge < 0
		}
		if c.MaxAge >= 0 {
			next.AddCookie(c)
		}
	}
	if !sawAccess || !sawAdmin {
		t.Fatalf("expected access_token set and admin_token expired; cookies=%v", rec.Result().Cookies())
	}

	var got *auth.SessionUser
	sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	})).ServeHTTP(httptest.NewRecorder(), next)

	if got == nil {
		t.Fatal("expected user after sign in")
	}
	if got.Name != "Ayesha Khan" || got.Email != "ayesha@example.com" || got.Role != "superadmin" || got.ID != "a1" {
		t.Errorf("unexpected profile: %+v", got)
	}
	if !got.IsSuperAdmin() {
		t.Error("expected IsSuperAdmin")
	}
}

func TestSignIn_EmptyToken(t *testing.T) {
	sm := newTestSessionManager(t)
	err := sm.SignIn(httptest.NewRecorder(), httptest.NewRequest("POST", "/login", nil), "", auth.SessionUser{})
	if err == nil {
		t.Error("expected error for empty token")
	}
}

func TestSignOut_ExpiresCookies(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	sm.SignOut(rec, httptest.NewRequest("POST", "/logout", nil))

	expired := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			expired[c.Name] = true
		}
	}
	for _, name := range []string{auth.AdminTokenCookie, auth.AccessTokenCookie, "test-session"} {
		if !expired[name] {
			t.Errorf("expected cookie %q to be expired", name)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := (&auth.SessionUser{Email: "x@example.com", Role: "admin"}).DisplayName(); got != "x@example.com" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := (&auth.SessionUser{Role: "admin"}).DisplayName(); got != "admin" {
		t.Errorf("DisplayName = %q", got)
	}
}

func TestLoadSessionUser_BareCookieCannotReachSuperAdminRoutes(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.LoadSessionUser(sm.RequireRole("superadmin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	for _, name := range []string{auth.AccessTokenCookie, auth.AdminTokenCookie} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/audit", nil)
			req.AddCookie(&http.Cookie{Name: name, Value: "forged"})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code == http.StatusOK {
				t.Fatalf("cookie %s without a signed session reached a superadmin route", name)
			}
		})
	}
}
