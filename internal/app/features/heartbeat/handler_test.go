package heartbeat_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/tankerhub/internal/app/features/heartbeat"
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"go.uber.org/zap"
)

type touch struct{ id, page string }

type fakeToucher struct {
	calls []touch
	err   error
}

func (f *fakeToucher) Touch(_ context.Context, id, page string) (bool, error) {
	f.calls = append(f.calls, touch{id, page})
	return f.err == nil, f.err
}

func signedIn(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{ID: "a1", Role: auth.RoleAdmin, Token: "t", ActivityID: "sess-1"})
}

func TestServeHeartbeat(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPage string
	}{
		{"page", `{"page":"/bookings"}`, "/bookings"},
		{"query stripped", `{"page":"/bookings?status=pending"}`, "/bookings"},
		{"external url ignored", `{"page":"https://evil.example/x"}`, ""},
		{"protocol relative ignored", `{"page":"//evil.example"}`, ""},
		{"bad json", `{`, ""},
		{"empty body", ``, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeToucher{}
			h := heartbeat.NewHandler(fake, zap.NewNop())

			req := signedIn(httptest.NewRequest(http.MethodPost, "/api/heartbeat", strings.NewReader(tc.body)))
			rec := httptest.NewRecorder()
			h.ServeHeartbeat(rec, req)

			if rec.Code != http.StatusNoContent {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusNoContent)
			}
			if len(fake.calls) != 1 {
				t.Fatalf("touch calls: got %d, want 1", len(fake.calls))
			}
			if fake.calls[0] != (touch{"sess-1", tc.wantPage}) {
				t.Errorf("touch: got %+v", fake.calls[0])
			}
		})
	}
}

func TestServeHeartbeat_NoActivitySession(t *testing.T) {
	fake := &fakeToucher{}
	h := heartbeat.NewHandler(fake, zap.NewNop())

	req := auth.WithTestUser(httptest.NewRequest(http.MethodPost, "/api/heartbeat", nil), &auth.SessionUser{Role: auth.RoleAdmin})
	rec := httptest.NewRecorder()
	h.ServeHeartbeat(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d", rec.Code)
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no touch without an activity session, got %d", len(fake.calls))
	}
}

func TestServeHeartbeat_StoreErrorIsSilent(t *testing.T) {
	fake := &fakeToucher{err: errors.New("mongo down")}
	h := heartbeat.NewHandler(fake, zap.NewNop())

	req := signedIn(httptest.NewRequest(http.MethodPost, "/api/heartbeat", strings.NewReader(`{"page":"/"}`)))
	rec := httptest.NewRecorder()
	h.ServeHeartbeat(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestTrack(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		htmx   bool
		want   int
	}{
		{"page load", http.MethodGet, "/drivers", false, 1},
		{"form post", http.MethodPost, "/drivers/new", false, 0},
		{"htmx refresh", http.MethodGet, "/drivers", true, 0},
		{"static", http.MethodGet, "/static/css/app.css", false, 0},
		{"health", http.MethodGet, "/health", false, 0},
		{"live feed", http.MethodGet, "/sensors/live", false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeToucher{}
			h := heartbeat.NewHandler(fake, zap.NewNop())

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

			req := signedIn(httptest.NewRequest(tc.method, tc.path, nil))
			if tc.htmx {
				req.Header.Set("HX-Request", "true")
			}
			h.Track(next).ServeHTTP(httptest.NewRecorder(), req)

			if !called {
				t.Error("next handler not called")
			}
			if len(fake.calls) != tc.want {
				t.Fatalf("touch calls: got %d, want %d", len(fake.calls), tc.want)
			}
			if tc.want == 1 && fake.calls[0].page != tc.path {
				t.Errorf("page: got %q, want %q", fake.calls[0].page, tc.path)
			}
		})
	}
}
