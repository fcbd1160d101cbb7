package toast_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"go.uber.org/zap"
)

func TestAddThenPopAcrossRedirect(t *testing.T) {
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	toast.Use(sm)
	t.Cleanup(func() { toast.Use(nil) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/tankers", nil)
	toast.Success(rec, req, "Tanker created.")
	toast.Error(rec, req, "  ")
	toast.Warning(rec, req, "Sensor feed paused.")

	// each Save writes a fresh cookie; the browser keeps the last one
	latest := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		latest[c.Name] = c
	}
	next := httptest.NewRequest("GET", "/tankers", nil)
	for _, c := range latest {
		next.AddCookie(c)
	}
	got := toast.Pop(httptest.NewRecorder(), next)
	if len(got) != 2 {
		t.Fatalf("Pop returned %d toasts, want 2: %+v", len(got), got)
	}
	if got[0] != (toast.Toast{Kind: toast.KindSuccess, Message: "Tanker created."}) {
		t.Errorf("first toast = %+v", got[0])
	}
	if got[1].Kind != toast.KindWarning {
		t.Errorf("second toast kind = %q", got[1].Kind)
	}
	if again := toast.Pop(httptest.NewRecorder(), next); len(again) != 0 {
		t.Errorf("second Pop in same request returned %+v", again)
	}
}

func TestNoSourceIsNoop(t *testing.T) {
	toast.Use(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	toast.Info(rec, req, "hello")
	if got := toast.Pop(rec, req); got != nil {
		t.Errorf("Pop without source = %+v", got)
	}
}
