package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// RecordedRequest is one call received by a FakeBackend.
type RecordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

type cannedResponse struct {
	status int
	body   string
}

// FakeBackend is an httptest server standing in for the REST API. It
// answers with canned JSON per method and path and records every request.
// Unregistered routes answer 404.
type FakeBackend struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]cannedResponse
	requests  []RecordedRequest
}

// NewFakeBackend starts a fake API that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{responses: make(map[string]cannedResponse)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// Handle registers a response. body is marshaled to JSON unless it is
// already a string.
func (f *FakeBackend) Handle(method, path string, status int, body any) {
	var raw string
	switch b := body.(type) {
	case nil:
	case string:
		raw = b
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		raw = string(buf)
	}
	f.mu.Lock()
	f.responses[method+" "+path] = cannedResponse{status: status, body: raw}
	f.mu.Unlock()
}

// JSON registers a 200 response.
func (f *FakeBackend) JSON(method, path string, body any) {
	f.Handle(method, path, http.StatusOK, body)
}

// Requests returns a copy of the requests received so far.
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Last returns the most recent request for method and path.
func (f *FakeBackend) Last(method, path string) (RecordedRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if r := f.requests[i]; r.Method == method && r.Path == path {
			return r, true
		}
	}
	return RecordedRequest{}, false
}

// Called reports whether method and path were requested at least once.
func (f *FakeBackend) Called(method, path string) bool {
	_, ok := f.Last(method, path)
	return ok
}

// Client returns a backend client pointed at the fake.
func (f *FakeBackend) Client(t *testing.T) *backend.Client {
	t.Helper()
	c, err := backend.New(f.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("backend client: %v", err)
	}
	return c
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	rec := RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
	}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	resp, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
		return
	}
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}
