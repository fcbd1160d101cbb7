// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Toucher records activity on a dashboard session.
type Toucher interface {
	Touch(ctx context.Context, id, page string) (bool, error)
}

// Handler keeps activity sessions alive while an admin has a page open.
type Handler struct {
	Activity Toucher
	Log      *zap.Logger
}

func NewHandler(activity Toucher, logger *zap.Logger) *Handler {
	return &Handler{
		Activity: activity,
		Log:      logger,
	}
}

// heartbeatRequest is the JSON body for the heartbeat endpoint.
type heartbeatRequest struct {
	Page string `json:"page"`
}

// ServeHeartbeat handles POST /api/heartbeat. It always answers 204:
// activity tracking never fails a page.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if r.Body != nil {
		_ = json.NewDecoder(io.LimitReader(r.Body, 4<<10)).Decode(&req) // page is optional
	}
	h.touch(r, cleanPage(req.Page))
	w.WriteHeader(http.StatusNoContent)
}

// Track touches the session of the signed-in admin on every page load.
// Mount it after LoadSessionUser.
func (h *Handler) Track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.Header.Get("HX-Request") == "" && !untracked(r.URL.Path) {
			h.touch(r, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) touch(r *http.Request, page string) {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ActivityID == "" || h.Activity == nil {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := h.Activity.Touch(ctx, u.ActivityID, page); err != nil {
		h.Log.Warn("touch activity session failed",
			zap.Error(err),
			zap.String("session_id", u.ActivityID))
	}
}

// untracked paths are polled or fetched by the browser in the background.
func untracked(path string) bool {
	for _, p := range []string{"/static/", "/api/", "/health", "/metrics", "/sensors/live"} {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// cleanPage keeps only a local path.
func cleanPage(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return ""
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if len(p) > 200 {
		p = p[:200]
	}
	return p
}
