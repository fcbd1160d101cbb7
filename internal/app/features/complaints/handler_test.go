package complaints_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/tankerhub/internal/app/features/complaints"
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*complaints.Handler, *testutil.FakeBackend) {
	t.Helper()
	api := testutil.NewFakeBackend(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger, nil, nil)
	return complaints.NewHandler(api.Client(t), errLog, nil, logger), api
}

func serveComplaint(api *testutil.FakeBackend, status string) {
	api.JSON(http.MethodGet, "/api/complain/k1", map[string]any{"_id": "k1", "subject": "Late", "status": status})
	api.JSON(http.MethodPatch, "/api/complain/k1/status", map[string]any{"_id": "k1"})
}

func postStatus(t *testing.T, h *complaints.Handler, form url.Values) *testutil.ResponseRecorder {
	t.Helper()
	form.Set("return", "/complaints/k1")
	req := testutil.NewFormRequest("/complaints/k1/status", form, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "k1")
	rec := testutil.NewRecorder()
	h.HandleStatus(rec, req)
	return rec
}

func TestHandleStatus_ResolveWithResponse(t *testing.T) {
	handler, api := newTestHandler(t)
	serveComplaint(api, models.ComplaintInProgress)

	rec := postStatus(t, handler, url.Values{
		"status":   {"resolved"},
		"response": {`Refund issued.<img src=x onerror="alert(1)">`},
	})

	rec.AssertRedirect(t, "/complaints/k1")
	got, ok := api.Last(http.MethodPatch, "/api/complain/k1/status")
	if !ok {
		t.Fatal("expected status call to backend")
	}
	if got.Body["status"] != "resolved" {
		t.Errorf("status: got %v", got.Body["status"])
	}
	if resp, _ := got.Body["response"].(string); strings.Contains(resp, "onerror") {
		t.Errorf("response not sanitised: %q", resp)
	}
}

func TestHandleStatus_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		form   url.Values
		getHit bool
	}{
		{"closing needs a response", models.ComplaintOpen, url.Values{"status": {"resolved"}}, false},
		{"unknown status", models.ComplaintOpen, url.Values{"status": {"closed"}, "response": {"x"}}, false},
		{"resolved is terminal", models.ComplaintResolved, url.Values{"status": {"in_progress"}}, true},
		{"cannot reopen", models.ComplaintInProgress, url.Values{"status": {"open"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, api := newTestHandler(t)
			serveComplaint(api, tt.from)

			rec := postStatus(t, handler, tt.form)

			rec.AssertRedirect(t, "/complaints/k1")
			if api.Called(http.MethodPatch, "/api/complain/k1/status") {
				t.Error("status change should not reach the backend")
			}
			if got := api.Called(http.MethodGet, "/api/complain/k1"); got != tt.getHit {
				t.Errorf("complaint fetched = %v, want %v", got, tt.getHit)
			}
		})
	}
}

func TestHandleStatus_StartWork(t *testing.T) {
	handler, api := newTestHandler(t)
	serveComplaint(api, models.ComplaintOpen)

	rec := postStatus(t, handler, url.Values{"status": {"in_progress"}})

	rec.AssertRedirect(t, "/complaints/k1")
	if !api.Called(http.MethodPatch, "/api/complain/k1/status") {
		t.Error("expected status call to backend")
	}
}

func TestHandleDelete(t *testing.T) {
	handler, api := newTestHandler(t)
	api.Handle(http.MethodDelete, "/api/complain/k1", http.StatusOK, `{"success":true}`)

	req := testutil.NewFormRequest("/complaints/k1/delete", url.Values{}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "k1")
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/complaints")
}

func TestServeList_LoadsCollection(t *testing.T) {
	handler, api := newTestHandler(t)
	testutil.NewFixtures(t, api).Complaints(6)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/complaints?status=open&q=late", testutil.AdminUser())
	rec := testutil.NewRecorder()
	testutil.Render(t, func() { handler.ServeList(rec, req) })

	if !api.Called(http.MethodGet, "/api/complain/all") {
		t.Error("expected list call to backend")
	}
}
