package reports_test

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/features/reports"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*reports.Handler, *testutil.FakeBackend) {
	t.Helper()
	api := testutil.NewFakeBackend(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger, nil, nil)
	opts := reports.Options{Company: "Aqua Tankers", Currency: "PKR", Threshold: 20}
	return reports.NewHandler(api.Client(t), opts, errLog, nil, logger), api
}

func TestHandleGenerate_CSV(t *testing.T) {
	handler, api := newTestHandler(t)
	fx := testutil.NewFixtures(t, api)
	fx.Bookings(5)
	fx.Sensors(10, 80)

	form := url.Values{"sections": {"sensors", "bookings"}, "format": {"csv"}}
	req := testutil.NewFormRequest("/reports", form, testutil.AdminUser())
	rec := testutil.NewRecorder()
	handler.HandleGenerate(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type: got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".csv") {
		t.Errorf("Content-Disposition: got %q", cd)
	}

	r := csv.NewReader(bytes.NewReader(rec.Body.Bytes()))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	body := rec.Body.String()
	bi := strings.Index(body, "Bookings")
	si := strings.Index(body, "Sensors")
	if bi < 0 || si < 0 || bi > si {
		t.Errorf("expected bookings section before sensors section, got %d rows", len(rows))
	}
	if api.Called(http.MethodGet, "/api/driver/all") {
		t.Error("unselected sections must not be fetched")
	}
}

func TestHandleGenerate_PDFAndXLSX(t *testing.T) {
	for _, format := range []string{"pdf", "xlsx"} {
		t.Run(format, func(t *testing.T) {
			handler, api := newTestHandler(t)
			testutil.NewFixtures(t, api).Tankers(3)

			form := url.Values{"sections": {"tankers"}, "format": {format}}
			req := testutil.NewFormRequest("/reports", form, testutil.AdminUser())
			rec := testutil.NewRecorder()
			handler.HandleGenerate(rec, req)

			rec.AssertStatus(t, http.StatusOK)
			if rec.Body.Len() == 0 {
				t.Fatal("expected a non-empty document")
			}
			magic := map[string]string{"pdf": "%PDF", "xlsx": "PK"}[format]
			if !strings.HasPrefix(rec.Body.String(), magic) {
				t.Errorf("%s document should start with %q", format, magic)
			}
		})
	}
}

func TestHandleGenerate_ValidationBlocksBackendCall(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"no sections", url.Values{"format": {"pdf"}}},
		{"unknown section", url.Values{"sections": {"payroll"}, "format": {"pdf"}}},
		{"unknown format", url.Values{"sections": {"drivers"}, "format": {"docx"}}},
		{"reversed dates", url.Values{"sections": {"drivers"}, "format": {"pdf"}, "from": {"2026-03-10"}, "to": {"2026-03-01"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, api := newTestHandler(t)
			req := testutil.NewFormRequest("/reports", tt.form, testutil.AdminUser())
			rec := testutil.NewRecorder()
			testutil.Render(t, func() { handler.HandleGenerate(rec, req) })

			if len(api.Requests()) != 0 {
				t.Error("backend should not be called when validation fails")
			}
		})
	}
}

func TestHandleGenerate_UpstreamFailure(t *testing.T) {
	handler, api := newTestHandler(t)
	testutil.NewFixtures(t, api).Drivers(2)
	api.Handle(http.MethodGet, "/api/tankers/all", http.StatusInternalServerError, `{"message":"boom"}`)

	form := url.Values{"sections": {"drivers", "tankers"}, "format": {"csv"}}
	req := testutil.NewFormRequest("/reports", form, testutil.AdminUser())
	rec := testutil.NewRecorder()
	handler.HandleGenerate(rec, req)

	rec.AssertRedirect(t, "/reports")
}
