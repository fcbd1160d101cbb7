package bookings_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/dalemusser/tankerhub/internal/app/features/bookings"
	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*bookings.Handler, *testutil.FakeBackend) {
	t.Helper()
	api := testutil.NewFakeBackend(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger, nil, nil)
	return bookings.NewHandler(api.Client(t), errLog, nil, logger), api
}

func validForm() url.Values {
	return url.Values{
		"customer_id":  {"c0001"},
		"address":      {"House 4, Model Town"},
		"phone":        {"0300 123-4567"},
		"liters":       {"6,000"},
		"price":        {"3500"},
		"scheduled_at": {"2026-03-15T10:00"},
	}
}

func TestHandleCreate_Success(t *testing.T) {
	handler, api := newTestHandler(t)
	api.JSON(http.MethodPost, "/api/bookings/create", map[string]any{"data": map[string]any{"_id": "b9"}})

	req := testutil.NewFormRequest("/bookings/new", validForm(), testutil.AdminUser())
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertRedirect(t, "/bookings")
	got, ok := api.Last(http.MethodPost, "/api/bookings/create")
	if !ok {
		t.Fatal("expected create call to backend")
	}
	if got.Body["customerId"] != "c0001" {
		t.Errorf("customerId: got %v", got.Body["customerId"])
	}
	if got.Body["quantity"] != float64(6000) {
		t.Errorf("quantity: got %v, want 6000", got.Body["quantity"])
	}
	if got.Body["phone"] != "03001234567" {
		t.Errorf("phone: got %v, want normalized", got.Body["phone"])
	}
}

func TestHandleCreate_ValidationBlocksBackendCall(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"missing customer", "customer_id", ""},
		{"missing address", "address", ""},
		{"zero liters", "liters", "0"},
		{"negative price", "price", "-1"},
		{"missing schedule", "scheduled_at", ""},
		{"malformed schedule", "scheduled_at", "tomorrow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, api := newTestHandler(t)
			form := validForm()
			form.Set(tt.field, tt.value)
			req := testutil.NewFormRequest("/bookings/new", form, testutil.AdminUser())
			rec := testutil.NewRecorder()

			testutil.Render(t, func() { handler.HandleCreate(rec, req) })

			if api.Called(http.MethodPost, "/api/bookings/create") {
				t.Error("backend should not be called when validation fails")
			}
		})
	}
}

func TestHandleEdit_KeepsCustomerFilter(t *testing.T) {
	handler, api := newTestHandler(t)
	api.JSON(http.MethodPut, "/api/bookings/b1", map[string]any{"_id": "b1"})

	form := validForm()
	form.Set("return", "/bookings?customer=c0001")
	req := testutil.NewFormRequest("/bookings/b1/edit", form, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "b1")
	rec := testutil.NewRecorder()
	handler.HandleEdit(rec, req)

	rec.AssertRedirect(t, "/bookings?customer=c0001")
	if !api.Called(http.MethodPut, "/api/bookings/b1") {
		t.Error("expected update call to backend")
	}
}

func TestHandleStatus(t *testing.T) {
	tests := []struct {
		name      string
		from, to  string
		wantPatch bool
	}{
		{"pending to confirmed", models.BookingPending, models.BookingConfirmed, true},
		{"confirmed to cancelled", models.BookingConfirmed, models.BookingCancelled, true},
		{"pending to delivered skips steps", models.BookingPending, models.BookingDelivered, false},
		{"delivered is terminal", models.BookingDelivered, models.BookingPending, false},
		{"cancelled is terminal", models.BookingCancelled, models.BookingConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, api := newTestHandler(t)
			testutil.NewFixtures(t, api).Booking(models.Booking{ID: "b1", Status: tt.from})
			api.JSON(http.MethodPatch, "/api/bookings/b1/status", map[string]any{"_id": "b1", "status": tt.to})

			form := url.Values{"status": {tt.to}, "return": {"/bookings/b1"}}
			req := testutil.NewFormRequest("/bookings/b1/status", form, testutil.AdminUser())
			req = testutil.WithChiURLParam(req, "id", "b1")
			rec := testutil.NewRecorder()
			handler.HandleStatus(rec, req)

			rec.AssertRedirect(t, "/bookings/b1")
			got, called := api.Last(http.MethodPatch, "/api/bookings/b1/status")
			if called != tt.wantPatch {
				t.Fatalf("status patch called = %v, want %v", called, tt.wantPatch)
			}
			if called && got.Body["status"] != tt.to {
				t.Errorf("status body: got %v, want %s", got.Body["status"], tt.to)
			}
		})
	}
}

func TestHandleAssign_Success(t *testing.T) {
	handler, api := newTestHandler(t)
	fx := testutil.NewFixtures(t, api)
	fx.Booking(models.Booking{ID: "b1", Status: models.BookingConfirmed})
	drivers := fx.Drivers(3)
	tankers := fx.Tankers(3)
	api.JSON(http.MethodPatch, "/api/bookings/b1/assign", map[string]any{"_id": "b1"})

	form := url.Values{"driver_id": {drivers[0].ID}, "tanker_id": {tankers[0].ID}}
	req := testutil.NewFormRequest("/bookings/b1/assign", form, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "b1")
	rec := testutil.NewRecorder()
	handler.HandleAssign(rec, req)

	rec.AssertRedirect(t, "/bookings")
	got, ok := api.Last(http.MethodPatch, "/api/bookings/b1/assign")
	if !ok {
		t.Fatal("expected assign call to backend")
	}
	if got.Body["driverId"] != drivers[0].ID || got.Body["tankerId"] != tankers[0].ID {
		t.Errorf("assign body: got %v", got.Body)
	}
}

func TestHandleAssign_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		status string
		driver int
		tanker int
	}{
		{"unavailable driver", models.BookingPending, 1, 0},
		{"tanker in maintenance", models.BookingPending, 0, 2},
		{"delivered booking", models.BookingDelivered, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, api := newTestHandler(t)
			fx := testutil.NewFixtures(t, api)
			fx.Booking(models.Booking{ID: "b1", Status: tt.status})
			drivers := fx.Drivers(3)
			tankers := fx.Tankers(3)

			form := url.Values{"driver_id": {drivers[tt.driver].ID}, "tanker_id": {tankers[tt.tanker].ID}}
			req := testutil.NewFormRequest("/bookings/b1/assign", form, testutil.AdminUser())
			req = testutil.WithChiURLParam(req, "id", "b1")
			rec := testutil.NewRecorder()
			handler.HandleAssign(rec, req)

			rec.AssertRedirect(t, "/bookings")
			if api.Called(http.MethodPatch, "/api/bookings/b1/assign") {
				t.Error("assign should not reach the backend")
			}
		})
	}
}

func TestHandleAssign_MissingChoice(t *testing.T) {
	handler, api := newTestHandler(t)

	req := testutil.NewFormRequest("/bookings/b1/assign", url.Values{"driver_id": {"d0000"}}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "b1")
	rec := testutil.NewRecorder()
	handler.HandleAssign(rec, req)

	rec.AssertRedirect(t, "/bookings")
	if len(api.Requests()) != 0 {
		t.Errorf("expected no backend calls, got %d", len(api.Requests()))
	}
}

func TestHandleDelete(t *testing.T) {
	handler, api := newTestHandler(t)
	api.Handle(http.MethodDelete, "/api/bookings/b1", http.StatusOK, `{"success":true}`)

	req := testutil.NewFormRequest("/bookings/b1/delete", url.Values{"return": {"/bookings?status=cancelled"}}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "b1")
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/bookings?status=cancelled")
	if !api.Called(http.MethodDelete, "/api/bookings/b1") {
		t.Error("expected delete call to backend")
	}
}

func TestServeList_CustomerFilter(t *testing.T) {
	handler, api := newTestHandler(t)
	testutil.NewFixtures(t, api).Bookings(5)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/bookings?customer=c0002", testutil.AdminUser())
	rec := testutil.NewRecorder()
	testutil.Render(t, func() { handler.ServeList(rec, req) })

	if !api.Called(http.MethodGet, "/api/bookings/all") {
		t.Error("expected list call to backend")
	}
}

func TestServeView_NotFound(t *testing.T) {
	handler, api := newTestHandler(t)
	api.Handle(http.MethodGet, "/api/bookings/missing", http.StatusNotFound, `{"message":"Booking not found"}`)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/bookings/missing", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "missing")
	rec := testutil.NewRecorder()
	testutil.Render(t, func() { handler.ServeView(rec, req) })

	rec.AssertStatus(t, http.StatusNotFound)
}
