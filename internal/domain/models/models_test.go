package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCanTransitionBooking(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingDelivered, false},
		{BookingConfirmed, BookingDispatched, true},
		{BookingDispatched, BookingDelivered, true},
		{BookingDelivered, BookingCancelled, false},
		{BookingCancelled, BookingPending, false},
		{"", BookingConfirmed, false},
	}
	for _, tt := range tests {
		if got := CanTransitionBooking(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionBooking(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNextBookingStatuses_Terminal(t *testing.T) {
	if got := NextBookingStatuses(BookingDelivered); len(got) != 0 {
		t.Errorf("delivered should be terminal, got %v", got)
	}
	if got := NextBookingStatuses(BookingCancelled); len(got) != 0 {
		t.Errorf("cancelled should be terminal, got %v", got)
	}
}

func TestCanTransitionComplaint(t *testing.T) {
	if !CanTransitionComplaint(ComplaintOpen, ComplaintInProgress) {
		t.Error("open -> in_progress should be allowed")
	}
	if CanTransitionComplaint(ComplaintResolved, ComplaintOpen) {
		t.Error("resolved is terminal")
	}
	if !(Complaint{Status: ComplaintRejected}).IsClosed() {
		t.Error("rejected complaint should be closed")
	}
}

func TestSensorIsLow(t *testing.T) {
	s := Sensor{LevelPercent: 20, Status: SensorOnline, TankCapacity: 1000, LastReadingAt: time.Now()}
	if !s.IsLow(20) {
		t.Error("level equal to threshold should be low")
	}
	if s.IsLow(19.5) {
		t.Error("level above threshold should not be low")
	}
	s.Status = SensorOffline
	if !s.IsLow(50) {
		t.Error("offline sensor should be judged on its last level")
	}
	if !s.IsOffline() {
		t.Error("IsOffline() = false for an offline sensor")
	}
	if got := (Sensor{TankCapacity: 2000, LevelPercent: 25}).Liters(); got != 500 {
		t.Errorf("Liters() = %d, want 500", got)
	}
}

func TestAdminIsActive(t *testing.T) {
	if !(Admin{}).IsActive() {
		t.Error("blank status should be active")
	}
	if (Admin{Status: StatusDisabled}).IsActive() {
		t.Error("disabled admin should not be active")
	}
}

func TestStatusHelpersIgnoreCase(t *testing.T) {
	if !CanTransitionBooking("Pending", "CONFIRMED") {
		t.Error("Pending -> CONFIRMED should be allowed")
	}
	if got := NextBookingStatuses(" Dispatched "); len(got) != 2 {
		t.Errorf("NextBookingStatuses(Dispatched) = %v", got)
	}
	if !(Booking{Status: "Confirmed"}).IsAssignable() {
		t.Error("Confirmed booking should be assignable")
	}
	if !CanTransitionComplaint("In_Progress", "Resolved") {
		t.Error("In_Progress -> Resolved should be allowed")
	}
	if !(Complaint{Status: "REJECTED"}).IsClosed() {
		t.Error("REJECTED complaint should be closed")
	}
	if !(Tanker{Status: "Active"}).IsActive() {
		t.Error("Active tanker should be active")
	}
}

func TestTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{`"2024-05-01T10:30:00Z"`, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{`"2024-05-01T10:30:00.250+05:00"`, time.Date(2024, 5, 1, 5, 30, 0, 250e6, time.UTC)},
		{`"2024-05-01T10:30:00"`, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{`"2024-05-01 10:30:00"`, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{`"2024-05-01"`, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{`1714559400000`, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{`""`, time.Time{}},
		{`null`, time.Time{}},
		{`"soon"`, time.Time{}},
	}
	for _, tt := range tests {
		var got Time
		if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.raw, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tt.raw, got.Time, tt.want)
		}
	}
}

func TestBookingList_LenientDatesAndStatus(t *testing.T) {
	raw := `[
		{"_id":"b1","status":"Pending","scheduledAt":"2024-05-01","createdAt":""},
		{"_id":"b2","status":"delivered","scheduledAt":"2024-05-02T08:00:00Z","createdAt":null,"price":1500}
	]`
	var got []Booking
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d bookings, want 2", len(got))
	}
	if got[0].Status != BookingPending {
		t.Errorf("status = %q, want %q", got[0].Status, BookingPending)
	}
	if !got[0].ScheduledAt.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("scheduledAt = %v", got[0].ScheduledAt)
	}
	if !got[0].CreatedAt.IsZero() || !got[1].CreatedAt.IsZero() {
		t.Error("blank and null createdAt should decode to the zero time")
	}
	if got[1].ID != "b2" || got[1].Price != 1500 {
		t.Errorf("other fields lost: %+v", got[1])
	}
}

func TestSensorDecode_FoldsStatus(t *testing.T) {
	var s Sensor
	if err := json.Unmarshal([]byte(`{"_id":"s1","status":"OFFLINE","lastReadingAt":"2024-05-01","waterLevel":12}`), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !s.IsOffline() || s.LastReadingAt.IsZero() {
		t.Errorf("decoded sensor = %+v", s)
	}
}
