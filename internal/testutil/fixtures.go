package testutil

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/dalemusser/tankerhub/internal/domain/models"
)

// Fixtures registers canned backend collections on a FakeBackend.
type Fixtures struct {
	t   *testing.T
	api *FakeBackend
	now time.Time
}

// NewFixtures creates a new Fixtures instance for the given fake backend.
func NewFixtures(t *testing.T, api *FakeBackend) *Fixtures {
	t.Helper()
	return &Fixtures{t: t, api: api, now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

// Now is the reference time used for fixture dates.
func (f *Fixtures) Now() time.Time { return f.now }

// Customers serves n customers from /api/admin/customers; every third one
// is blocked.
func (f *Fixtures) Customers(n int) []models.Customer {
	f.t.Helper()
	out := make([]models.Customer, n)
	for i := range out {
		status := models.StatusActive
		if i%3 == 2 {
			status = models.StatusBlocked
		}
		out[i] = models.Customer{
			ID:        id("c", i),
			Name:      "Customer " + string(rune('A'+i%26)),
			Email:     "customer" + itoa(i) + "@example.com",
			Phone:     "0300" + pad(i, 7),
			City:      "Lahore",
			Status:    status,
			CreatedAt: f.now.AddDate(0, 0, -i),
		}
	}
	f.api.JSON(http.MethodGet, "/api/admin/customers", map[string]any{"data": out})
	return out
}

// Drivers serves drivers from /api/driver/all; even indexes are available.
func (f *Fixtures) Drivers(n int) []models.Driver {
	f.t.Helper()
	out := make([]models.Driver, n)
	for i := range out {
		out[i] = models.Driver{
			ID:            id("d", i),
			Name:          "Driver " + itoa(i),
			Phone:         "0311" + pad(i, 7),
			LicenseNumber: "LIC-" + pad(i, 4),
			Available:     i%2 == 0,
			Status:        models.StatusActive,
			CreatedAt:     f.now.AddDate(0, 0, -i),
		}
	}
	f.api.JSON(http.MethodGet, "/api/driver/all", out)
	return out
}

// Tankers serves tankers from /api/tankers/all; the last one is in
// maintenance.
func (f *Fixtures) Tankers(n int) []models.Tanker {
	f.t.Helper()
	out := make([]models.Tanker, n)
	for i := range out {
		status := models.TankerActive
		if i == n-1 && n > 1 {
			status = models.TankerMaintenance
		}
		out[i] = models.Tanker{
			ID:             id("t", i),
			PlateNumber:    "LEB-" + pad(i, 3),
			CapacityLiters: 6000 + 1000*i,
			Status:         status,
			CreatedAt:      f.now.AddDate(0, 0, -i),
		}
	}
	f.api.JSON(http.MethodGet, "/api/tankers/all", map[string]any{"success": true, "data": out})
	return out
}

// Bookings serves bookings from /api/bookings/all cycling through every
// status, one day apart.
func (f *Fixtures) Bookings(n int) []models.Booking {
	f.t.Helper()
	out := make([]models.Booking, n)
	for i := range out {
		out[i] = models.Booking{
			ID:           id("b", i),
			CustomerID:   id("c", i),
			CustomerName: "Customer " + string(rune('A'+i%26)),
			Address:      "House " + itoa(i) + ", Model Town",
			Liters:       6000,
			Price:        3500,
			Status:       models.BookingStatuses[i%len(models.BookingStatuses)],
			ScheduledAt:  f.now.AddDate(0, 0, -i),
			CreatedAt:    f.now.AddDate(0, 0, -i-1),
		}
	}
	f.api.JSON(http.MethodGet, "/api/bookings/all", map[string]any{"data": map[string]any{"bookings": out, "total": n}})
	return out
}

// Booking serves one booking from /api/bookings/{id}.
func (f *Fixtures) Booking(b models.Booking) {
	f.t.Helper()
	f.api.JSON(http.MethodGet, "/api/bookings/"+b.ID, map[string]any{"data": b})
}

// Sensors serves sensors with the given levels from /api/sensor/all.
func (f *Fixtures) Sensors(levels ...float64) []models.Sensor {
	f.t.Helper()
	out := make([]models.Sensor, len(levels))
	for i, lvl := range levels {
		out[i] = models.Sensor{
			ID:            id("s", i),
			DeviceID:      "DEV-" + pad(i, 3),
			Name:          "Tank " + itoa(i),
			TankCapacity:  1000,
			LevelPercent:  lvl,
			Status:        models.SensorOnline,
			LastReadingAt: f.now,
		}
	}
	f.api.JSON(http.MethodGet, "/api/sensor/all", out)
	return out
}

// Complaints serves complaints from /api/complain/all cycling statuses.
func (f *Fixtures) Complaints(n int) []models.Complaint {
	f.t.Helper()
	out := make([]models.Complaint, n)
	for i := range out {
		out[i] = models.Complaint{
			ID:           id("k", i),
			CustomerName: "Customer " + itoa(i),
			Subject:      "Late delivery " + itoa(i),
			Description:  "Tanker arrived late.",
			Status:       models.ComplaintStatuses[i%len(models.ComplaintStatuses)],
			CreatedAt:    f.now.AddDate(0, 0, -i),
		}
	}
	f.api.JSON(http.MethodGet, "/api/complain/all", out)
	return out
}

func id(prefix string, i int) string { return fmt.Sprintf("%s%04d", prefix, i) }

func itoa(i int) string { return strconv.Itoa(i) }

func pad(i, width int) string { return fmt.Sprintf("%0*d", width, i) }
