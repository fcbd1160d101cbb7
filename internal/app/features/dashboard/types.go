// internal/app/features/dashboard/types.go
package dashboard

import (
	"sort"
	"strconv"

	"github.com/dalemusser/tankerhub/internal/app/store/activity"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const latestBookings = 5

// unavailable stands in for a figure whose source failed.
const unavailable = "—"

// metric is one figure on a dashboard card.
type metric struct {
	Value  int
	Failed bool
}

func (m metric) String() string {
	if m.Failed {
		return unavailable
	}
	return strconv.Itoa(m.Value)
}

type statusCount struct {
	Status string
	Count  int
}

type dashboardData struct {
	viewdata.BaseVM

	Customers        metric
	DriversAvailable metric
	TankersActive    metric
	OpenComplaints   metric
	LowSensors       metric
	Threshold        float64

	BookingsByStatus []statusCount
	BookingsFailed   bool
	Revenue          string
	Latest           []models.Booking

	ShowOnline   bool
	OnlineFailed bool
	Online       []activity.Session
}

// byStatus counts bookings per status in lifecycle order.
func byStatus(all []models.Booking) []statusCount {
	counts := make(map[string]int, len(models.BookingStatuses))
	for _, b := range all {
		counts[b.Status]++
	}
	out := make([]statusCount, 0, len(models.BookingStatuses))
	for _, s := range models.BookingStatuses {
		out = append(out, statusCount{Status: s, Count: counts[s]})
	}
	return out
}

// deliveredRevenue sums the price of delivered bookings.
func deliveredRevenue(all []models.Booking) float64 {
	var sum float64
	for _, b := range all {
		if b.Status == models.BookingDelivered {
			sum += b.Price
		}
	}
	return sum
}

// latest returns the n most recently created bookings.
func latest(all []models.Booking, n int) []models.Booking {
	out := append([]models.Booking(nil), all...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func countIf[T any](items []T, keep func(T) bool) int {
	n := 0
	for _, it := range items {
		if keep(it) {
			n++
		}
	}
	return n
}
