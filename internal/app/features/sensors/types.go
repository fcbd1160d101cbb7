// internal/app/features/sensors/types.go
package sensors

import (
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const tableID = "sensors-table-wrap"

// Level buckets used as the list's status tabs.
const (
	levelLow     = "low"
	levelNormal  = "normal"
	levelOffline = "offline"
)

var levels = []string{levelLow, levelNormal, levelOffline}

type listData struct {
	viewdata.BaseVM
	listing.View[models.Sensor]

	Threshold float64
	Live      bool // live feed is enabled
}

type readingsData struct {
	viewdata.BaseVM

	Sensor    models.Sensor
	Readings  []models.SensorReading
	Threshold float64
	Low       bool
}

type formData struct {
	formutil.Base

	ID           string
	Action       string
	DeviceID     string
	Name         string
	CustomerID   string
	Location     string
	TankCapacity string
	Status       string
	Statuses     []string
	Customers    []models.Customer
}

// sensorInput defines validation rules for creating or editing a sensor.
type sensorInput struct {
	DeviceID     string `validate:"required,max=64" label:"Device ID"`
	Name         string `validate:"required,max=100" label:"Name"`
	Location     string `validate:"max=200" label:"Location"`
	TankCapacity int    `validate:"gt=0" label:"Tank capacity"`
	Status       string `validate:"omitempty,oneof=online offline" label:"Status"`
}

// level buckets a sensor for the tabs and badges.
func level(s models.Sensor, threshold float64) string {
	switch {
	case s.IsOffline():
		return levelOffline
	case s.IsLow(threshold):
		return levelLow
	}
	return levelNormal
}

func sensorSpec(threshold float64) listing.Spec[models.Sensor] {
	return listing.Spec[models.Sensor]{
		Text: func(s models.Sensor) []string {
			return []string{s.Name, s.DeviceID, s.Location, s.CustomerName}
		},
		Status: func(s models.Sensor) string { return level(s, threshold) },
		Sorts: map[string]func(a, b models.Sensor) int{
			"name":     listing.ByString(func(s models.Sensor) string { return s.Name }),
			"device":   listing.ByString(func(s models.Sensor) string { return s.DeviceID }),
			"level":    listing.ByNumber(func(s models.Sensor) float64 { return s.LevelPercent }),
			"capacity": listing.ByNumber(func(s models.Sensor) int { return s.TankCapacity }),
			"reading":  listing.ByTime(func(s models.Sensor) time.Time { return s.LastReadingAt }),
		},
		DefaultSort: "level",
	}
}
