// internal/domain/models/sensor.go
package models

import (
	"encoding/json"
	"time"
)

// Sensor statuses.
const (
	SensorOnline  = "online"
	SensorOffline = "offline"
)

// Sensor is an IoT device reporting the water level of a customer tank.
type Sensor struct {
	ID            string    `json:"_id"`
	DeviceID      string    `json:"deviceId"`
	Name          string    `json:"name"`
	CustomerID    string    `json:"customerId,omitempty"`
	CustomerName  string    `json:"customerName,omitempty"`
	Location      string    `json:"location,omitempty"`
	TankCapacity  int       `json:"tankCapacity"`
	LevelPercent  float64   `json:"waterLevel"`
	Status        string    `json:"status"`
	LastReadingAt time.Time `json:"lastReadingAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IsLow reports whether the level is at or below threshold percent. An
// offline sensor is judged on its last reported level.
func (s Sensor) IsLow(threshold float64) bool {
	return s.LevelPercent <= threshold
}

// IsOffline reports whether the sensor has stopped reporting.
func (s Sensor) IsOffline() bool { return Key(s.Status) == SensorOffline }

// Liters estimates the volume in the tank from the level and capacity.
func (s Sensor) Liters() int {
	return int(float64(s.TankCapacity) * s.LevelPercent / 100)
}

// SensorReading is one sample reported by a sensor.
type SensorReading struct {
	SensorID     string    `json:"sensorId"`
	LevelPercent float64   `json:"waterLevel"`
	Liters       int       `json:"liters,omitempty"`
	RecordedAt   time.Time `json:"recordedAt"`
}

// UnmarshalJSON reads the date fields leniently (see Time) and folds
// the case of enumerated values.
func (s *Sensor) UnmarshalJSON(data []byte) error {
	type plain Sensor
	aux := struct {
		*plain
		LastReadingAt Time `json:"lastReadingAt"`
		CreatedAt     Time `json:"createdAt"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.LastReadingAt = aux.LastReadingAt.Time
	s.CreatedAt = aux.CreatedAt.Time
	s.Status = Key(s.Status)
	return nil
}

// UnmarshalJSON reads the date fields leniently (see Time).
func (s *SensorReading) UnmarshalJSON(data []byte) error {
	type plain SensorReading
	aux := struct {
		*plain
		RecordedAt Time `json:"recordedAt"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.RecordedAt = aux.RecordedAt.Time
	return nil
}
