package sensors

import (
	"testing"

	"github.com/dalemusser/tankerhub/internal/domain/models"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name   string
		sensor models.Sensor
		want   string
	}{
		{"below threshold", models.Sensor{LevelPercent: 5, Status: models.SensorOnline}, levelLow},
		{"at threshold", models.Sensor{LevelPercent: 20, Status: models.SensorOnline}, levelLow},
		{"above threshold", models.Sensor{LevelPercent: 20.5, Status: models.SensorOnline}, levelNormal},
		{"offline wins", models.Sensor{LevelPercent: 3, Status: models.SensorOffline}, levelOffline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := level(tt.sensor, 20); got != tt.want {
				t.Errorf("level: got %q, want %q", got, tt.want)
			}
		})
	}
}
