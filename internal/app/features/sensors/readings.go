// internal/app/features/sensors/readings.go
package sensors

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// maxReadings caps the history table.
const maxReadings = 200

// ServeReadings shows one sensor with its recorded samples. A sensor
// without history still renders.
func (h *Handler) ServeReadings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "sensor readings")
	defer cancel()

	var (
		s        models.Sensor
		readings []models.SensorReading
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { s, err = h.Sensors.Get(gctx, id); return })
	g.Go(func() (err error) { readings, err = h.Sensors.Readings(gctx, id); return })
	if err := g.Wait(); err != nil {
		h.ErrLog.LogServerError(w, r, "load sensor readings failed", err, "Unable to load the sensor.", "/sensors")
		return
	}
	if len(readings) > maxReadings {
		readings = readings[:maxReadings]
	}

	data := readingsData{
		BaseVM:    viewdata.NewBaseVM(w, r, s.Name, "/sensors"),
		Sensor:    s,
		Readings:  readings,
		Threshold: h.Threshold,
		Low:       s.IsLow(h.Threshold),
	}
	templates.Render(w, r, "sensor_readings", data)
}
