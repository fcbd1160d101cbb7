// internal/app/system/sensorfeed/poller.go
package sensorfeed

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"go.uber.org/zap"
)

// Source lists sensors with the token carried by ctx.
type Source interface {
	List(ctx context.Context) ([]models.Sensor, error)
}

// Reading is one sensor in a snapshot.
type Reading struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	DeviceID      string    `json:"deviceId"`
	Location      string    `json:"location,omitempty"`
	LevelPercent  float64   `json:"level"`
	Liters        int       `json:"liters"`
	Status        string    `json:"status"`
	Low           bool      `json:"low"`
	LastReadingAt time.Time `json:"lastReadingAt"`
}

// Snapshot is the message pushed to subscribers.
type Snapshot struct {
	Type      string    `json:"type"`
	At        time.Time `json:"at"`
	Threshold float64   `json:"threshold"`
	Low       int       `json:"low"`
	Sensors   []Reading `json:"sensors"`
}

type state struct {
	level  float64
	status string
}

// Poller fetches sensors on an interval and broadcasts a snapshot to the
// hub whenever any sensor's level or status changed.
type Poller struct {
	src       Source
	hub       *Hub
	interval  time.Duration
	threshold float64
	timeout   time.Duration
	log       *zap.Logger
	now       func() time.Time

	prev map[string]state
}

// NewPoller wires a poller. threshold is the low-level percent.
func NewPoller(src Source, hub *Hub, interval time.Duration, threshold float64, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		src:       src,
		hub:       hub,
		interval:  interval,
		threshold: threshold,
		timeout:   10 * time.Second,
		log:       logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run polls until ctx is done. A new subscriber triggers an immediate poll.
func (p *Poller) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.log.Info("sensor live feed disabled")
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("sensor live feed started", zap.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			p.log.Info("sensor live feed stopped")
			return
		case <-ticker.C:
		case <-p.hub.Joined():
		}
		if _, err := p.Poll(ctx); err != nil {
			p.log.Warn("sensor poll failed", zap.Error(err))
		}
	}
}

// Poll fetches once and broadcasts if something changed. With no
// subscribers it does nothing. It reports whether a snapshot was sent.
func (p *Poller) Poll(ctx context.Context) (bool, error) {
	token := p.hub.Token()
	if token == "" {
		p.prev = nil
		return false, nil
	}

	ctx, cancel := context.WithTimeout(backend.WithToken(ctx, token), p.timeout)
	defer cancel()

	sensors, err := p.src.List(ctx)
	if err != nil {
		if backend.IsUnauthorized(err) {
			n := p.hub.DropToken(token)
			p.log.Info("live feed token rejected; subscribers dropped", zap.Int("count", n))
			return false, nil
		}
		return false, err
	}

	cur := make(map[string]state, len(sensors))
	for _, s := range sensors {
		cur[s.ID] = state{level: s.LevelPercent, status: s.Status}
	}
	if p.prev != nil && p.hub.Last() != nil && sameStates(p.prev, cur) {
		return false, nil
	}
	p.prev = cur

	msg, err := json.Marshal(p.snapshot(sensors))
	if err != nil {
		return false, err
	}
	p.hub.Broadcast(msg)
	return true, nil
}

func (p *Poller) snapshot(sensors []models.Sensor) Snapshot {
	snap := Snapshot{
		Type:      "snapshot",
		At:        p.now(),
		Threshold: p.threshold,
		Sensors:   make([]Reading, 0, len(sensors)),
	}
	for _, s := range sensors {
		low := s.IsLow(p.threshold)
		if low {
			snap.Low++
		}
		snap.Sensors = append(snap.Sensors, Reading{
			ID:            s.ID,
			Name:          s.Name,
			DeviceID:      s.DeviceID,
			Location:      s.Location,
			LevelPercent:  s.LevelPercent,
			Liters:        s.Liters(),
			Status:        s.Status,
			Low:           low,
			LastReadingAt: s.LastReadingAt,
		})
	}
	// lowest tanks first
	sort.SliceStable(snap.Sensors, func(i, j int) bool {
		return snap.Sensors[i].LevelPercent < snap.Sensors[j].LevelPercent
	})
	return snap
}

func sameStates(a, b map[string]state) bool {
	if len(a) != len(b) {
		return false
	}
	for id, s := range a {
		if t, ok := b[id]; !ok || t != s {
			return false
		}
	}
	return true
}
