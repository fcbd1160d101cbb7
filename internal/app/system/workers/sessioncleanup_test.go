package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeCloser struct {
	calls     atomic.Int32
	threshold time.Duration
	n         int64
	err       error
}

func (f *fakeCloser) CloseInactive(_ context.Context, threshold time.Duration) (int64, error) {
	f.calls.Add(1)
	f.threshold = threshold
	return f.n, f.err
}

func TestSessionCleanup_Cleanup(t *testing.T) {
	f := &fakeCloser{n: 3}
	w := NewSessionCleanup(f, zap.NewNop(), time.Hour, 30*time.Minute)

	if got := w.Cleanup(); got != 3 {
		t.Errorf("expected 3 closed, got %d", got)
	}
	if f.threshold != 30*time.Minute {
		t.Errorf("expected threshold to be passed through, got %v", f.threshold)
	}

	f.err = errors.New("mongo down")
	if got := w.Cleanup(); got != 0 {
		t.Errorf("expected 0 on error, got %d", got)
	}
}

func TestSessionCleanup_TicksUntilStopped(t *testing.T) {
	f := &fakeCloser{}
	w := NewSessionCleanup(f, nil, 5*time.Millisecond, time.Minute)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for f.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if f.calls.Load() < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", f.calls.Load())
	}
	after := f.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if f.calls.Load() != after {
		t.Error("expected no ticks after Stop")
	}
}
