package bootstrap

import (
	"context"
	"testing"
	"time"
)

func TestStopBackground_StopsPollerAndIsIdempotent(t *testing.T) {
	ran := make(chan struct{})
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	background.mu.Lock()
	background.cancel, background.done = cancel, done
	background.mu.Unlock()

	go func() {
		defer close(done)
		close(ran)
		<-runCtx.Done()
	}()
	<-ran

	ctx, stop := context.WithTimeout(context.Background(), time.Second)
	defer stop()
	stopBackground(ctx)

	select {
	case <-done:
	default:
		t.Fatal("poller goroutine still running after stopBackground")
	}

	stopBackground(ctx)
	if background.cancel != nil || background.cleanup != nil {
		t.Error("background state should be cleared")
	}
}
