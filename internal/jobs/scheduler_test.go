package jobs

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(testLogger())

	var runs atomic.Int32
	if err := s.Every("count", time.Hour, func(ctx context.Context) { runs.Add(1) }); err != nil {
		t.Fatalf("Every() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("job did not run on start")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	s := NewScheduler(testLogger())

	var active, maxActive atomic.Int32
	release := make(chan struct{})
	s.Every("slow", time.Second, func(ctx context.Context) {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		select {
		case <-release:
		case <-ctx.Done():
		}
		active.Add(-1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// let at least two ticks fire while the first run is blocked
	time.Sleep(2500 * time.Millisecond)
	close(release)
	cancel()
	<-done

	if maxActive.Load() != 1 {
		t.Errorf("max concurrent runs = %d, want 1", maxActive.Load())
	}
}

func TestScheduler_RejectsZeroInterval(t *testing.T) {
	if err := NewScheduler(testLogger()).Every("bad", 0, func(context.Context) {}); err == nil {
		t.Error("expected error for zero interval")
	}
}
