package worker

import (
	"context"
	"testing"
	"time"

	"github.com/yangwenmai/minutes/internal/session"
)

func TestSweepEvictsOnlyIdleSessions(t *testing.T) {
	reg := session.NewRegistry()
	reg.Create("a.mp3")
	reg.Create("b.mp3")

	r := New(reg, time.Hour, time.Minute)

	// Half an hour of idle time is within the TTL.
	r.now = func() time.Time { return time.Now().Add(30 * time.Minute) }
	r.sweep()
	if got := reg.Count(); got != 2 {
		t.Fatalf("Count after early sweep = %d, want 2", got)
	}

	// Two hours of idle time is past the TTL.
	r.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	r.sweep()
	if got := reg.Count(); got != 0 {
		t.Fatalf("Count after late sweep = %d, want 0", got)
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	reg := session.NewRegistry()
	r := New(reg, time.Hour, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}
