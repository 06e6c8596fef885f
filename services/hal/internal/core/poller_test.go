package core

import (
	"context"
	"testing"
	"time"
)

func TestPollerFiresAndStops(t *testing.T) {
	out := make(chan PollReq, 1)
	p := NewPoller(out)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	p.Upsert("a", 5*time.Millisecond, 0)
	select {
	case r := <-out:
		if r.DevID != "a" || r.Every != 5*time.Millisecond {
			t.Fatalf("req = %+v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("poller never fired")
	}

	p.Stop("a")
	// Drain anything already in flight, then expect silence.
	select {
	case <-out:
	case <-time.After(20 * time.Millisecond):
	}
	select {
	case r := <-out:
		t.Fatalf("fired after Stop: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPollerIgnoresBadSchedules(t *testing.T) {
	p := NewPoller(make(chan PollReq, 1))
	p.Upsert("", time.Millisecond, 0)
	p.Upsert("x", 0, 0)
	if p.nextWait() != -1 {
		t.Fatal("expected an empty schedule")
	}
}
