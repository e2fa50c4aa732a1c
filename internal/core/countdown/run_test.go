package countdown

import (
	"context"
	"testing"
	"time"

	"wakealarm/internal/core/clock"
	"wakealarm/internal/xslog"
)

type runHarness struct {
	t       *testing.T
	clock   *clock.Manual
	machine *Machine
	events  <-chan Event
	done    chan struct{}
	cancel  context.CancelFunc
}

func startRun(t *testing.T) *runHarness {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	machine := New(Config{TickInterval: time.Second, Clock: clk, Logger: xslog.Discard()})
	ctx, cancel := context.WithCancel(context.Background())
	h := &runHarness{
		t:       t,
		clock:   clk,
		machine: machine,
		events:  machine.Subscribe(64),
		done:    make(chan struct{}),
		cancel:  cancel,
	}
	go func() {
		defer close(h.done)
		_ = machine.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
	return h
}

func (h *runHarness) waitArmed() {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.clock.BlockUntil(ctx, 1); err != nil {
		h.t.Fatalf("tick timer never armed: %v", err)
	}
}

func (h *runHarness) waitEvent(want EventType) Event {
	h.t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case event := <-h.events:
			if event.Type == want {
				return event
			}
		case <-timeout:
			h.t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func (h *runHarness) waitDisarmed() {
	h.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.clock.Waiters() != 0 {
		if time.Now().After(deadline) {
			h.t.Fatal("tick timer still armed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRunDrivesCountdownToCompletion(t *testing.T) {
	h := startRun(t)
	completed := make(chan Session, 2)
	h.machine.SetOnComplete(func(session Session) { completed <- session })

	if err := h.machine.Start("Alex", 0.1); err != nil {
		t.Fatal(err)
	}
	h.waitEvent(EventStarted)

	for i := 5; i >= 1; i-- {
		h.waitArmed()
		h.clock.Advance(time.Second)
		if event := h.waitEvent(EventTick); event.Remaining != i {
			t.Fatalf("tick remaining = %d, want %d", event.Remaining, i)
		}
	}
	h.waitArmed()
	h.clock.Advance(time.Second)
	h.waitEvent(EventCompleted)

	select {
	case session := <-completed:
		if session.Owner != "Alex" {
			t.Fatalf("completed owner = %q", session.Owner)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completion handler not called")
	}

	h.waitDisarmed()
	h.clock.Advance(10 * time.Second)
	select {
	case session := <-completed:
		t.Fatalf("second completion: %+v", session)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestRunStopsTickingWhilePaused(t *testing.T) {
	h := startRun(t)

	if err := h.machine.Start("Sam", 5); err != nil {
		t.Fatal(err)
	}
	h.waitArmed()
	h.clock.Advance(time.Second)
	h.waitEvent(EventTick)

	h.waitArmed()
	h.machine.PauseResume()
	h.waitDisarmed()
	h.clock.Advance(3 * time.Second)
	if got := h.machine.Snapshot().Remaining; got != 299 {
		t.Fatalf("remaining while paused = %d, want 299", got)
	}

	h.machine.PauseResume()
	h.waitArmed()
	h.clock.Advance(time.Second)
	if event := h.waitEvent(EventTick); event.Remaining != 298 {
		t.Fatalf("remaining after resume = %d", event.Remaining)
	}
}

func TestRunResetCancelsPendingTick(t *testing.T) {
	h := startRun(t)

	if err := h.machine.Start("Alex", 0.1); err != nil {
		t.Fatal(err)
	}
	h.waitArmed()
	h.machine.Reset()
	h.waitDisarmed()

	h.clock.Advance(10 * time.Second)
	if snapshot := h.machine.Snapshot(); snapshot.Status != StatusIdle || snapshot.Remaining != 0 {
		t.Fatalf("state after reset = %+v", snapshot)
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	t.Parallel()

	machine := New(Config{Clock: clock.NewManual(time.Unix(0, 0)), Logger: xslog.Discard()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- machine.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
