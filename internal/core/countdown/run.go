package countdown

import (
	"context"
	"time"

	"wakealarm/internal/core/clock"
)

// Run is the tick producer. While a session is Running it arms one timer per
// countdown second; otherwise it sleeps until a command wakes it. Run returns
// when ctx is cancelled.
func (machine *Machine) Run(ctx context.Context) error {
	var (
		timer   clock.Timer
		armedID string
	)
	disarm := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			armedID = ""
		}
	}
	defer disarm()

	for {
		snapshot := machine.Snapshot()
		running := snapshot.Status == StatusRunning
		if timer != nil && (!running || armedID != snapshot.ID) {
			disarm()
		}
		if running && timer == nil {
			timer = machine.options.Clock.NewTimer(machine.options.TickInterval)
			armedID = snapshot.ID
		}

		var fired <-chan time.Time
		if timer != nil {
			fired = timer.C()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-machine.wake:
		case <-fired:
			sessionID := armedID
			timer = nil
			armedID = ""
			machine.tick(sessionID)
		}
	}
}
