package countdown

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wakealarm/internal/core/clock"
	"wakealarm/internal/xslog"
)

const maxSeconds = 7 * 24 * 60 * 60

// Config contains runtime options for the Machine.
type Config struct {
	TickInterval time.Duration
	Clock        clock.Clock
	Logger       *slog.Logger
}

// Session is a copy of the active countdown.
type Session struct {
	ID        string
	Owner     string
	Total     int
	Remaining int
	Status    Status
}

// Snapshot is a consistent view of the countdown for renderers.
type Snapshot struct {
	Session
	TargetPercent float64
}

// Machine is the single-timer countdown state machine. All transitions are
// serialised by one mutex so ticks and pause/resume never interleave.
type Machine struct {
	mu         sync.Mutex
	options    Config
	logger     *slog.Logger
	session    Session
	target     float64
	events     []chan Event
	onComplete func(Session)
	wake       chan struct{}
	closed     bool
}

// New creates an idle Machine.
func New(options Config) *Machine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clock.NewSystem()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Machine{
		options: options,
		logger:  logger,
		session: Session{Status: StatusIdle},
		wake:    make(chan struct{}, 1),
	}
}

// SetOnComplete registers the handler invoked once per completed session.
// It runs on the goroutine that applied the final tick, outside the lock.
func (machine *Machine) SetOnComplete(handler func(Session)) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	machine.onComplete = handler
}

// Subscribe registers a new observer channel.
func (machine *Machine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	machine.mu.Lock()
	if machine.closed {
		close(ch)
	} else {
		machine.events = append(machine.events, ch)
	}
	machine.mu.Unlock()
	return ch
}

// Close closes every observer channel. The machine stays usable.
func (machine *Machine) Close() {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	machine.closed = true
	events := machine.events
	machine.events = nil
	machine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start begins a new countdown, or resumes a paused one.
func (machine *Machine) Start(name string, minutes float64) error {
	owner := strings.TrimSpace(name)
	if owner == "" {
		return &ValidationError{Field: "name", Reason: "please enter your name"}
	}
	seconds := SecondsFor(minutes)
	if seconds <= 0 {
		return &ValidationError{Field: "minutes", Reason: "please enter a valid time"}
	}
	if seconds > maxSeconds {
		return &ValidationError{Field: "minutes", Reason: "duration is longer than seven days"}
	}

	machine.mu.Lock()
	defer machine.mu.Unlock()

	switch machine.session.Status {
	case StatusRunning:
		return nil
	case StatusPaused:
		machine.session.Status = StatusRunning
		machine.emitLocked(EventResumed)
		machine.signal()
		return nil
	case StatusCompleted:
		return ErrAwaitingAcknowledgement
	}

	machine.session = newSession(owner, seconds)
	machine.target = 0
	machine.logger.Info("countdown started",
		xslog.SessionID(machine.session.ID),
		xslog.Owner(owner),
		xslog.Remaining(seconds),
	)
	machine.emitLocked(EventStarted)
	machine.signal()
	return nil
}

// PauseResume toggles between Running and Paused. Other states are ignored.
func (machine *Machine) PauseResume() {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	switch machine.session.Status {
	case StatusRunning:
		machine.session.Status = StatusPaused
		machine.emitLocked(EventPaused)
	case StatusPaused:
		machine.session.Status = StatusRunning
		machine.emitLocked(EventResumed)
	default:
		return
	}
	machine.signal()
}

// Tick applies one countdown second to the current session.
func (machine *Machine) Tick() {
	machine.tick("")
}

// Reset cancels the current session and returns to Idle.
func (machine *Machine) Reset() {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.session.ID != "" {
		machine.logger.Info("countdown reset",
			xslog.SessionID(machine.session.ID),
			xslog.Remaining(machine.session.Remaining),
		)
	}
	machine.session = Session{Status: StatusIdle}
	machine.target = 0
	machine.emitLocked(EventReset)
	machine.signal()
}

// Acknowledge dismisses a completed alarm and returns to Idle.
func (machine *Machine) Acknowledge() {
	machine.AcknowledgeSession("")
}

// AcknowledgeSession is Acknowledge restricted to sessionID. It reports
// whether the session was acknowledged; an empty ID matches any session.
func (machine *Machine) AcknowledgeSession(sessionID string) bool {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.session.Status != StatusCompleted {
		return false
	}
	if sessionID != "" && sessionID != machine.session.ID {
		return false
	}
	machine.session.Status = StatusIdle
	machine.emitLocked(EventAcknowledged)
	machine.session = Session{Status: StatusIdle}
	machine.target = 0
	machine.signal()
	return true
}

// Snapshot returns the session and target progress read under one lock.
func (machine *Machine) Snapshot() Snapshot {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return Snapshot{Session: machine.session, TargetPercent: machine.target}
}

// Status returns the current lifecycle state.
func (machine *Machine) Status() Status {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.session.Status
}

// tick applies one second to sessionID, or to whatever session is current when
// sessionID is empty. Ticks armed for a cancelled session are dropped.
func (machine *Machine) tick(sessionID string) bool {
	machine.mu.Lock()
	if machine.session.Status != StatusRunning {
		machine.mu.Unlock()
		return false
	}
	if sessionID != "" && sessionID != machine.session.ID {
		machine.mu.Unlock()
		return false
	}

	machine.session.Remaining--
	if machine.session.Remaining < -1 {
		panic("countdown: remaining dropped below -1")
	}
	machine.target = targetPercent(machine.session.Total, machine.session.Remaining)

	if machine.session.Remaining > 0 {
		machine.emitLocked(EventTick)
		machine.mu.Unlock()
		return false
	}

	machine.session.Status = StatusCompleted
	machine.target = 100
	completed := machine.session
	handler := machine.onComplete
	machine.logger.Info("countdown completed",
		xslog.SessionID(completed.ID),
		xslog.Owner(completed.Owner),
	)
	machine.emitLocked(EventCompleted)
	machine.signal()
	machine.mu.Unlock()

	if handler != nil {
		handler(completed)
	}
	return true
}

func (machine *Machine) emitLocked(eventType EventType) {
	event := Event{
		Type:      eventType,
		Status:    machine.session.Status,
		SessionID: machine.session.ID,
		Owner:     machine.session.Owner,
		Remaining: machine.session.Remaining,
		Total:     machine.session.Total,
		Progress:  machine.target,
		At:        machine.options.Clock.Now(),
	}
	for _, ch := range machine.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// signal wakes the tick producer. Pending signals coalesce.
func (machine *Machine) signal() {
	select {
	case machine.wake <- struct{}{}:
	default:
	}
}

func newSession(owner string, seconds int) Session {
	if seconds <= 0 {
		panic("countdown: session total must be positive")
	}
	return Session{
		ID:        uuid.NewString(),
		Owner:     owner,
		Total:     seconds,
		Remaining: seconds,
		Status:    StatusRunning,
	}
}
