package countdown

import "time"

// Status represents the countdown lifecycle state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// EventType defines the type of countdown event.
type EventType string

const (
	EventStarted      EventType = "started"
	EventTick         EventType = "tick"
	EventPaused       EventType = "paused"
	EventResumed      EventType = "resumed"
	EventCompleted    EventType = "completed"
	EventReset        EventType = "reset"
	EventAcknowledged EventType = "acknowledged"
)

// Event represents a countdown update for observers.
type Event struct {
	Type      EventType
	Status    Status
	SessionID string
	Owner     string
	Remaining int
	Total     int
	Progress  float64
	At        time.Time
}
