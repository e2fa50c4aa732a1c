package terminal

import "wakealarm/internal/core/countdown"

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarning
	noticeError
)

// viewMsg carries the latest coalesced render state.
type viewMsg struct {
	timer    string
	class    countdown.ColorClass
	progress float64
	status   string
	night    bool
	sky      []string
}

type noticeMsg struct {
	level noticeLevel
	text  string
}

type alarmMsg struct {
	text      string
	onDismiss func()
}
