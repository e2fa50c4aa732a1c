package countdown

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColorClass is the urgency bucket used to colour the timer text.
type ColorClass int

const (
	ClassNormal ColorClass = iota
	ClassWarning
	ClassUrgent
)

func (class ColorClass) String() string {
	switch class {
	case ClassWarning:
		return "warning"
	case ClassUrgent:
		return "urgent"
	default:
		return "normal"
	}
}

// ClassFor maps remaining seconds to a colour class.
func ClassFor(remaining int) ColorClass {
	switch {
	case remaining <= 10:
		return ClassUrgent
	case remaining <= 30:
		return ClassWarning
	default:
		return ClassNormal
	}
}

// FormatRemaining renders seconds as MM:SS. Negative values render as zero.
func FormatRemaining(remaining int) string {
	if remaining < 0 {
		remaining = 0
	}
	minutes := remaining / 60
	seconds := remaining % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// ParseMinutes converts user input into minutes.
func ParseMinutes(text string) (float64, error) {
	value := strings.TrimSpace(text)
	if value == "" {
		return 0, &ValidationError{Field: "minutes", Reason: "enter a duration"}
	}
	minutes, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0, &ValidationError{Field: "minutes", Reason: "enter a valid number"}
	}
	return minutes, nil
}

// SecondsFor converts minutes to whole seconds, rounding to the nearest second.
func SecondsFor(minutes float64) int {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0
	}
	return int(math.Round(minutes * 60))
}

func targetPercent(total, remaining int) float64 {
	if total <= 0 {
		return 0
	}
	percent := float64(total-remaining) * 100 / float64(total)
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
