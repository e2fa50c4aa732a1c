package model

import (
	"sort"
	"time"
)

// SoundChoice is the alarm sound selected for a session. It is a closed set:
// PresetTone or CustomFile.
type SoundChoice interface {
	isSoundChoice()
	// Label returns a human readable name.
	Label() string
}

// PresetTone is a built-in beep pattern.
type PresetTone struct {
	Key         string
	Name        string
	FrequencyHz int
	Duration    time.Duration
}

// CustomFile plays a user supplied audio file.
type CustomFile struct {
	Path string
}

func (PresetTone) isSoundChoice() {}
func (CustomFile) isSoundChoice() {}

func (tone PresetTone) Label() string { return tone.Name }
func (CustomFile) Label() string      { return CustomSoundName }

// DurationMillis returns the beep length in milliseconds.
func (tone PresetTone) DurationMillis() int {
	return int(tone.Duration / time.Millisecond)
}

// CustomSoundName labels the custom file entry in sound pickers.
const CustomSoundName = "Custom Sound"

// DefaultPresetKey is used when no choice was made.
const DefaultPresetKey = "classic"

var presets = map[string]PresetTone{
	"gentle":  {Key: "gentle", Name: "Gentle Beep", FrequencyHz: 800, Duration: 600 * time.Millisecond},
	"classic": {Key: "classic", Name: "Classic Alarm", FrequencyHz: 1000, Duration: 500 * time.Millisecond},
	"urgent":  {Key: "urgent", Name: "Urgent Alert", FrequencyHz: 1500, Duration: 300 * time.Millisecond},
	"melodic": {Key: "melodic", Name: "Melodic Tone", FrequencyHz: 1200, Duration: 700 * time.Millisecond},
	"space":   {Key: "space", Name: "Space Beep", FrequencyHz: 2000, Duration: 400 * time.Millisecond},
}

// LookupPreset returns the preset registered under key.
func LookupPreset(key string) (PresetTone, bool) {
	tone, ok := presets[key]
	return tone, ok
}

// LookupPresetByName finds a preset by its display name.
func LookupPresetByName(name string) (PresetTone, bool) {
	for _, tone := range presets {
		if tone.Name == name {
			return tone, true
		}
	}
	return PresetTone{}, false
}

// DefaultPreset returns the Classic Alarm tone.
func DefaultPreset() PresetTone {
	return presets[DefaultPresetKey]
}

// Presets returns every preset ordered by frequency.
func Presets() []PresetTone {
	list := make([]PresetTone, 0, len(presets))
	for _, tone := range presets {
		list = append(list, tone)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].FrequencyHz < list[j].FrequencyHz
	})
	return list
}

// PresetKeys returns preset keys in the same order as Presets.
func PresetKeys() []string {
	tones := Presets()
	keys := make([]string, len(tones))
	for i, tone := range tones {
		keys[i] = tone.Key
	}
	return keys
}
