package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// Activity names one of the tracked daily activities.
type Activity string

const (
	ActivityReading    Activity = "reading"
	ActivityExercising Activity = "exercising"
	ActivityMusic      Activity = "music"
)

// Activities lists every tracked activity in display order.
var Activities = []Activity{ActivityReading, ActivityExercising, ActivityMusic}

// ParseActivity validates raw against the tracked activity names.
func ParseActivity(raw string) (Activity, error) {
	for _, a := range Activities {
		if string(a) == raw {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown activity %q", raw)
}

// Label is the human readable name shown in exports.
func (a Activity) Label() string {
	switch a {
	case ActivityReading:
		return "Reading"
	case ActivityExercising:
		return "Exercise"
	case ActivityMusic:
		return "Music"
	default:
		return string(a)
	}
}

// ActivitySet records which activities happened on a day. The zero value is
// the state of a day nobody has touched.
type ActivitySet struct {
	Reading    bool `json:"reading"`
	Exercising bool `json:"exercising"`
	Music      bool `json:"music"`
}

// Unlocked reports whether at least one activity happened.
func (s ActivitySet) Unlocked() bool {
	return s.Reading || s.Exercising || s.Music
}

// Has reports the state of a single activity.
func (s ActivitySet) Has(a Activity) bool {
	switch a {
	case ActivityReading:
		return s.Reading
	case ActivityExercising:
		return s.Exercising
	case ActivityMusic:
		return s.Music
	default:
		return false
	}
}

// Toggle returns a copy of s with exactly one activity flipped.
func (s ActivitySet) Toggle(a Activity) (ActivitySet, error) {
	switch a {
	case ActivityReading:
		s.Reading = !s.Reading
	case ActivityExercising:
		s.Exercising = !s.Exercising
	case ActivityMusic:
		s.Music = !s.Music
	default:
		return s, fmt.Errorf("unknown activity %q", a)
	}
	return s, nil
}

// EncodeActivitySet serialises s as the stored three-field JSON object.
func EncodeActivitySet(s ActivitySet) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// DecodeActivitySet parses a stored payload. Only the exact keys reading,
// exercising and music are read; any other key is ignored and a missing key
// reads as false. Anything other than a JSON object whose known fields are
// booleans is rejected.
func DecodeActivitySet(raw string) (ActivitySet, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || data[0] != '{' {
		return ActivitySet{}, fmt.Errorf("activity payload is not a JSON object")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ActivitySet{}, fmt.Errorf("decode activity payload: %w", err)
	}

	var set ActivitySet
	targets := map[Activity]*bool{
		ActivityReading:    &set.Reading,
		ActivityExercising: &set.Exercising,
		ActivityMusic:      &set.Music,
	}
	for activity, target := range targets {
		value, ok := fields[string(activity)]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, target); err != nil {
			return ActivitySet{}, fmt.Errorf("decode activity %s: %w", activity, err)
		}
	}
	return set, nil
}

// DayKeyLayout is the time layout of a DayKey.
const DayKeyLayout = "2006-01-02"

var dayKeyPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// IsDayKey reports whether key has the YYYY-MM-DD shape. The check is purely
// syntactic: 2024-13-40 is accepted.
func IsDayKey(key string) bool {
	return dayKeyPattern.MatchString(key)
}

// DayKeyFor formats t as a DayKey using t's own location.
func DayKeyFor(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// DayRecord pairs a DayKey with its stored activities.
type DayRecord struct {
	Date       string      `json:"date"`
	Activities ActivitySet `json:"activities"`
}

// Unlocked reports whether the day has at least one activity.
func (r DayRecord) Unlocked() bool {
	return r.Activities.Unlocked()
}
