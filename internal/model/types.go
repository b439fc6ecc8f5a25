// Package model defines shared data structures.
package model

import (
	"encoding/json"
	"time"
)

// EventKind is the key transition reported by the capture device.
type EventKind string

// Event kinds as they appear on the wire.
const (
	KindPress   EventKind = "press"
	KindRelease EventKind = "release"
	KindRepeat  EventKind = "repeat"
)

// Event is a single hardware key transition from the JSONL log.
type Event struct {
	Timestamp      float64   `json:"timestamp"`
	Key            string    `json:"key"`
	Kind           EventKind `json:"event"`
	HoldDurationMs *float64  `json:"hold_duration_ms,omitempty"`
	IdleBeforeMs   *float64  `json:"idle_before_ms,omitempty"`
}

// wireEvent matches the loosely-typed log format: key may arrive as a
// string or as an array of strings.
type wireEvent struct {
	Timestamp      *float64        `json:"timestamp"`
	Key            json.RawMessage `json:"key"`
	Kind           string          `json:"event"`
	HoldDurationMs *float64        `json:"hold_duration_ms"`
	IdleBeforeMs   *float64        `json:"idle_before_ms"`
}

// UnmarshalJSON decodes an event, normalizing array-valued keys to their
// last element.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw wireEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Timestamp == nil {
		return &MissingFieldError{Field: "timestamp"}
	}
	if raw.Kind == "" {
		return &MissingFieldError{Field: "event"}
	}
	key, err := normalizeKey(raw.Key)
	if err != nil {
		return err
	}
	e.Timestamp = *raw.Timestamp
	e.Key = key
	e.Kind = EventKind(raw.Kind)
	e.HoldDurationMs = raw.HoldDurationMs
	e.IdleBeforeMs = raw.IdleBeforeMs
	return nil
}

func normalizeKey(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", &MissingFieldError{Field: "key"}
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return "", &MissingFieldError{Field: "key"}
		}
		return single, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", &MissingFieldError{Field: "key"}
	}
	return list[len(list)-1], nil
}

// MissingFieldError reports a required event field absent from a log line.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// Valid reports whether the event carries a recognized kind.
func (e Event) Valid() bool {
	switch e.Kind {
	case KindPress, KindRelease, KindRepeat:
		return true
	}
	return false
}

// Time converts the event timestamp to local wall-clock time.
func (e Event) Time() time.Time {
	sec := int64(e.Timestamp)
	nsec := int64((e.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// Session is a maximal run of press events with no gap above the
// configured threshold. Immutable once closed, ordered by Start.
type Session struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Keystrokes int     `json:"keystrokes"`
	Chars      int     `json:"chars"`
}

// DurationSeconds returns the session length in seconds.
func (s Session) DurationSeconds() float64 {
	return s.End - s.Start
}

// LoadConfig defines filters applied while loading events.
type LoadConfig struct {
	Start *time.Time
	End   *time.Time
}

// ModifierRole describes a dual-role key: the modifier it emits when held
// and, for shift-like roles, the keys it is expected to combine with.
type ModifierRole struct {
	Role    string
	Targets map[string]struct{}
}

// ShiftLike reports whether the role participates in failure detection.
func (m ModifierRole) ShiftLike() bool {
	return len(m.Targets) > 0
}
