// Package label provides a string option that distinguishes "not configured"
// from "configured as empty".
package label

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// State is the configuration state of a Label.
type State int

const (
	// StateUnset means no value was configured; callers derive one.
	StateUnset State = iota
	// StateCleared means the value was configured as empty.
	StateCleared
	// StateValue means a non-empty value was configured.
	StateValue
)

func (s State) String() string {
	switch s {
	case StateUnset:
		return "Unset"
	case StateCleared:
		return "Cleared"
	case StateValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// Label is a three-state optional string. The zero value is Unset.
type Label struct {
	state State
	value string
}

// Unset returns a label with no configured value.
func Unset() Label { return Label{} }

// Cleared returns a label explicitly configured as empty.
func Cleared() Label { return Label{state: StateCleared} }

// Of returns a label holding s. An empty s yields Cleared.
func Of(s string) Label {
	if s == "" {
		return Cleared()
	}
	return Label{state: StateValue, value: s}
}

// FromPtr maps nil to Unset and otherwise behaves like Of.
func FromPtr(s *string) Label {
	if s == nil {
		return Unset()
	}
	return Of(*s)
}

func (l Label) State() State        { return l.state }
func (l Label) IsUnset() bool       { return l.state == StateUnset }
func (l Label) IsCleared() bool     { return l.state == StateCleared }
func (l Label) HasValue() bool      { return l.state == StateValue }
func (l Label) IsSet() bool         { return l.state != StateUnset }
func (l Label) Value() string       { return l.value }
func (l Label) Get() (string, bool) { return l.value, l.state == StateValue }

// Equal reports whether both labels have the same state and value.
func (l Label) Equal(other Label) bool { return l == other }

// Or returns l unless it is Unset, in which case it returns fallback.
func (l Label) Or(fallback Label) Label {
	if l.IsUnset() {
		return fallback
	}
	return l
}

// Map applies fn to the value of a valued label. The result goes through Of,
// so a mapping to "" clears the label.
func (l Label) Map(fn func(string) string) Label {
	if !l.HasValue() {
		return l
	}
	return Of(fn(l.value))
}

func (l Label) String() string {
	switch l.state {
	case StateUnset:
		return "<unset>"
	case StateCleared:
		return `""`
	default:
		return l.value
	}
}

// UnmarshalYAML implements yaml.Unmarshaler. yaml.v3 does not call it for a
// null node, so null keeps the zero value (Unset).
func (l *Label) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*l = Unset()
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	*l = Of(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l Label) MarshalYAML() (any, error) {
	if l.IsUnset() {
		return nil, nil
	}
	return l.value, nil
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML. TOML has no
// null, so an omitted key is the only way to express Unset.
func (l *Label) UnmarshalText(text []byte) error {
	*l = Of(string(text))
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Label) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Unset()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	*l = Of(s)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Label) MarshalJSON() ([]byte, error) {
	if l.IsUnset() {
		return []byte("null"), nil
	}
	return json.Marshal(l.value)
}
