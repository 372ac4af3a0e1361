package semver

import "fmt"

// ParseError reports a string that is not a semantic version.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse version %q: %s", e.Input, e.Reason)
}

// ValidationError reports a Builder state that cannot form a valid version.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
