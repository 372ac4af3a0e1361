// Package regexutil applies ordered regex substitutions to labels.
package regexutil

import (
	"regexp"

	"github.com/MyCarrier-DevOps/go-nextver/internal/label"
)

// Substitution replaces every match of Pattern with Replacement.
// Replacement may reference capture groups using regexp.Expand syntax.
type Substitution struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewSubstitution compiles pattern into a Substitution.
func NewSubstitution(pattern, replacement string) (Substitution, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Substitution{}, err
	}
	return Substitution{Pattern: re, Replacement: replacement}, nil
}

// Apply runs the substitution on s.
func (s Substitution) Apply(in string) string {
	if s.Pattern == nil {
		return in
	}
	return s.Pattern.ReplaceAllString(in, s.Replacement)
}

// EscapeString runs rules over s in order; each rule sees the output of the previous one.
func EscapeString(s string, rules []Substitution) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}

// Escape applies rules to the value of input. Labels without a value and
// empty rule sets pass through unchanged.
func Escape(input label.Label, rules []Substitution) label.Label {
	if len(rules) == 0 {
		return input
	}
	return input.Map(func(s string) string {
		return EscapeString(s, rules)
	})
}
