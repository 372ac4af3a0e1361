package config

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-nextver/internal/regexutil"
)

// CompileEscapes compiles escape rules in order. A nil rule set yields nil.
// field names the configuration key for error reporting.
func CompileEscapes(field string, rules *[]EscapeRule) ([]regexutil.Substitution, error) {
	if rules == nil {
		return nil, nil
	}
	out := make([]regexutil.Substitution, 0, len(*rules))
	for i, r := range *rules {
		sub, err := regexutil.NewSubstitution(r.Pattern, r.Replacement)
		if err != nil {
			return nil, &ConfigurationError{Field: fmt.Sprintf("%s[%d]", field, i), Value: r.Pattern, Err: err}
		}
		out = append(out, sub)
	}
	return out, nil
}
