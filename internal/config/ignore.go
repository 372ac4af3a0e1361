package config

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// IgnoreConfig controls which commits are excluded from the message window.
type IgnoreConfig struct {
	CommitsBefore *time.Time `yaml:"commits-before" toml:"commits-before" json:"commits-before,omitempty"`
	Sha           []string   `yaml:"sha" toml:"sha" json:"sha,omitempty"`
}

// IsEmpty returns true when no ignore rules are configured.
func (c IgnoreConfig) IsEmpty() bool {
	return c.CommitsBefore == nil && len(c.Sha) == 0
}

// Ignores reports whether a commit with the given SHA and timestamp is excluded.
// SHA entries may be abbreviated.
func (c IgnoreConfig) Ignores(sha string, when time.Time) bool {
	if c.CommitsBefore != nil && when.Before(*c.CommitsBefore) {
		return true
	}
	return slices.ContainsFunc(c.Sha, func(prefix string) bool {
		return prefix != "" && strings.HasPrefix(sha, prefix)
	})
}

// flexTime wraps time.Time for flexible date parsing.
// Supports both date-only ("2024-01-01") and RFC3339 formats.
type flexTime time.Time

func parseFlexTime(s string) (flexTime, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return flexTime(t), nil
		}
	}
	return flexTime{}, fmt.Errorf("cannot parse date %q: expected RFC3339 or YYYY-MM-DD", s)
}

func (ft *flexTime) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := parseFlexTime(s)
	if err != nil {
		return err
	}
	*ft = parsed
	return nil
}

func (ft *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseFlexTime(s)
	if err != nil {
		return err
	}
	*ft = parsed
	return nil
}

type rawIgnore struct {
	CommitsBefore *flexTime `yaml:"commits-before" json:"commits-before"`
	Sha           []string  `yaml:"sha" json:"sha"`
}

func (r rawIgnore) apply(c *IgnoreConfig) {
	if r.CommitsBefore != nil {
		t := time.Time(*r.CommitsBefore)
		c.CommitsBefore = &t
	}
	c.Sha = r.Sha
}

// UnmarshalYAML implements custom date parsing for IgnoreConfig.
func (c *IgnoreConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw rawIgnore
	if err := value.Decode(&raw); err != nil {
		return err
	}
	raw.apply(c)
	return nil
}

// UnmarshalJSON implements custom date parsing for IgnoreConfig. TOML needs
// no hook since it has a native date type.
func (c *IgnoreConfig) UnmarshalJSON(data []byte) error {
	var raw rawIgnore
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw.apply(c)
	return nil
}
