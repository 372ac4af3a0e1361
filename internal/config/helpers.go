package config

import "github.com/MyCarrier-DevOps/go-nextver/internal/semver"

func stringPtr(s string) *string                  { return &s }
func boolPtr(b bool) *bool                        { return &b }
func escapesPtr(rules []EscapeRule) *[]EscapeRule { return &rules }

func incrementModePtr(m semver.IncrementMode) *semver.IncrementMode {
	return &m
}

func commitMsgConvPtr(c semver.CommitMessageConvention) *semver.CommitMessageConvention {
	return &c
}
