// Package config provides configuration loading (YAML, TOML, JSON), default
// branch cases, config layering, and effective configuration resolution for nextver.
package config

import "github.com/MyCarrier-DevOps/go-nextver/internal/semver"

// Config is the root configuration for nextver. All optional fields are
// pointers to support merge semantics during configuration building.
type Config struct {
	StartVersion            *string                         `yaml:"start-version" toml:"start-version" json:"start-version,omitempty"`
	TagPrefix               *string                         `yaml:"tag-prefix" toml:"tag-prefix" json:"tag-prefix,omitempty"`
	IncrementMode           *semver.IncrementMode           `yaml:"increment-mode" toml:"increment-mode" json:"increment-mode,omitempty"`
	CommitMessageConvention *semver.CommitMessageConvention `yaml:"message-convention" toml:"message-convention" json:"message-convention,omitempty"`
	RightShiftWhenZeroMajor *bool                           `yaml:"right-shift-when-zero-major" toml:"right-shift-when-zero-major" json:"right-shift-when-zero-major,omitempty"`
	MajorVersionBumpMessage *string                         `yaml:"major-version-bump-message" toml:"major-version-bump-message" json:"major-version-bump-message,omitempty"`
	MinorVersionBumpMessage *string                         `yaml:"minor-version-bump-message" toml:"minor-version-bump-message" json:"minor-version-bump-message,omitempty"`
	PatchVersionBumpMessage *string                         `yaml:"patch-version-bump-message" toml:"patch-version-bump-message" json:"patch-version-bump-message,omitempty"`
	NoBumpMessage           *string                         `yaml:"no-bump-message" toml:"no-bump-message" json:"no-bump-message,omitempty"`
	Default                 *BranchCase                     `yaml:"default" toml:"default" json:"default,omitempty"`
	Branches                []*BranchCase                   `yaml:"branches" toml:"branches" json:"branches,omitempty"`
	Ignore                  IgnoreConfig                    `yaml:"ignore" toml:"ignore" json:"ignore"`
}
