package config

import (
	"time"

	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"
)

// EffectiveConfiguration is a fully resolved configuration with all
// global fields guaranteed to have values. Branch-specific settings are
// resolved separately by the branch case resolver.
type EffectiveConfiguration struct {
	StartVersion            string
	TagPrefix               string
	IncrementMode           semver.IncrementMode
	CommitMessageConvention semver.CommitMessageConvention
	RightShiftWhenZeroMajor bool
	MajorVersionBumpMessage string
	MinorVersionBumpMessage string
	PatchVersionBumpMessage string
	NoBumpMessage           string

	IgnoreCommitsBefore *time.Time
	IgnoreSha           []string
}

// NewEffectiveConfiguration resolves all pointer fields of cfg to concrete values.
func NewEffectiveConfiguration(cfg *Config) EffectiveConfiguration {
	return EffectiveConfiguration{
		StartVersion:            derefString(cfg.StartVersion, "0.1.0"),
		TagPrefix:               derefString(cfg.TagPrefix, "[vV]"),
		IncrementMode:           derefIncrementMode(cfg.IncrementMode, semver.IncrementModeSuccessive),
		CommitMessageConvention: derefCommitMsgConv(cfg.CommitMessageConvention, semver.CommitMessageConventionBoth),
		RightShiftWhenZeroMajor: derefBool(cfg.RightShiftWhenZeroMajor, true),
		MajorVersionBumpMessage: derefString(cfg.MajorVersionBumpMessage, `\+semver:\s?(breaking|major)`),
		MinorVersionBumpMessage: derefString(cfg.MinorVersionBumpMessage, `\+semver:\s?(feature|minor)`),
		PatchVersionBumpMessage: derefString(cfg.PatchVersionBumpMessage, `\+semver:\s?(fix|patch)`),
		NoBumpMessage:           derefString(cfg.NoBumpMessage, `\+semver:\s?(none|skip)`),

		IgnoreCommitsBefore: cfg.Ignore.CommitsBefore,
		IgnoreSha:           cfg.Ignore.Sha,
	}
}

// Ignore returns the ignore rules as an IgnoreConfig.
func (ec EffectiveConfiguration) Ignore() IgnoreConfig {
	return IgnoreConfig{CommitsBefore: ec.IgnoreCommitsBefore, Sha: ec.IgnoreSha}
}

func derefString(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}

func derefBool(p *bool, fallback bool) bool {
	if p != nil {
		return *p
	}
	return fallback
}

func derefIncrementMode(p *semver.IncrementMode, fallback semver.IncrementMode) semver.IncrementMode {
	if p != nil {
		return *p
	}
	return fallback
}

func derefCommitMsgConv(p *semver.CommitMessageConvention, fallback semver.CommitMessageConvention) semver.CommitMessageConvention {
	if p != nil {
		return *p
	}
	return fallback
}
