package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"
)

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults,
// applying all overrides, and validating.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	if src.StartVersion != nil {
		dst.StartVersion = src.StartVersion
	}
	if src.TagPrefix != nil {
		dst.TagPrefix = src.TagPrefix
	}
	if src.IncrementMode != nil {
		dst.IncrementMode = src.IncrementMode
	}
	if src.CommitMessageConvention != nil {
		dst.CommitMessageConvention = src.CommitMessageConvention
	}
	if src.RightShiftWhenZeroMajor != nil {
		dst.RightShiftWhenZeroMajor = src.RightShiftWhenZeroMajor
	}
	if src.MajorVersionBumpMessage != nil {
		dst.MajorVersionBumpMessage = src.MajorVersionBumpMessage
	}
	if src.MinorVersionBumpMessage != nil {
		dst.MinorVersionBumpMessage = src.MinorVersionBumpMessage
	}
	if src.PatchVersionBumpMessage != nil {
		dst.PatchVersionBumpMessage = src.PatchVersionBumpMessage
	}
	if src.NoBumpMessage != nil {
		dst.NoBumpMessage = src.NoBumpMessage
	}

	if src.Default != nil {
		if dst.Default == nil {
			dst.Default = &BranchCase{Name: DefaultCaseName}
		}
		src.Default.MergeTo(dst.Default)
		dst.Default.Name = DefaultCaseName
	}

	// Branch cases: merge by key, append new ones in their configured order
	for _, srcCase := range src.Branches {
		if srcCase == nil {
			continue
		}
		if dstCase := dst.FindCase(srcCase.Key()); dstCase != nil {
			srcCase.MergeTo(dstCase)
		} else {
			dst.Branches = append(dst.Branches, srcCase.Clone())
		}
	}

	if src.Ignore.CommitsBefore != nil {
		dst.Ignore.CommitsBefore = src.Ignore.CommitsBefore
	}
	if src.Ignore.Sha != nil {
		dst.Ignore.Sha = src.Ignore.Sha
	}
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if cfg.TagPrefix != nil {
		if err := checkRegex("tag-prefix", *cfg.TagPrefix); err != nil {
			return err
		}
	}

	if cfg.StartVersion != nil {
		if _, err := semver.Parse(*cfg.StartVersion, ""); err != nil {
			return &ConfigurationError{Field: "start-version", Value: *cfg.StartVersion, Err: err}
		}
	}

	for field, pattern := range map[string]*string{
		"major-version-bump-message": cfg.MajorVersionBumpMessage,
		"minor-version-bump-message": cfg.MinorVersionBumpMessage,
		"patch-version-bump-message": cfg.PatchVersionBumpMessage,
		"no-bump-message":            cfg.NoBumpMessage,
	} {
		if pattern == nil {
			continue
		}
		if err := checkRegex(field, *pattern); err != nil {
			return err
		}
	}

	if cfg.Default != nil {
		if cfg.Default.IfBranch != nil {
			return &ConfigurationError{Field: "default.if-branch", Value: *cfg.Default.IfBranch, Err: errors.New("the default case matches every branch and takes no pattern")}
		}
		if err := validateEscapes("default", cfg.Default); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(cfg.Branches))
	for i, bc := range cfg.Branches {
		if bc == nil {
			return &ConfigurationError{Field: fmt.Sprintf("branches[%d]", i), Err: errors.New("empty branch case")}
		}
		if bc.IfBranch == nil {
			return &ConfigurationError{Field: fmt.Sprintf("branches[%d].if-branch", i), Value: bc.Name, Err: errors.New("missing pattern")}
		}
		if err := checkRegex(fmt.Sprintf("branches[%d].if-branch", i), *bc.IfBranch); err != nil {
			return err
		}
		key := bc.Key()
		if key == DefaultCaseName {
			return &ConfigurationError{Field: fmt.Sprintf("branches[%d].name", i), Value: key, Err: errors.New("name is reserved")}
		}
		if seen[key] {
			return &ConfigurationError{Field: fmt.Sprintf("branches[%d].name", i), Value: key, Err: errors.New("duplicate branch case")}
		}
		seen[key] = true
		if err := validateEscapes(fmt.Sprintf("branches[%d]", i), bc); err != nil {
			return err
		}
	}

	return nil
}

func validateEscapes(prefix string, bc *BranchCase) error {
	if _, err := CompileEscapes(prefix+".pre-release-escapes", bc.PreReleaseEscapes); err != nil {
		return err
	}
	if _, err := CompileEscapes(prefix+".search-pre-release-escapes", bc.SearchPreReleaseEscapes); err != nil {
		return err
	}
	return nil
}

func checkRegex(field, pattern string) error {
	if _, err := regexp.Compile(pattern); err != nil {
		return &ConfigurationError{Field: field, Value: pattern, Err: err}
	}
	return nil
}
