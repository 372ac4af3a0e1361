package config

import (
	"github.com/MyCarrier-DevOps/go-nextver/internal/label"
	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"
)

// CreateDefaultConfiguration returns a Config with all default values
// populated: a default case that escapes branch names into valid
// pre-release labels and a "main" case that releases without a label.
func CreateDefaultConfiguration() *Config {
	return &Config{
		StartVersion:            stringPtr("0.1.0"),
		TagPrefix:               stringPtr("[vV]"),
		IncrementMode:           incrementModePtr(semver.IncrementModeSuccessive),
		CommitMessageConvention: commitMsgConvPtr(semver.CommitMessageConventionBoth),
		RightShiftWhenZeroMajor: boolPtr(true),
		MajorVersionBumpMessage: stringPtr(`\+semver:\s?(breaking|major)`),
		MinorVersionBumpMessage: stringPtr(`\+semver:\s?(feature|minor)`),
		PatchVersionBumpMessage: stringPtr(`\+semver:\s?(fix|patch)`),
		NoBumpMessage:           stringPtr(`\+semver:\s?(none|skip)`),
		Default:                 defaultCase(),
		Branches:                createDefaultBranches(),
	}
}

func createDefaultBranches() []*BranchCase {
	return []*BranchCase{
		defaultMain(),
	}
}

func defaultCase() *BranchCase {
	return &BranchCase{
		Name: DefaultCaseName,
		PreReleaseEscapes: escapesPtr([]EscapeRule{
			{Pattern: `[^0-9A-Za-z-]`, Replacement: "-"},
			{Pattern: `-{2,}`, Replacement: "-"},
			{Pattern: `^-+|-+$`, Replacement: ""},
		}),
	}
}

func defaultMain() *BranchCase {
	return &BranchCase{
		Name:       "main",
		IfBranch:   stringPtr(`^(main|master)$`),
		PreRelease: label.Cleared(),
	}
}
