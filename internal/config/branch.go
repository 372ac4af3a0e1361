package config

import "github.com/MyCarrier-DevOps/go-nextver/internal/label"

// DefaultCaseName is the name reported when no branch case pattern matches.
const DefaultCaseName = "default"

// EscapeRule is one regex substitution applied to a pre-release label.
type EscapeRule struct {
	Pattern     string `yaml:"pattern" toml:"pattern" json:"pattern"`
	Replacement string `yaml:"replacement" toml:"replacement" json:"replacement"`
}

// BranchCase is a per-branch rule. Pointer fields and unset labels mean
// "not configured": the resolver falls back to the default case or derives
// a value. A non-nil but empty escape list is configured and disables escaping.
type BranchCase struct {
	Name                    string        `yaml:"name" toml:"name" json:"name,omitempty"`
	IfBranch                *string       `yaml:"if-branch" toml:"if-branch" json:"if-branch,omitempty"`
	SinceCommit             *string       `yaml:"since-commit" toml:"since-commit" json:"since-commit,omitempty"`
	Branch                  *string       `yaml:"branch" toml:"branch" json:"branch,omitempty"`
	PreRelease              label.Label   `yaml:"pre-release" toml:"pre-release" json:"pre-release"`
	SearchPreRelease        label.Label   `yaml:"search-pre-release" toml:"search-pre-release" json:"search-pre-release"`
	PreReleaseEscapes       *[]EscapeRule `yaml:"pre-release-escapes" toml:"pre-release-escapes" json:"pre-release-escapes,omitempty"`
	SearchPreReleaseEscapes *[]EscapeRule `yaml:"search-pre-release-escapes" toml:"search-pre-release-escapes" json:"search-pre-release-escapes,omitempty"`
}

// Key returns the identity used when layering cases: the name, or the
// pattern when the case is unnamed.
func (bc *BranchCase) Key() string {
	if bc.Name != "" {
		return bc.Name
	}
	if bc.IfBranch != nil {
		return *bc.IfBranch
	}
	return ""
}

// Clone returns a copy of bc that shares no pointers with it.
func (bc *BranchCase) Clone() *BranchCase {
	if bc == nil {
		return nil
	}
	out := &BranchCase{Name: bc.Name, PreRelease: bc.PreRelease, SearchPreRelease: bc.SearchPreRelease}
	if bc.IfBranch != nil {
		out.IfBranch = stringPtr(*bc.IfBranch)
	}
	if bc.SinceCommit != nil {
		out.SinceCommit = stringPtr(*bc.SinceCommit)
	}
	if bc.Branch != nil {
		out.Branch = stringPtr(*bc.Branch)
	}
	if bc.PreReleaseEscapes != nil {
		out.PreReleaseEscapes = escapesPtr(append([]EscapeRule(nil), *bc.PreReleaseEscapes...))
	}
	if bc.SearchPreReleaseEscapes != nil {
		out.SearchPreReleaseEscapes = escapesPtr(append([]EscapeRule(nil), *bc.SearchPreReleaseEscapes...))
	}
	return out
}

// MergeTo copies configured fields from bc into target. Used for overlay
// semantics: user config overrides defaults where specified.
func (bc *BranchCase) MergeTo(target *BranchCase) {
	if bc == nil || target == nil {
		return
	}
	if bc.Name != "" {
		target.Name = bc.Name
	}
	if bc.IfBranch != nil {
		target.IfBranch = bc.IfBranch
	}
	if bc.SinceCommit != nil {
		target.SinceCommit = bc.SinceCommit
	}
	if bc.Branch != nil {
		target.Branch = bc.Branch
	}
	if bc.PreRelease.IsSet() {
		target.PreRelease = bc.PreRelease
	}
	if bc.SearchPreRelease.IsSet() {
		target.SearchPreRelease = bc.SearchPreRelease
	}
	if bc.PreReleaseEscapes != nil {
		target.PreReleaseEscapes = bc.PreReleaseEscapes
	}
	if bc.SearchPreReleaseEscapes != nil {
		target.SearchPreReleaseEscapes = bc.SearchPreReleaseEscapes
	}
}
