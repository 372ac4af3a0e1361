// Package branchcase selects the branch case that applies to a branch name
// and derives the effective pre-release labels from it.
package branchcase

import (
	"fmt"
	"regexp"

	"github.com/MyCarrier-DevOps/go-nextver/internal/config"
	"github.com/MyCarrier-DevOps/go-nextver/internal/label"
	"github.com/MyCarrier-DevOps/go-nextver/internal/regexutil"
)

// Settings is the outcome of resolving a branch name against the configured cases.
type Settings struct {
	// CaseName is the key of the matched case, or config.DefaultCaseName.
	CaseName    string
	SinceCommit string
	Branch      string
	// PreRelease is the escaped label for the calculated version.
	PreRelease label.Label
	// SearchPreRelease is the escaped label of pre-release tags that count
	// as a previous version.
	SearchPreRelease label.Label
}

// IsDefault reports whether no configured case matched.
func (s Settings) IsDefault() bool { return s.CaseName == config.DefaultCaseName }

// Match returns the first case whose pattern matches branchName, or nil.
// Every pattern is compiled before matching, so an invalid pattern is
// reported even when an earlier case matches.
func Match(branchName string, cases []*config.BranchCase) (*config.BranchCase, error) {
	patterns := make([]*regexp.Regexp, len(cases))
	for i, bc := range cases {
		if bc == nil || bc.IfBranch == nil {
			continue
		}
		re, err := regexp.Compile(*bc.IfBranch)
		if err != nil {
			return nil, &config.ConfigurationError{
				Field: fmt.Sprintf("branches[%d].if-branch", i),
				Value: *bc.IfBranch,
				Err:   err,
			}
		}
		patterns[i] = re
	}

	for i, re := range patterns {
		if re != nil && re.MatchString(branchName) {
			return cases[i], nil
		}
	}
	return nil, nil
}

// Resolve picks the active case for branchName and computes its settings.
func Resolve(branchName string, cases []*config.BranchCase, defaultCase *config.BranchCase) (Settings, error) {
	return ResolveWithOverride(branchName, cases, defaultCase, nil)
}

// ResolveWithOverride is Resolve with override merged onto the active case
// before any value is derived.
func ResolveWithOverride(branchName string, cases []*config.BranchCase, defaultCase, override *config.BranchCase) (Settings, error) {
	if defaultCase == nil {
		defaultCase = &config.BranchCase{Name: config.DefaultCaseName}
	}

	active, err := Match(branchName, cases)
	if err != nil {
		return Settings{}, err
	}
	caseName := config.DefaultCaseName
	if active == nil {
		active = defaultCase
	} else {
		caseName = active.Key()
	}
	if override != nil {
		active = active.Clone()
		override.MergeTo(active)
	}

	settings := Settings{
		CaseName:    caseName,
		SinceCommit: firstString(active.SinceCommit, defaultCase.SinceCommit),
		Branch:      firstString(active.Branch, defaultCase.Branch),
	}

	preRelease := active.PreRelease.Or(defaultCase.PreRelease)
	if preRelease.IsUnset() {
		if active.Branch != nil || defaultCase.Branch != nil {
			preRelease = label.Of(settings.Branch)
		} else {
			preRelease = label.Of(branchName)
		}
	}
	searchPreRelease := active.SearchPreRelease.Or(defaultCase.SearchPreRelease).Or(preRelease)

	searchEscapes, err := config.CompileEscapes(caseName+".search-pre-release-escapes", firstEscapes(
		active.SearchPreReleaseEscapes,
		active.PreReleaseEscapes,
		defaultCase.SearchPreReleaseEscapes,
		defaultCase.PreReleaseEscapes,
	))
	if err != nil {
		return Settings{}, err
	}
	preEscapes, err := config.CompileEscapes(caseName+".pre-release-escapes", firstEscapes(
		active.PreReleaseEscapes,
		defaultCase.PreReleaseEscapes,
	))
	if err != nil {
		return Settings{}, err
	}

	settings.SearchPreRelease = regexutil.Escape(searchPreRelease, searchEscapes)
	settings.PreRelease = regexutil.Escape(preRelease, preEscapes)
	return settings, nil
}

func firstString(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return ""
}

func firstEscapes(candidates ...*[]config.EscapeRule) *[]config.EscapeRule {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
