// Package semver provides the immutable semantic version value and its builder.
package semver

import (
	"fmt"
	"strings"
)

// VersionField represents which field of a semantic version to increment.
type VersionField int

const (
	VersionFieldNone VersionField = iota
	VersionFieldPatch
	VersionFieldMinor
	VersionFieldMajor
)

func (f VersionField) String() string {
	switch f {
	case VersionFieldNone:
		return "None"
	case VersionFieldPatch:
		return "Patch"
	case VersionFieldMinor:
		return "Minor"
	case VersionFieldMajor:
		return "Major"
	default:
		return "Unknown"
	}
}

// ParseVersionField parses a case-insensitive field name.
func ParseVersionField(s string) (VersionField, error) {
	switch strings.ToLower(s) {
	case "none":
		return VersionFieldNone, nil
	case "patch":
		return VersionFieldPatch, nil
	case "minor":
		return VersionFieldMinor, nil
	case "major":
		return VersionFieldMajor, nil
	default:
		return VersionFieldNone, fmt.Errorf("unknown version field %q", s)
	}
}

// IncrementMode controls how many bumps a commit window produces.
type IncrementMode int

const (
	// IncrementModeSuccessive applies the single highest bump found in the window.
	IncrementModeSuccessive IncrementMode = iota
	// IncrementModeConsecutive applies one bump per bumping message.
	IncrementModeConsecutive
	// IncrementModeNone never bumps.
	IncrementModeNone
)

func (m IncrementMode) String() string {
	switch m {
	case IncrementModeSuccessive:
		return "Successive"
	case IncrementModeConsecutive:
		return "Consecutive"
	case IncrementModeNone:
		return "None"
	default:
		return "Unknown"
	}
}

// ParseIncrementMode parses a case-insensitive increment mode name.
func ParseIncrementMode(s string) (IncrementMode, error) {
	switch strings.ToLower(s) {
	case "successive":
		return IncrementModeSuccessive, nil
	case "consecutive":
		return IncrementModeConsecutive, nil
	case "none":
		return IncrementModeNone, nil
	default:
		return IncrementModeSuccessive, fmt.Errorf("unknown increment mode %q", s)
	}
}

// CommitMessageConvention controls which commit message conventions are used
// for version incrementing.
type CommitMessageConvention int

const (
	CommitMessageConventionBoth CommitMessageConvention = iota
	CommitMessageConventionConventionalCommits
	CommitMessageConventionBumpDirective
)

func (c CommitMessageConvention) String() string {
	switch c {
	case CommitMessageConventionConventionalCommits:
		return "ConventionalCommits"
	case CommitMessageConventionBumpDirective:
		return "BumpDirective"
	case CommitMessageConventionBoth:
		return "Both"
	default:
		return "Unknown"
	}
}

// ParseCommitMessageConvention parses a case-insensitive convention name.
func ParseCommitMessageConvention(s string) (CommitMessageConvention, error) {
	switch strings.ToLower(s) {
	case "conventionalcommits":
		return CommitMessageConventionConventionalCommits, nil
	case "bumpdirective":
		return CommitMessageConventionBumpDirective, nil
	case "both":
		return CommitMessageConventionBoth, nil
	default:
		return CommitMessageConventionBoth, fmt.Errorf("unknown commit message convention %q", s)
	}
}
