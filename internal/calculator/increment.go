package calculator

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/MyCarrier-DevOps/go-nextver/internal/config"
	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"
	"github.com/MyCarrier-DevOps/go-nextver/internal/transformer"
)

// Explanation records the reasoning behind a calculation.
type Explanation struct {
	Steps []string
}

// Add appends a reasoning step. Nil-safe.
func (e *Explanation) Add(step string) {
	if e != nil {
		e.Steps = append(e.Steps, step)
	}
}

// Addf appends a formatted reasoning step. Nil-safe.
func (e *Explanation) Addf(format string, args ...any) {
	if e != nil {
		e.Steps = append(e.Steps, fmt.Sprintf(format, args...))
	}
}

// IncrementationOptions is the input of the transformer fold.
type IncrementationOptions struct {
	StartVersion                      semver.SemanticVersion
	IsStartVersionCoreAlreadyReleased bool
	Transformers                      []transformer.Transformer
}

// Conventional Commits patterns.
var (
	ccTypeRe         = regexp.MustCompile(`^(\w+)(?:\(.+?\))?(!)?:\s`)
	breakingFooterRe = regexp.MustCompile(`(?m)^BREAKING[ -]CHANGE:\s`)
)

// Classification is the bump a single commit message asks for.
type Classification struct {
	Field semver.VersionField
	// Skip is set when the message carries the no-bump directive.
	Skip bool
	// Convention names the convention that produced Field.
	Convention string
}

// MessageClassifier maps commit messages to version fields.
type MessageClassifier struct {
	convention semver.CommitMessageConvention
	major      *regexp.Regexp
	minor      *regexp.Regexp
	patch      *regexp.Regexp
	none       *regexp.Regexp
}

// NewMessageClassifier compiles the bump directives of ec. An empty
// directive never matches.
func NewMessageClassifier(ec config.EffectiveConfiguration) (*MessageClassifier, error) {
	c := &MessageClassifier{convention: ec.CommitMessageConvention}
	for _, d := range []struct {
		field   string
		pattern string
		dst     **regexp.Regexp
	}{
		{"major-version-bump-message", ec.MajorVersionBumpMessage, &c.major},
		{"minor-version-bump-message", ec.MinorVersionBumpMessage, &c.minor},
		{"patch-version-bump-message", ec.PatchVersionBumpMessage, &c.patch},
		{"no-bump-message", ec.NoBumpMessage, &c.none},
	} {
		if d.pattern == "" {
			continue
		}
		re, err := regexp.Compile(d.pattern)
		if err != nil {
			return nil, &config.ConfigurationError{Field: d.field, Value: d.pattern, Err: err}
		}
		*d.dst = re
	}
	return c, nil
}

// Classify returns the bump requested by msg under the configured convention.
func (c *MessageClassifier) Classify(msg string) Classification {
	if c.none != nil && c.none.MatchString(msg) {
		return Classification{Skip: true, Convention: "Bump Directive"}
	}

	switch c.convention {
	case semver.CommitMessageConventionConventionalCommits:
		return Classification{Field: analyzeConventionalCommit(msg), Convention: "Conventional Commits"}
	case semver.CommitMessageConventionBumpDirective:
		return Classification{Field: c.analyzeBumpDirective(msg), Convention: "Bump Directive"}
	default:
		cc := analyzeConventionalCommit(msg)
		bd := c.analyzeBumpDirective(msg)
		if bd > cc {
			return Classification{Field: bd, Convention: "Bump Directive"}
		}
		return Classification{Field: cc, Convention: "Conventional Commits"}
	}
}

// analyzeConventionalCommit parses a Conventional Commits message.
// feat: → Minor, fix: → Patch, feat!: or BREAKING CHANGE: footer → Major
func analyzeConventionalCommit(msg string) semver.VersionField {
	firstLine, _, _ := strings.Cut(msg, "\n")

	matches := ccTypeRe.FindStringSubmatch(firstLine)
	if matches == nil {
		return semver.VersionFieldNone
	}

	if matches[2] == "!" || breakingFooterRe.MatchString(msg) {
		return semver.VersionFieldMajor
	}

	switch strings.ToLower(matches[1]) {
	case "feat":
		return semver.VersionFieldMinor
	case "fix":
		return semver.VersionFieldPatch
	default:
		// docs, chore, refactor and the like don't bump.
		return semver.VersionFieldNone
	}
}

func (c *MessageClassifier) analyzeBumpDirective(msg string) semver.VersionField {
	switch {
	case c.major != nil && c.major.MatchString(msg):
		return semver.VersionFieldMajor
	case c.minor != nil && c.minor.MatchString(msg):
		return semver.VersionFieldMinor
	case c.patch != nil && c.patch.MatchString(msg):
		return semver.VersionFieldPatch
	}
	return semver.VersionFieldNone
}

// TransformerSelector decides which bump transformers a message window yields.
type TransformerSelector struct {
	classifier *MessageClassifier
	mode       semver.IncrementMode
	rightShift bool
}

// NewTransformerSelector builds a selector from the global configuration.
func NewTransformerSelector(ec config.EffectiveConfiguration) (*TransformerSelector, error) {
	classifier, err := NewMessageClassifier(ec)
	if err != nil {
		return nil, err
	}
	return &TransformerSelector{
		classifier: classifier,
		mode:       ec.IncrementMode,
		rightShift: ec.RightShiftWhenZeroMajor,
	}, nil
}

// Selection is the outcome of scanning a message window.
type Selection struct {
	Transformers []transformer.Transformer
	// CommitCount is the number of commits in the window.
	CommitCount int
}

// Select scans commits oldest-first and returns the bump transformers for
// a start version. released tells whether the start core was already released.
func (s *TransformerSelector) Select(
	start semver.SemanticVersion,
	released bool,
	commits iter.Seq[git.Commit],
	exp *Explanation,
) (Selection, error) {
	var sel Selection
	plain := 0
	highest := semver.VersionFieldNone

	current := start
	currentReleased := released

	for c := range commits {
		sel.CommitCount++
		cls := s.classifier.Classify(c.Message)
		switch {
		case cls.Skip:
			exp.Addf("commit %s %q -> skipped (no-bump directive)", c.ShortSha(), c.Subject())
			continue
		case cls.Field == semver.VersionFieldNone:
			plain++
			continue
		}
		exp.Addf("commit %s %q -> %s (%s)", c.ShortSha(), c.Subject(), cls.Field, cls.Convention)

		switch s.mode {
		case semver.IncrementModeSuccessive:
			highest = max(highest, cls.Field)
		case semver.IncrementModeConsecutive:
			field := s.effectiveField(current, currentReleased, cls.Field, exp)
			if field == semver.VersionFieldNone {
				continue
			}
			t := transformer.ForField(field)
			next, err := transformer.Apply(current, t)
			if err != nil {
				return Selection{}, err
			}
			sel.Transformers = append(sel.Transformers, t)
			current, currentReleased = next, true
		}
	}

	exp.Addf("scanned %d commits", sel.CommitCount)

	switch s.mode {
	case semver.IncrementModeNone:
		exp.Add("increment-mode None: no bump")
		return sel, nil
	case semver.IncrementModeSuccessive:
		exp.Addf("highest increment from commits: %s", highest)
		if field := s.effectiveField(start, released, highest, exp); field != semver.VersionFieldNone {
			sel.Transformers = append(sel.Transformers, transformer.ForField(field))
		}
	}

	if len(sel.Transformers) == 0 && released && plain > 0 {
		exp.Add("released core with unversioned commits: NextPatch")
		sel.Transformers = append(sel.Transformers, transformer.NextPatch)
	}
	return sel, nil
}

// effectiveField applies right-shift and the unreleased-core guard to field.
func (s *TransformerSelector) effectiveField(
	v semver.SemanticVersion,
	released bool,
	field semver.VersionField,
	exp *Explanation,
) semver.VersionField {
	if field == semver.VersionFieldNone {
		return field
	}
	if s.rightShift && v.Major() == 0 && field == semver.VersionFieldMajor {
		exp.Add("major is 0: shifting Major -> Minor")
		field = semver.VersionFieldMinor
	}
	if released {
		return field
	}

	// The unreleased core already implies a bump; only raise it further.
	var applies bool
	switch field {
	case semver.VersionFieldMajor:
		applies = v.Minor() != 0 || v.Patch() != 0
	case semver.VersionFieldMinor:
		applies = v.Patch() != 0
	}
	if !applies {
		exp.Addf("core %s not released yet and already covers %s", v.Core(), field)
		return semver.VersionFieldNone
	}
	return field
}
