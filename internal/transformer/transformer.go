// Package transformer provides the version transformers and the fold that
// applies them in order to a start version.
package transformer

import (
	"github.com/MyCarrier-DevOps/go-nextver/internal/label"
	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"
)

// Transformer maps one version to another. When DoesNotTransform reports
// true, TransformVersion is never called.
type Transformer interface {
	DoesNotTransform() bool
	TransformVersion(v semver.SemanticVersion) (semver.SemanticVersion, error)
}

// Apply folds transformers over start from left to right. Nil transformers
// and no-ops are skipped. The first error aborts the fold.
func Apply(start semver.SemanticVersion, transformers ...Transformer) (semver.SemanticVersion, error) {
	current := start
	for _, t := range transformers {
		if t == nil || t.DoesNotTransform() {
			continue
		}
		next, err := t.TransformVersion(current)
		if err != nil {
			return semver.SemanticVersion{}, err
		}
		current = next
	}
	return current, nil
}

// Func adapts a pure function to a Transformer.
type Func func(v semver.SemanticVersion) (semver.SemanticVersion, error)

func (f Func) DoesNotTransform() bool { return f == nil }

func (f Func) TransformVersion(v semver.SemanticVersion) (semver.SemanticVersion, error) {
	return f(v)
}

type identity struct{}

func (identity) DoesNotTransform() bool { return true }

func (identity) TransformVersion(v semver.SemanticVersion) (semver.SemanticVersion, error) {
	return v, nil
}

// Identity never transforms.
var Identity Transformer = identity{}

// Increment bumps a single core field. Lower fields reset to zero and the
// pre-release and build metadata are cleared.
type Increment struct {
	Field semver.VersionField
}

var (
	NextMajor Transformer = Increment{Field: semver.VersionFieldMajor}
	NextMinor Transformer = Increment{Field: semver.VersionFieldMinor}
	NextPatch Transformer = Increment{Field: semver.VersionFieldPatch}
)

// ForField returns the increment transformer for field, or Identity for None.
func ForField(field semver.VersionField) Transformer {
	switch field {
	case semver.VersionFieldMajor:
		return NextMajor
	case semver.VersionFieldMinor:
		return NextMinor
	case semver.VersionFieldPatch:
		return NextPatch
	default:
		return Identity
	}
}

func (i Increment) DoesNotTransform() bool {
	return i.Field == semver.VersionFieldNone
}

func (i Increment) TransformVersion(v semver.SemanticVersion) (semver.SemanticVersion, error) {
	switch i.Field {
	case semver.VersionFieldMajor:
		return v.With().Major(v.Major() + 1).Minor(0).Patch(0).ToVersion()
	case semver.VersionFieldMinor:
		return v.With().Minor(v.Minor() + 1).Patch(0).ToVersion()
	case semver.VersionFieldPatch:
		return v.With().Patch(v.Patch() + 1).ToVersion()
	default:
		return v, nil
	}
}

func (i Increment) String() string {
	return "Next" + i.Field.String()
}

// PreReleaseTransformer sets or removes the pre-release label.
type PreReleaseTransformer struct {
	Label label.Label
}

// PreRelease returns a transformer that applies l. An unset label does nothing.
func PreRelease(l label.Label) Transformer {
	return PreReleaseTransformer{Label: l}
}

func (p PreReleaseTransformer) DoesNotTransform() bool {
	return p.Label.IsUnset()
}

func (p PreReleaseTransformer) TransformVersion(v semver.SemanticVersion) (semver.SemanticVersion, error) {
	return v.With().PreRelease(p.Label.Value()).ToVersion()
}

func (p PreReleaseTransformer) String() string {
	return "PreRelease(" + p.Label.String() + ")"
}
