package transformer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-nextver/internal/label"
	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"
)

type countingTransformer struct {
	noop  bool
	calls int
}

func (c *countingTransformer) DoesNotTransform() bool { return c.noop }

func (c *countingTransformer) TransformVersion(v semver.SemanticVersion) (semver.SemanticVersion, error) {
	c.calls++
	return v.With().Patch(v.Patch() + 10).ToVersion()
}

func TestBuiltins(t *testing.T) {
	start := semver.MustParse("1.2.3-beta.1+build.5")

	tests := []struct {
		name string
		tr   Transformer
		want string
	}{
		{"next patch", NextPatch, "1.2.4"},
		{"next minor", NextMinor, "1.3.0"},
		{"next major", NextMajor, "2.0.0"},
		{"set pre-release", PreRelease(label.Of("develop")), "1.2.3-develop+build.5"},
		{"clear pre-release", PreRelease(label.Cleared()), "1.2.3+build.5"},
		{"unset pre-release", PreRelease(label.Unset()), "1.2.3-beta.1+build.5"},
		{"identity", Identity, "1.2.3-beta.1+build.5"},
		{"for field none", ForField(semver.VersionFieldNone), "1.2.3-beta.1+build.5"},
		{"for field minor", ForField(semver.VersionFieldMinor), "1.3.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(start, tt.tr)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestApply_OrderMatters(t *testing.T) {
	start := semver.MustParse("1.2.0")

	got, err := Apply(start, NextPatch, PreRelease(label.Of("develop")))
	require.NoError(t, err)
	require.Equal(t, "1.2.1-develop", got.String())

	got, err = Apply(start, PreRelease(label.Of("develop")), NextPatch)
	require.NoError(t, err)
	require.Equal(t, "1.2.1", got.String())
}

func TestApply_ReleasedPatch(t *testing.T) {
	got, err := Apply(semver.MustParse("1.2.0"), NextPatch)
	require.NoError(t, err)
	require.Equal(t, "1.2.1", got.String())
}

func TestApply_SkipsNilAndNoop(t *testing.T) {
	noop := &countingTransformer{noop: true}
	active := &countingTransformer{}

	got, err := Apply(semver.MustParse("1.0.0"), nil, noop, active, Identity)
	require.NoError(t, err)
	require.Equal(t, "1.0.10", got.String())
	require.Equal(t, 0, noop.calls)
	require.Equal(t, 1, active.calls)
}

func TestApply_EmptyChain(t *testing.T) {
	start := semver.MustParse("3.1.4-rc.1")
	got, err := Apply(start)
	require.NoError(t, err)
	require.True(t, got.Equal(start))
}

func TestApply_ErrorAborts(t *testing.T) {
	errBoom := errors.New("boom")
	after := &countingTransformer{}
	failing := Func(func(semver.SemanticVersion) (semver.SemanticVersion, error) {
		return semver.SemanticVersion{}, errBoom
	})

	_, err := Apply(semver.MustParse("1.0.0"), NextMinor, failing, after)
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, 0, after.calls)
}

func TestApply_InvalidPreReleaseIsValidationError(t *testing.T) {
	_, err := Apply(semver.MustParse("1.0.0"), PreRelease(label.Of("feature/x")))
	var verr *semver.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "pre-release", verr.Field)
}

func TestApply_Deterministic(t *testing.T) {
	chain := []Transformer{NextMinor, NextPatch, PreRelease(label.Of("rc.1"))}
	start := semver.MustParse("0.4.2")

	first, err := Apply(start, chain...)
	require.NoError(t, err)
	for range 5 {
		again, err := Apply(start, chain...)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
	require.Equal(t, "0.5.1-rc.1", first.String())
}

func TestFunc(t *testing.T) {
	var nilFunc Func
	require.True(t, nilFunc.DoesNotTransform())

	withBuild := Func(func(v semver.SemanticVersion) (semver.SemanticVersion, error) {
		return v.With().BuildMetadata("sha.abc").ToVersion()
	})
	require.False(t, withBuild.DoesNotTransform())

	got, err := Apply(semver.MustParse("1.0.0"), nilFunc, withBuild)
	require.NoError(t, err)
	require.Equal(t, "1.0.0+sha.abc", got.String())
}

func TestString(t *testing.T) {
	require.Equal(t, "NextMinor", NextMinor.(Increment).String())
	require.Equal(t, "PreRelease(develop)", PreRelease(label.Of("develop")).(PreReleaseTransformer).String())
}
