package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-nextver/internal/label"
)

func TestBranchCase_Key(t *testing.T) {
	require.Equal(t, "named", (&BranchCase{Name: "named", IfBranch: stringPtr("x")}).Key())
	require.Equal(t, "^x$", (&BranchCase{IfBranch: stringPtr("^x$")}).Key())
	require.Equal(t, "", (&BranchCase{}).Key())
}

func TestBranchCase_MergeTo(t *testing.T) {
	target := &BranchCase{
		Name:              "develop",
		IfBranch:          stringPtr("^develop$"),
		PreRelease:        label.Of("alpha"),
		SearchPreRelease:  label.Of("alpha"),
		PreReleaseEscapes: escapesPtr([]EscapeRule{{Pattern: "/", Replacement: "-"}}),
	}
	src := &BranchCase{
		SinceCommit:      stringPtr("abc"),
		SearchPreRelease: label.Cleared(),
	}
	src.MergeTo(target)

	require.Equal(t, "develop", target.Name)
	require.Equal(t, "^develop$", *target.IfBranch)
	require.Equal(t, "abc", *target.SinceCommit)
	require.Equal(t, "alpha", target.PreRelease.Value())
	require.True(t, target.SearchPreRelease.IsCleared())
	require.Len(t, *target.PreReleaseEscapes, 1)

	// nil receivers and targets are no-ops
	(*BranchCase)(nil).MergeTo(target)
	src.MergeTo(nil)
}

func TestBranchCase_Clone(t *testing.T) {
	orig := &BranchCase{
		Name:                    "x",
		IfBranch:                stringPtr("x"),
		Branch:                  stringPtr("main"),
		PreRelease:              label.Of("beta"),
		SearchPreReleaseEscapes: escapesPtr([]EscapeRule{{Pattern: "a", Replacement: "b"}}),
	}
	c := orig.Clone()
	require.Equal(t, orig, c)

	*c.IfBranch = "y"
	(*c.SearchPreReleaseEscapes)[0].Pattern = "z"
	require.Equal(t, "x", *orig.IfBranch)
	require.Equal(t, "a", (*orig.SearchPreReleaseEscapes)[0].Pattern)

	require.Nil(t, (*BranchCase)(nil).Clone())
}

func TestConfig_FindCaseAndDefault(t *testing.T) {
	cfg := CreateDefaultConfiguration()
	require.NotNil(t, cfg.FindCase("main"))
	require.Nil(t, cfg.FindCase("develop"))
	require.Nil(t, cfg.FindCase(""))
	require.Equal(t, DefaultCaseName, cfg.DefaultCase().Name)

	empty := &Config{}
	require.Equal(t, DefaultCaseName, empty.DefaultCase().Name)
}

func TestCompileEscapes(t *testing.T) {
	subs, err := CompileEscapes("x", nil)
	require.NoError(t, err)
	require.Nil(t, subs)

	subs, err = CompileEscapes("x", escapesPtr([]EscapeRule{}))
	require.NoError(t, err)
	require.NotNil(t, subs)
	require.Empty(t, subs)

	subs, err = CompileEscapes("x", escapesPtr([]EscapeRule{{Pattern: "/", Replacement: "-"}}))
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "a-b", subs[0].Apply("a/b"))
}

func TestEffectiveConfiguration(t *testing.T) {
	ec := NewEffectiveConfiguration(&Config{})
	require.Equal(t, "0.1.0", ec.StartVersion)
	require.Equal(t, "[vV]", ec.TagPrefix)
	require.True(t, ec.RightShiftWhenZeroMajor)
	require.True(t, ec.Ignore().IsEmpty())

	cfg, err := NewBuilder().Add(&Config{RightShiftWhenZeroMajor: boolPtr(false), Ignore: IgnoreConfig{Sha: []string{"a"}}}).Build()
	require.NoError(t, err)
	ec = NewEffectiveConfiguration(cfg)
	require.False(t, ec.RightShiftWhenZeroMajor)
	require.Equal(t, []string{"a"}, ec.Ignore().Sha)
}

func TestConfigurationError_Error(t *testing.T) {
	err := &ConfigurationError{Field: "tag-prefix", Value: "[", Err: errString("boom")}
	require.Equal(t, `invalid configuration tag-prefix "[": boom`, err.Error())
	err = &ConfigurationError{Field: "branches[0]", Err: errString("boom")}
	require.Equal(t, "invalid configuration branches[0]: boom", err.Error())
}

type errString string

func (e errString) Error() string { return string(e) }
