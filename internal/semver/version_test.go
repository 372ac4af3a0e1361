package semver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_ValidVersions(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		tagPrefix string
		want      string
		pre       string
		build     string
	}{
		{"major only", "1", "", "1.0.0", "", ""},
		{"major.minor", "1.2", "", "1.2.0", "", ""},
		{"major.minor.patch", "1.2.3", "", "1.2.3", "", ""},
		{"pre-release", "1.2.3-beta.4", "", "1.2.3-beta.4", "beta.4", ""},
		{"build metadata", "1.2.3+sha.abc", "", "1.2.3+sha.abc", "", "sha.abc"},
		{"both", "1.2.3-rc.1+5", "", "1.2.3-rc.1+5", "rc.1", "5"},
		{"v prefix", "v1.2.3", "[vV]", "1.2.3", "", ""},
		{"V prefix", "V2.0.0", "[vV]", "2.0.0", "", ""},
		{"optional prefix absent", "3.1.0", "[vV]?", "3.1.0", "", ""},
		{"custom prefix", "release-1.0.0", "release-", "1.0.0", "", ""},
		{"zero parts", "0.0.0", "", "0.0.0", "", ""},
		{"multi-digit parts", "10.20.300", "", "10.20.300", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input, tt.tagPrefix)
			require.NoError(t, err)
			require.Equal(t, tt.want, v.String())
			require.Equal(t, tt.pre, v.PreRelease())
			require.Equal(t, tt.build, v.BuildMetadata())
		})
	}
}

func TestParse_InvalidVersions(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		tagPrefix string
	}{
		{"empty", "", ""},
		{"letters", "abc", ""},
		{"four parts", "1.2.3.4", ""},
		{"empty pre-release", "1.2.3-", ""},
		{"leading zero pre-release", "1.2.3-01", ""},
		{"leading zero major", "v01.2.3", "[vV]"},
		{"leading zero minor", "1.02.3", ""},
		{"leading zero patch", "1.2.03", ""},
		{"slash in pre-release", "1.2.3-feature/x", ""},
		{"empty build", "1.2.3+", ""},
		{"prefix required", "1.2.3", "v"},
		{"bad prefix regex", "v1.2.3", "[v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, tt.tagPrefix)
			require.Error(t, err)
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			require.Equal(t, tt.input, parseErr.Input)

			_, ok := TryParse(tt.input, tt.tagPrefix)
			require.False(t, ok)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"1.2.0", "1.1.9", 1},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0-alpha", "1.0.0-alpha.1", -1},
		{"1.0.0-alpha.1", "1.0.0-alpha.beta", -1},
		{"1.0.0-beta.2", "1.0.0-beta.11", -1},
		{"1.0.0-rc.1", "1.0.0-beta.11", 1},
		{"1.0.0+build.1", "1.0.0+build.2", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			require.Equal(t, tt.want, MustParse(tt.a).Compare(MustParse(tt.b)))
			require.Equal(t, -tt.want, MustParse(tt.b).Compare(MustParse(tt.a)))
		})
	}
}

func TestCoreAndSemVer(t *testing.T) {
	v := MustParse("4.5.6-develop+abc")
	require.Equal(t, "4.5.6", v.Core())
	require.Equal(t, "4.5.6-develop", v.SemVer())
	require.Equal(t, "4.5.6-develop+abc", v.String())
	require.True(t, v.HasPreRelease())
	require.True(t, v.HasBuildMetadata())
	require.Equal(t, "4.5.6", v.CoreVersion().String())
}

func TestNew_ClampsNegative(t *testing.T) {
	require.Equal(t, "0.2.0", New(-1, 2, -3).String())
}

func TestMustParse_Panics(t *testing.T) {
	require.Panics(t, func() { MustParse("nope") })
}
