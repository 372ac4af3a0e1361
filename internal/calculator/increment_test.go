package calculator

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-nextver/internal/config"
	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"
	"github.com/MyCarrier-DevOps/go-nextver/internal/transformer"
)

func newCommit(sha, msg string) git.Commit {
	return git.Commit{Sha: sha, When: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Message: msg}
}

func defaultEC() config.EffectiveConfiguration {
	cfg, err := config.NewBuilder().Build()
	if err != nil {
		panic(err)
	}
	return config.NewEffectiveConfiguration(cfg)
}

func commitsOf(msgs ...string) []git.Commit {
	out := make([]git.Commit, 0, len(msgs))
	for i, m := range msgs {
		out = append(out, newCommit(string(rune('a'+i))+"000000", m))
	}
	return out
}

func TestConventionalCommit(t *testing.T) {
	tests := []struct {
		msg  string
		want semver.VersionField
	}{
		{"feat: add login", semver.VersionFieldMinor},
		{"feat(auth): add login", semver.VersionFieldMinor},
		{"fix: null pointer", semver.VersionFieldPatch},
		{"FIX: shouting", semver.VersionFieldPatch},
		{"feat!: remove api", semver.VersionFieldMajor},
		{"refactor(core)!: drop v1", semver.VersionFieldMajor},
		{"feat: change API\n\nBREAKING CHANGE: removed old endpoint", semver.VersionFieldMajor},
		{"feat: change API\n\nBREAKING-CHANGE: removed old endpoint", semver.VersionFieldMajor},
		{"chore: update deps", semver.VersionFieldNone},
		{"Update README", semver.VersionFieldNone},
		{"feat:no space", semver.VersionFieldNone},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			require.Equal(t, tt.want, analyzeConventionalCommit(tt.msg))
		})
	}
}

func TestMessageClassifier(t *testing.T) {
	tests := []struct {
		name       string
		convention semver.CommitMessageConvention
		msg        string
		want       Classification
	}{
		{"both picks higher directive", semver.CommitMessageConventionBoth, "fix: x +semver: major",
			Classification{Field: semver.VersionFieldMajor, Convention: "Bump Directive"}},
		{"both picks conventional", semver.CommitMessageConventionBoth, "feat: y",
			Classification{Field: semver.VersionFieldMinor, Convention: "Conventional Commits"}},
		{"conventional ignores directive", semver.CommitMessageConventionConventionalCommits, "chore: +semver: minor",
			Classification{Field: semver.VersionFieldNone, Convention: "Conventional Commits"}},
		{"directive ignores conventional", semver.CommitMessageConventionBumpDirective, "feat: y",
			Classification{Field: semver.VersionFieldNone, Convention: "Bump Directive"}},
		{"directive feature", semver.CommitMessageConventionBumpDirective, "add +semver: feature",
			Classification{Field: semver.VersionFieldMinor, Convention: "Bump Directive"}},
		{"directive fix", semver.CommitMessageConventionBumpDirective, "+semver:fix",
			Classification{Field: semver.VersionFieldPatch, Convention: "Bump Directive"}},
		{"no-bump wins", semver.CommitMessageConventionBoth, "feat: y +semver: skip",
			Classification{Skip: true, Convention: "Bump Directive"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ec := defaultEC()
			ec.CommitMessageConvention = tt.convention
			c, err := NewMessageClassifier(ec)
			require.NoError(t, err)
			require.Equal(t, tt.want, c.Classify(tt.msg))
		})
	}
}

func TestMessageClassifier_EmptyAndInvalidDirectives(t *testing.T) {
	ec := defaultEC()
	ec.NoBumpMessage = ""
	ec.MajorVersionBumpMessage = ""
	c, err := NewMessageClassifier(ec)
	require.NoError(t, err)
	require.Equal(t, semver.VersionFieldNone, c.Classify("+semver: major").Field)
	require.False(t, c.Classify("+semver: none").Skip)

	ec.MinorVersionBumpMessage = "(["
	_, err = NewMessageClassifier(ec)
	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "minor-version-bump-message", cfgErr.Field)
}

func selectFor(t *testing.T, ec config.EffectiveConfiguration, start string, released bool, msgs ...string) []transformer.Transformer {
	t.Helper()
	s, err := NewTransformerSelector(ec)
	require.NoError(t, err)
	sel, err := s.Select(semver.MustParse(start), released, slices.Values(commitsOf(msgs...)), nil)
	require.NoError(t, err)
	require.Equal(t, len(msgs), sel.CommitCount)
	return sel.Transformers
}

func TestSelect_Successive(t *testing.T) {
	ec := defaultEC()
	tests := []struct {
		name     string
		start    string
		released bool
		msgs     []string
		want     []transformer.Transformer
	}{
		{"empty window", "1.2.0", true, nil, nil},
		{"plain commits patch", "1.2.0", true, []string{"update docs", "wip"}, []transformer.Transformer{transformer.NextPatch}},
		{"highest wins", "1.2.0", true, []string{"fix: a", "feat: b", "fix: c"}, []transformer.Transformer{transformer.NextMinor}},
		{"breaking", "1.2.0", true, []string{"feat!: a"}, []transformer.Transformer{transformer.NextMajor}},
		{"right shift at zero major", "0.4.0", true, []string{"feat!: a"}, []transformer.Transformer{transformer.NextMinor}},
		{"skip only", "1.2.0", true, []string{"chore: x +semver: none"}, nil},
		{"unreleased patch never", "1.3.0-develop", false, []string{"fix: a"}, nil},
		{"unreleased minor covered", "1.3.0-develop", false, []string{"feat: a"}, nil},
		{"unreleased minor raises", "1.2.1-develop", false, []string{"feat: a"}, []transformer.Transformer{transformer.NextMinor}},
		{"unreleased major covered", "2.0.0-develop", false, []string{"feat!: a"}, nil},
		{"unreleased major raises", "1.3.0-develop", false, []string{"feat!: a"}, []transformer.Transformer{transformer.NextMajor}},
		{"unreleased plain no fallback", "1.3.0-develop", false, []string{"wip"}, nil},
		{"initial version feat covered", "0.1.0", false, []string{"feat: a"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, selectFor(t, ec, tt.start, tt.released, tt.msgs...))
		})
	}
}

func TestSelect_RightShiftDisabled(t *testing.T) {
	ec := defaultEC()
	ec.RightShiftWhenZeroMajor = false
	require.Equal(t, []transformer.Transformer{transformer.NextMajor},
		selectFor(t, ec, "0.4.0", true, "feat!: a"))
}

func TestSelect_Consecutive(t *testing.T) {
	ec := defaultEC()
	ec.IncrementMode = semver.IncrementModeConsecutive

	got := selectFor(t, ec, "1.2.0", true, "fix: a", "feat: b", "wip", "fix: c")
	require.Equal(t, []transformer.Transformer{transformer.NextPatch, transformer.NextMinor, transformer.NextPatch}, got)

	v, err := transformer.Apply(semver.MustParse("1.2.0"), got...)
	require.NoError(t, err)
	require.Equal(t, "1.3.1", v.String())

	// guard applies until the first bump lands
	got = selectFor(t, ec, "1.3.0-rc", false, "feat: a", "feat!: b", "fix: c")
	require.Equal(t, []transformer.Transformer{transformer.NextMajor, transformer.NextPatch}, got)

	require.Equal(t, []transformer.Transformer{transformer.NextPatch},
		selectFor(t, ec, "1.2.0", true, "wip"))
}

func TestSelect_None(t *testing.T) {
	ec := defaultEC()
	ec.IncrementMode = semver.IncrementModeNone
	require.Empty(t, selectFor(t, ec, "1.2.0", true, "feat!: a", "wip"))
}

func TestSelect_Explanation(t *testing.T) {
	s, err := NewTransformerSelector(defaultEC())
	require.NoError(t, err)
	exp := &Explanation{}
	_, err = s.Select(semver.MustParse("0.3.0"), true, slices.Values(commitsOf("feat!: drop", "docs: x +semver: skip")), exp)
	require.NoError(t, err)
	require.Contains(t, exp.Steps, `commit a000000 "feat!: drop" -> Major (Conventional Commits)`)
	require.Contains(t, exp.Steps, `commit b000000 "docs: x +semver: skip" -> skipped (no-bump directive)`)
	require.Contains(t, exp.Steps, "major is 0: shifting Major -> Minor")
	require.Contains(t, exp.Steps, "scanned 2 commits")
}

func TestExplanation_NilSafe(t *testing.T) {
	var exp *Explanation
	require.NotPanics(t, func() {
		exp.Add("x")
		exp.Addf("%d", 1)
	})
}
