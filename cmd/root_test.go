package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and fresh flag values.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	reset(remoteCmd.Flags())
}

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{
		"path", "branch", "commit", "config", "output", "show-part", "show-config",
		"explain", "verbosity", "pre-release", "search-pre-release", "since-commit",
	} {
		require.NotNil(t, flags.Lookup(name), name)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	require.True(t, names["version"])
	require.True(t, names["remote"])
}

func TestOverrideFromFlags(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	o := overrideFromFlags(rootCmd)
	require.Nil(t, o.PreRelease)
	require.Nil(t, o.SearchPreRelease)

	require.NoError(t, rootCmd.PersistentFlags().Set("pre-release", ""))
	require.NoError(t, rootCmd.PersistentFlags().Set("since-commit", "v1.0.0"))
	o = overrideFromFlags(rootCmd)
	require.NotNil(t, o.PreRelease)
	require.Equal(t, "", *o.PreRelease)
	require.Nil(t, o.SearchPreRelease)
	require.Equal(t, "v1.0.0", o.SinceCommit)
}
