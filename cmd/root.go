// Package cmd implements the nextver command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-nextver/internal/log"
	"github.com/MyCarrier-DevOps/go-nextver/pkg/sdk"
)

// Global flags shared across commands.
var (
	flagPath             string
	flagBranch           string
	flagCommit           string
	flagConfig           string
	flagOutput           string
	flagShowParts        []string
	flagShowConfig       bool
	flagExplain          bool
	flagVerbosity        string
	flagPreRelease       string
	flagSearchPreRelease string
	flagSinceCommit      string
)

// rootCmd is the top-level command for nextver.
var rootCmd = &cobra.Command{
	Use:   "nextver",
	Short: "Next semantic version from git history",
	Long: `nextver calculates the next semantic version of a branch from its latest
version tag, the commit messages since that tag and the matching branch case.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	// Default action is calculate.
	RunE: calculateRunE,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagPath, "path", "p", ".", "path to the git repository")
	flags.StringVarP(&flagBranch, "branch", "b", "", "target branch (default: current HEAD)")
	flags.StringVarP(&flagCommit, "commit", "c", "", "target commit or revision (default: branch tip)")
	flags.StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	flags.StringVarP(&flagOutput, "output", "o", "text", "output format: text, json or yaml")
	flags.StringArrayVar(&flagShowParts, "show-part", nil, "output only this part (repeatable), e.g. SemVer")
	flags.BoolVar(&flagShowConfig, "show-config", false, "display the effective configuration and exit")
	flags.BoolVar(&flagExplain, "explain", false, "show how the version was calculated on stderr")
	flags.StringVarP(&flagVerbosity, "verbosity", "v", log.VerbosityInfo, "log verbosity: quiet, info or debug")
	flags.StringVar(&flagPreRelease, "pre-release", "", `pre-release label for this run ("" releases)`)
	flags.StringVar(&flagSearchPreRelease, "search-pre-release", "", `pre-release searched for the latest version ("" searches releases only)`)
	flags.StringVar(&flagSinceCommit, "since-commit", "", "start the message window after this revision")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger logs to the command's stderr at the --verbosity level.
func newLogger(cmd *cobra.Command) (*log.DefaultLogger, error) {
	logger := log.NewDefaultLogger(cmd.ErrOrStderr())
	if err := logger.SetLevel(flagVerbosity); err != nil {
		return nil, err
	}
	return logger, nil
}

// overrideFromFlags maps the case override flags. Only flags given on the
// command line take effect, so --pre-release "" can clear the label.
func overrideFromFlags(cmd *cobra.Command) sdk.Override {
	var o sdk.Override
	flags := cmd.Flags()
	if flags.Changed("pre-release") {
		v := flagPreRelease
		o.PreRelease = &v
	}
	if flags.Changed("search-pre-release") {
		v := flagSearchPreRelease
		o.SearchPreRelease = &v
	}
	o.SinceCommit = flagSinceCommit
	return o
}
