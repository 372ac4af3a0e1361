package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-nextver/internal/output"
	"github.com/MyCarrier-DevOps/go-nextver/pkg/sdk"
)

var (
	flagToken            string
	flagAppID            int64
	flagAppKeyPath       string
	flagGitHubURL        string
	flagRef              string
	flagMaxCommits       int
	flagRemoteConfigPath string
)

var remoteCmd = &cobra.Command{
	Use:   "remote owner/repo",
	Short: "Calculate the version of a GitHub repository via the API",
	Long: `Calculate the next semantic version by reading git history from the
GitHub API. No local clone is required.

Authentication (checked in order):
  1. --token flag or GITHUB_TOKEN env var
  2. --github-app-id + --github-app-key-path or GH_APP_ID + GH_APP_PRIVATE_KEY env vars

Examples:
  GITHUB_TOKEN=ghp_xxx nextver remote myorg/myrepo
  nextver remote myorg/myrepo --token ghp_xxx --ref develop
  nextver remote myorg/myrepo --github-app-id 12345 --github-app-key-path /path/to/key.pem`,
	Args: cobra.ExactArgs(1),
	RunE: remoteRunE,
}

func init() {
	flags := remoteCmd.Flags()
	flags.StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	flags.Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	flags.StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY env var)")
	flags.StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
	flags.StringVar(&flagRef, "ref", "", "git ref to version: branch, tag, or SHA (default: repo default branch)")
	flags.IntVar(&flagMaxCommits, "max-commits", 1000, "maximum commit depth to walk via API")
	flags.StringVar(&flagRemoteConfigPath, "remote-config-path", "", "path to config file in the remote repo (e.g. .github/nextver.yml)")

	rootCmd.AddCommand(remoteCmd)
}

func remoteRunE(cmd *cobra.Command, args []string) error {
	owner, repo, err := parseOwnerRepo(args[0])
	if err != nil {
		return err
	}
	view, err := output.ParseView(flagOutput)
	if err != nil {
		return err
	}
	parts, err := output.ResolveParts(flagShowParts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	opts := sdk.RemoteOptions{
		Owner:            owner,
		Repo:             repo,
		Token:            flagToken,
		AppID:            flagAppID,
		AppKeyPath:       flagAppKeyPath,
		BaseURL:          flagGitHubURL,
		Ref:              flagRef,
		MaxCommits:       flagMaxCommits,
		Branch:           flagBranch,
		Commit:           flagCommit,
		ConfigPath:       flagConfig,
		RemoteConfigPath: flagRemoteConfigPath,
		Override:         overrideFromFlags(cmd),
		Explain:          flagExplain,
		Context:          cmd.Context(),
		Logger:           logger,
	}

	if flagShowConfig {
		cfg, err := sdk.LoadRemoteConfig(opts)
		if err != nil {
			return err
		}
		return showConfig(cmd.OutOrStdout(), cfg, view)
	}

	result, err := sdk.CalculateRemote(opts)
	if err != nil {
		return err
	}
	return writeResult(cmd, result, view, parts)
}

func parseOwnerRepo(s string) (string, string, error) {
	owner, repo, ok := strings.Cut(s, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository format %q, expected owner/repo", s)
	}
	return owner, repo, nil
}
