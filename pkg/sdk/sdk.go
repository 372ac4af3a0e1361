// Package sdk provides a public Go API for calculating the next semantic
// version from git history. It supports local repositories (via go-git) and
// remote GitHub repositories (via the GitHub API).
//
// Basic usage:
//
//	result, err := sdk.Calculate(sdk.LocalOptions{
//	    Path: "/path/to/repo",
//	})
//	fmt.Println(result.Variables["SemVer"]) // "1.2.3"
//
//	result, err := sdk.CalculateRemote(sdk.RemoteOptions{
//	    Owner: "myorg",
//	    Repo:  "myrepo",
//	    Token: os.Getenv("GITHUB_TOKEN"),
//	})
//	fmt.Println(result.Variables["SemVer"]) // "1.3.0-develop"
package sdk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/sync/errgroup"

	"github.com/MyCarrier-DevOps/go-nextver/internal/calculator"
	"github.com/MyCarrier-DevOps/go-nextver/internal/config"
	"github.com/MyCarrier-DevOps/go-nextver/internal/events"
	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
	"github.com/MyCarrier-DevOps/go-nextver/internal/label"
	"github.com/MyCarrier-DevOps/go-nextver/internal/log"
	"github.com/MyCarrier-DevOps/go-nextver/internal/output"
	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"

	calcctx "github.com/MyCarrier-DevOps/go-nextver/internal/context"
	ghprovider "github.com/MyCarrier-DevOps/go-nextver/internal/github"
)

// Bus receives calculation stage events. Create one with NewBus.
type Bus = events.Bus

// Event is a calculation stage notification.
type Event = events.Event

// EventKind identifies a calculation stage.
type EventKind = events.Kind

// Stage event kinds, in emission order.
const (
	CalculationStarting  = events.CalculationStarting
	BranchCaseResolved   = events.BranchCaseResolved
	CommitVersionFound   = events.CommitVersionFound
	MessagesCollected    = events.MessagesCollected
	CalculationCompleted = events.CalculationCompleted
)

// NewBus returns an empty event bus.
func NewBus() *Bus { return events.NewBus() }

// Logger receives progress messages. Nil discards them.
type Logger = log.Logger

// Config is a layered nextver configuration.
type Config = config.Config

// Override replaces settings of the matched branch case for one run.
type Override struct {
	// PreRelease sets the pre-release label. A pointer to "" removes it.
	PreRelease *string

	// SearchPreRelease sets the pre-release searched for when finding the
	// latest version. A pointer to "" restricts the search to releases.
	SearchPreRelease *string

	// SinceCommit starts the message window after this revision.
	SinceCommit string
}

func (o Override) branchCase() *config.BranchCase {
	if o.PreRelease == nil && o.SearchPreRelease == nil && o.SinceCommit == "" {
		return nil
	}
	bc := &config.BranchCase{
		PreRelease:       label.FromPtr(o.PreRelease),
		SearchPreRelease: label.FromPtr(o.SearchPreRelease),
	}
	if o.SinceCommit != "" {
		since := o.SinceCommit
		bc.SinceCommit = &since
	}
	return bc
}

// LocalOptions configures version calculation from a local git repository.
type LocalOptions struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// Branch overrides the target branch. Empty means use HEAD.
	Branch string

	// Commit overrides the branch tip with any revision. Empty means use tip.
	Commit string

	// ConfigPath is the path to a nextver YAML, TOML or JSON config file.
	// If empty, the repository is searched for one (see config.FileNames).
	ConfigPath string

	// Override replaces settings of the matched branch case.
	Override Override

	// Explain populates Result.Explanation.
	Explain bool

	Bus    *Bus
	Logger Logger
}

// RemoteOptions configures version calculation via the GitHub API.
type RemoteOptions struct {
	// Owner is the GitHub repository owner (required).
	Owner string

	// Repo is the GitHub repository name (required).
	Repo string

	// Token is a GitHub personal access token. Falls back to GITHUB_TOKEN.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string

	// Ref is the git ref to version: branch, tag, or SHA. Defaults to the
	// repository's default branch.
	Ref string

	// MaxCommits is the hard cap on commit walk depth. Defaults to 1000.
	MaxCommits int

	// Branch overrides the target branch for context resolution.
	Branch string

	// Commit overrides the branch tip with any revision.
	Commit string

	// ConfigPath is a local config file that replaces the remote one.
	ConfigPath string

	// RemoteConfigPath names the config file in the remote repository. If
	// empty, the usual file names are tried.
	RemoteConfigPath string

	Override Override
	Explain  bool

	// Context bounds every API request. Defaults to context.Background().
	Context context.Context

	Bus    *Bus
	Logger Logger
}

// Result holds the calculated version and all output variables.
type Result struct {
	// Version is the calculated version, e.g. "1.3.0-develop".
	Version string

	// Variables contains every output part keyed by name: Major, Minor,
	// Patch, VersionCore, PreRelease, BuildMetadata, SemVer, Branch,
	// SinceCommit and CommitsSince.
	Variables map[string]string

	// Explanation is nil unless Explain was requested.
	Explanation *Explanation
}

// Explanation describes how a version was reached.
type Explanation struct {
	// CaseName is the branch case that matched, or "default".
	CaseName string

	// FoundVersion and FoundTag are empty when no version tag was found.
	FoundVersion string
	FoundTag     string

	// Transformers lists the applied transformers in order.
	Transformers []string

	// Steps records the reasoning in order.
	Steps []string

	// FormattedOutput is the human-readable report (same as CLI --explain).
	FormattedOutput string
}

// Calculate computes the next semantic version from a local git repository.
func Calculate(opts LocalOptions) (*Result, error) {
	logger := log.OrDiscard(opts.Logger)

	repo, cfg, err := openLocal(opts, logger)
	if err != nil {
		return nil, err
	}

	store := git.NewRepositoryStore(repo)
	return calculate(store, cfg, runOptions{
		branch:   opts.Branch,
		commit:   opts.Commit,
		override: opts.Override.branchCase(),
		explain:  opts.Explain,
		bus:      opts.Bus,
		logger:   logger,
	})
}

// CalculateBranches computes the next version of several branches of one
// local repository concurrently. Branch and Commit of opts are ignored.
// Results are keyed by the requested branch name.
func CalculateBranches(opts LocalOptions, branches ...string) (map[string]*Result, error) {
	logger := log.OrDiscard(opts.Logger)

	repo, cfg, err := openLocal(opts, logger)
	if err != nil {
		return nil, err
	}

	// One store: the tag index is built once and shared read-only.
	store := git.NewRepositoryStore(repo)
	override := opts.Override.branchCase()

	var (
		mu      sync.Mutex
		results = make(map[string]*Result, len(branches))
		g       errgroup.Group
	)
	for _, branch := range branches {
		g.Go(func() error {
			r, err := calculate(store, cfg, runOptions{
				branch:   branch,
				override: override,
				explain:  opts.Explain,
				bus:      opts.Bus,
				logger:   logger,
			})
			if err != nil {
				return fmt.Errorf("branch %s: %w", branch, err)
			}
			mu.Lock()
			results[branch] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CalculateRemote computes the next semantic version via the GitHub API.
func CalculateRemote(opts RemoteOptions) (*Result, error) {
	logger := log.OrDiscard(opts.Logger)

	ghRepo, cfg, err := connectRemote(opts, logger)
	if err != nil {
		return nil, err
	}

	store := git.NewRepositoryStore(ghRepo)
	return calculate(store, cfg, runOptions{
		branch:   opts.Branch,
		commit:   opts.Commit,
		override: opts.Override.branchCase(),
		explain:  opts.Explain,
		bus:      opts.Bus,
		logger:   logger,
	})
}

// LoadRemoteConfig returns the configuration CalculateRemote would use.
func LoadRemoteConfig(opts RemoteOptions) (*Config, error) {
	_, cfg, err := connectRemote(opts, log.OrDiscard(opts.Logger))
	return cfg, err
}

// connectRemote authenticates, then creates the GitHub repository and
// loads its configuration.
func connectRemote(opts RemoteOptions, logger log.Logger) (*ghprovider.GitHubRepository, *config.Config, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, nil, errors.New("owner and repo are required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	clientCfg := ghprovider.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    opts.BaseURL,
		Owner:      opts.Owner,
	}
	if method, err := ghprovider.ResolveAuthMethod(clientCfg); err == nil {
		logger.Debugf("authenticating to GitHub with %s", method)
	}
	client, err := ghprovider.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating GitHub client: %w", err)
	}
	return openRemote(ctx, client, opts, logger)
}

type runOptions struct {
	branch   string
	commit   string
	override *config.BranchCase
	explain  bool
	bus      *events.Bus
	logger   log.Logger
}

// calculate runs the shared version calculation pipeline.
func calculate(store *git.RepositoryStore, cfg *config.Config, opts runOptions) (*Result, error) {
	ctx, err := calcctx.NewContext(store, cfg, calcctx.Options{
		TargetBranch: opts.branch,
		CommitID:     opts.commit,
		Override:     opts.override,
	})
	if err != nil {
		return nil, fmt.Errorf("building context: %w", err)
	}
	opts.logger.Debugf("calculating %s at %s", ctx.BranchName, ctx.CurrentCommit.ShortSha())

	calc := calculator.NewNextVersionCalculator(store,
		calculator.WithBus(opts.bus),
		calculator.WithLogger(opts.logger),
	)
	result, err := calc.Calculate(ctx, opts.explain)
	if err != nil {
		return nil, fmt.Errorf("calculating version: %w", err)
	}

	r := &Result{
		Version:   result.Version.String(),
		Variables: output.GetVariables(result),
	}
	if opts.explain {
		r.Explanation = buildExplanation(result)
	}
	return r, nil
}

// buildExplanation maps the internal result to the public Explanation.
func buildExplanation(result calculator.VersionResult) *Explanation {
	e := &Explanation{
		CaseName:        result.Settings.CaseName,
		FormattedOutput: output.FormatExplanation(result),
	}
	if cv := result.Found.CommitVersion; cv != nil {
		e.FoundVersion = cv.Version.String()
		e.FoundTag = cv.TagName
	}
	for _, t := range result.Options.Transformers {
		e.Transformers = append(e.Transformers, fmt.Sprint(t))
	}
	if result.Explanation != nil {
		e.Steps = result.Explanation.Steps
	}
	return e
}

// openLocal opens the repository and loads its configuration.
func openLocal(opts LocalOptions, logger log.Logger) (*git.GoGitRepository, *config.Config, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	repo, err := git.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := LoadLocalConfig(opts.ConfigPath, repo.WorkingDirectory(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	return repo, cfg, nil
}

// LoadLocalConfig builds the configuration from configPath, or from the
// first config file found in workDir, layered over the defaults.
func LoadLocalConfig(configPath, workDir string, logger Logger) (*Config, error) {
	logger = log.OrDiscard(logger)
	builder := config.NewBuilder()

	if configPath == "" {
		if found, ok := config.FindFile(workDir); ok {
			configPath = found
		}
	}

	if configPath != "" {
		logger.Debugf("using configuration %s", configPath)
		userCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		builder.Add(userCfg)
	} else {
		logger.Debug("no configuration file found, using defaults")
	}

	return builder.Build()
}

// openRemote creates the GitHub repository and loads its configuration.
func openRemote(ctx context.Context, client *gh.Client, opts RemoteOptions, logger log.Logger) (*ghprovider.GitHubRepository, *config.Config, error) {
	// The tag prefix is only known once the configuration is loaded; Tags
	// is not called before that.
	var tagPrefix string
	isReleaseTag := func(name string) bool {
		v, ok := semver.TryParse(name, tagPrefix)
		return ok && !v.HasPreRelease()
	}

	ghRepo := ghprovider.NewGitHubRepository(client, opts.Owner, opts.Repo,
		ghprovider.WithRef(opts.Ref),
		ghprovider.WithMaxCommits(opts.MaxCommits),
		ghprovider.WithContext(ctx),
		ghprovider.WithVersionTagFilter(isReleaseTag),
	)

	cfg, err := loadRemoteConfig(opts, ghRepo, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	tagPrefix = config.NewEffectiveConfiguration(cfg).TagPrefix
	return ghRepo, cfg, nil
}

// loadRemoteConfig loads configuration from a local override or the remote repo.
func loadRemoteConfig(opts RemoteOptions, ghRepo *ghprovider.GitHubRepository, logger log.Logger) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return LoadLocalConfig(opts.ConfigPath, "", logger)
	}

	names := config.FileNames
	if opts.RemoteConfigPath != "" {
		names = []string{opts.RemoteConfigPath}
	}

	builder := config.NewBuilder()
	for _, name := range names {
		content, err := ghRepo.FetchFileContent(name)
		if err != nil {
			if ghprovider.IsNotFoundError(err) {
				continue
			}
			return nil, fmt.Errorf("fetching remote config %s: %w", name, err)
		}
		userCfg, err := config.LoadFromBytesFormat([]byte(content), config.FormatFromPath(name))
		if err != nil {
			return nil, fmt.Errorf("parsing remote config %s: %w", name, err)
		}
		logger.Debugf("using remote configuration %s", name)
		builder.Add(userCfg)
		break
	}
	return builder.Build()
}
