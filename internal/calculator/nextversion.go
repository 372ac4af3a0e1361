package calculator

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-nextver/internal/branchcase"
	"github.com/MyCarrier-DevOps/go-nextver/internal/context"
	"github.com/MyCarrier-DevOps/go-nextver/internal/events"
	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
	"github.com/MyCarrier-DevOps/go-nextver/internal/log"
	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"
	"github.com/MyCarrier-DevOps/go-nextver/internal/transformer"
)

// VersionResult holds the calculated version and how it was reached.
type VersionResult struct {
	Version       semver.SemanticVersion
	BranchName    string
	Settings      branchcase.Settings
	Found         FoundCommitVersion
	Options       IncrementationOptions
	CurrentCommit git.Commit
	// CommitsSince counts the commits in the message window.
	CommitsSince int
	Explanation  *Explanation // nil when explain is false
}

// NextVersionCalculator orchestrates the full version calculation pipeline.
type NextVersionCalculator struct {
	store  *git.RepositoryStore
	finder *LatestCommitVersionFinder
	bus    *events.Bus
	logger log.Logger
}

// Option configures a NextVersionCalculator.
type Option func(*NextVersionCalculator)

// WithBus publishes stage events on bus.
func WithBus(bus *events.Bus) Option {
	return func(c *NextVersionCalculator) { c.bus = bus }
}

// WithLogger logs stage outcomes at debug level.
func WithLogger(l log.Logger) Option {
	return func(c *NextVersionCalculator) { c.logger = log.OrDiscard(l) }
}

// NewNextVersionCalculator creates a calculator reading from store.
func NewNextVersionCalculator(store *git.RepositoryStore, opts ...Option) *NextVersionCalculator {
	c := &NextVersionCalculator{
		store:  store,
		finder: NewLatestCommitVersionFinder(store),
		logger: log.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate computes the next version for the given context.
func (c *NextVersionCalculator) Calculate(ctx *context.CalculationContext, explain bool) (VersionResult, error) {
	var exp *Explanation
	if explain {
		exp = &Explanation{}
	}
	ec := ctx.EffectiveConfiguration()
	branchName := ctx.BranchName
	c.bus.Emit(events.CalculationStarting, branchName, ctx)

	// Step 1: Resolve the branch case.
	settings, err := branchcase.ResolveWithOverride(branchName, ctx.Configuration.Branches, ctx.Configuration.DefaultCase(), ctx.Override)
	if err != nil {
		return VersionResult{}, err
	}
	exp.Addf("branch %q matched case %q: pre-release=%s search-pre-release=%s",
		branchName, settings.CaseName, settings.PreRelease, settings.SearchPreRelease)
	c.logger.Debugf("branch %s: case %s, pre-release %s", branchName, settings.CaseName, settings.PreRelease)
	c.bus.Emit(events.BranchCaseResolved, branchName, settings)

	tip := ctx.CurrentCommit
	if settings.Branch != "" && settings.Branch != branchName {
		other, err := c.store.GetTargetBranch(settings.Branch)
		if err != nil {
			return VersionResult{}, fmt.Errorf("resolving branch %q of case %q: %w", settings.Branch, settings.CaseName, err)
		}
		tip, err = c.store.GetCurrentCommit(other, "")
		if err != nil {
			return VersionResult{}, err
		}
		exp.Addf("case names branch %q: versioning its tip %s", settings.Branch, tip.ShortSha())
	}

	// Step 2: Find the latest version.
	found, err := c.finder.Find(tip, ec.TagPrefix, settings.SearchPreRelease)
	if err != nil {
		return VersionResult{}, err
	}
	c.bus.Emit(events.CommitVersionFound, branchName, found)

	// Step 3: Choose the start version.
	var start semver.SemanticVersion
	released := false
	if found.Found() {
		start = found.CommitVersion.Version
		released = found.IsCommitVersionCoreAlreadyReleased
		exp.Addf("latest version %s from tag %q on %s", start, found.CommitVersion.TagName, shortSha(found.CommitVersion.CommitSha))
		c.logger.Debugf("found %s on %s", start, shortSha(found.CommitVersion.CommitSha))
	} else {
		start, err = semver.Parse(ec.StartVersion, "")
		if err != nil {
			return VersionResult{}, fmt.Errorf("start-version: %w", err)
		}
		exp.Addf("no version tag found: starting from %s", start)
		c.logger.Debugf("no version tag found, starting from %s", start)
	}

	result := VersionResult{
		BranchName:    branchName,
		Settings:      settings,
		Found:         found,
		CurrentCommit: tip,
		Explanation:   exp,
	}

	if found.Found() && released && found.CommitVersion.CommitSha == tip.Sha {
		exp.Add("current commit carries the release tag: version unchanged")
		result.Version = start
		result.Options = IncrementationOptions{StartVersion: start, IsStartVersionCoreAlreadyReleased: true}
		c.bus.Emit(events.CalculationCompleted, branchName, result)
		return result, nil
	}

	// Step 4: Build the message window and select transformers.
	provider := NewCommitMessagesProvider(c.store, ec.Ignore())
	commits, err := provider.GetCommits(settings.SinceCommit, found.CommitVersion, tip)
	if err != nil {
		return VersionResult{}, err
	}
	selector, err := NewTransformerSelector(ec)
	if err != nil {
		return VersionResult{}, err
	}
	sel, err := selector.Select(start, released, commits, exp)
	if err != nil {
		return VersionResult{}, err
	}
	c.logger.Debugf("%d commits since %s", sel.CommitCount, start)
	c.bus.Emit(events.MessagesCollected, branchName, sel.CommitCount)

	// A labelled build after a release must sort above it, even when every
	// commit since was skipped or ignored.
	if released && len(sel.Transformers) == 0 && settings.PreRelease.HasValue() {
		exp.Add("released core with a pre-release label and no bump: NextPatch")
		sel.Transformers = append(sel.Transformers, transformer.NextPatch)
	}

	// Step 5: Fold the transformers, labels last.
	options := IncrementationOptions{
		StartVersion:                      start,
		IsStartVersionCoreAlreadyReleased: released,
		Transformers:                      append(sel.Transformers, transformer.PreRelease(settings.PreRelease)),
	}
	ver, err := transformer.Apply(options.StartVersion, options.Transformers...)
	if err != nil {
		return VersionResult{}, fmt.Errorf("applying transformers: %w", err)
	}
	exp.Addf("%s -> %s", start, ver)

	result.Version = ver
	result.Options = options
	result.CommitsSince = sel.CommitCount
	c.logger.Infof("%s: %s", branchName, ver)
	c.bus.Emit(events.CalculationCompleted, branchName, result)
	return result, nil
}

func shortSha(sha string) string {
	return git.Commit{Sha: sha}.ShortSha()
}
