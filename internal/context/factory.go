package context

import (
	"fmt"
	"regexp"

	"github.com/MyCarrier-DevOps/go-nextver/internal/config"
	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
)

// Options configures what the factory resolves.
type Options struct {
	// TargetBranch overrides HEAD. Empty string means use HEAD.
	TargetBranch string

	// CommitID overrides the branch tip. Any revision the backend resolves is accepted.
	CommitID string

	// Override is merged onto the matched branch case (CLI flags).
	Override *config.BranchCase
}

// NewContext creates a CalculationContext by resolving the target branch
// and the current commit.
func NewContext(store *git.RepositoryStore, cfg *config.Config, opts Options) (*CalculationContext, error) {
	// 1. Resolve target branch (from option or HEAD).
	currentBranch, err := store.GetTargetBranch(opts.TargetBranch)
	if err != nil {
		return nil, fmt.Errorf("resolving target branch: %w", err)
	}

	// 2. Get current commit (from revision option or branch tip).
	currentCommit, err := store.GetCurrentCommit(currentBranch, opts.CommitID)
	if err != nil {
		return nil, fmt.Errorf("resolving current commit: %w", err)
	}

	// 3. Handle detached HEAD: find a branch containing this commit.
	if currentBranch.IsDetachedHead {
		branches, err := store.GetBranchesContainingCommit(currentCommit)
		if err != nil {
			return nil, fmt.Errorf("finding branches for detached HEAD: %w", err)
		}
		if best, ok := pickBestBranch(branches, cfg); ok {
			currentBranch = best
		}
	}

	return &CalculationContext{
		CurrentBranch: currentBranch,
		BranchName:    store.ResolveBranchName(currentBranch),
		CurrentCommit: currentCommit,
		Configuration: cfg,
		Override:      opts.Override,
	}, nil
}

// pickBestBranch selects a branch for a detached HEAD. Local branches win
// over remote ones. Among them, a branch matched by an earlier configured
// case wins; unmatched branches rank last.
func pickBestBranch(branches []git.Branch, cfg *config.Config) (git.Branch, bool) {
	if len(branches) == 0 {
		return git.Branch{}, false
	}

	patterns := make([]*regexp.Regexp, 0, len(cfg.Branches))
	for _, bc := range cfg.Branches {
		if bc == nil || bc.IfBranch == nil {
			continue
		}
		if re, err := regexp.Compile(*bc.IfBranch); err == nil {
			patterns = append(patterns, re)
		}
	}

	rank := func(b git.Branch) int {
		name := b.Name.WithoutRemote
		for i, re := range patterns {
			if re.MatchString(name) {
				return i
			}
		}
		return len(patterns)
	}

	best, bestRank := -1, 0
	for i, b := range branches {
		r := rank(b)
		if b.IsRemote {
			r += len(patterns) + 1
		}
		if best < 0 || r < bestRank {
			best, bestRank = i, r
		}
	}
	return branches[best], true
}
