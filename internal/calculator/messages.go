package calculator

import (
	"fmt"
	"iter"

	"github.com/MyCarrier-DevOps/go-nextver/internal/config"
	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
)

// CommitMessagesProvider yields the commits made after the previous version.
type CommitMessagesProvider struct {
	store  *git.RepositoryStore
	ignore config.IgnoreConfig
}

// NewCommitMessagesProvider creates a provider that drops commits matched by ignore.
func NewCommitMessagesProvider(store *git.RepositoryStore, ignore config.IgnoreConfig) *CommitMessagesProvider {
	return &CommitMessagesProvider{store: store, ignore: ignore}
}

// SinceSha returns the commit the window starts after: the resolved
// override when given, else the found version's commit, else "".
func (p *CommitMessagesProvider) SinceSha(sinceOverride string, found *CommitVersion) (string, error) {
	if sinceOverride != "" {
		commit, err := p.store.ResolveCommit(sinceOverride)
		if err != nil {
			return "", fmt.Errorf("resolving since-commit %q: %w", sinceOverride, err)
		}
		return commit.Sha, nil
	}
	if found != nil {
		return found.CommitSha, nil
	}
	return "", nil
}

// GetCommits returns the window oldest-first: commits strictly after the
// since-ref up to and including to. Without a since-ref the whole ancestry
// of to is used.
func (p *CommitMessagesProvider) GetCommits(sinceOverride string, found *CommitVersion, to git.Commit) (iter.Seq[git.Commit], error) {
	since, err := p.SinceSha(sinceOverride, found)
	if err != nil {
		return nil, err
	}

	newestFirst, err := p.store.GetCommitLog(since, to)
	if err != nil {
		return nil, err
	}

	return func(yield func(git.Commit) bool) {
		for i := len(newestFirst) - 1; i >= 0; i-- {
			c := newestFirst[i]
			if p.ignore.Ignores(c.Sha, c.When) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}, nil
}

// GetMessages is GetCommits reduced to the commit messages.
func (p *CommitMessagesProvider) GetMessages(sinceOverride string, found *CommitVersion, to git.Commit) (iter.Seq[string], error) {
	commits, err := p.GetCommits(sinceOverride, found, to)
	if err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		for c := range commits {
			if !yield(c.Message) {
				return
			}
		}
	}, nil
}
