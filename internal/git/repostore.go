package git

import (
	"fmt"
	"sort"
	"sync"
)

// RepositoryStore provides the history views used by version calculation,
// built on top of a Repository. Tag lookups are computed once and cached;
// the store is safe for concurrent use.
type RepositoryStore struct {
	repo Repository

	mu           sync.Mutex
	tagsByCommit map[string][]Tag
}

// NewRepositoryStore creates a new RepositoryStore wrapping the given Repository.
func NewRepositoryStore(repo Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

// Repository returns the wrapped Repository.
func (s *RepositoryStore) Repository() Repository {
	return s.repo
}

// --- Tag queries ---

// TagsByCommit returns all tags keyed by the SHA of the commit they peel to.
// Tags that cannot be peeled are skipped. Tags on one commit are sorted by name.
func (s *RepositoryStore) TagsByCommit() (map[string][]Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tagsByCommit != nil {
		return s.tagsByCommit, nil
	}

	tags, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	byCommit := make(map[string][]Tag, len(tags))
	for _, tag := range tags {
		sha, err := s.repo.PeelTagToCommit(tag)
		if err != nil {
			continue
		}
		byCommit[sha] = append(byCommit[sha], tag)
	}
	for _, list := range byCommit {
		sort.Slice(list, func(i, j int) bool {
			return list[i].Name.Friendly < list[j].Name.Friendly
		})
	}

	s.tagsByCommit = byCommit
	return byCommit, nil
}

// TagsOf returns the tags that peel to the given commit SHA.
func (s *RepositoryStore) TagsOf(sha string) ([]Tag, error) {
	byCommit, err := s.TagsByCommit()
	if err != nil {
		return nil, err
	}
	return byCommit[sha], nil
}

// WalkTaggedCommits visits the ancestry of tip, tip included, newest first,
// with each commit's tags attached. The walk stops when fn returns false,
// so callers looking for the nearest tag never load the rest of history.
func (s *RepositoryStore) WalkTaggedCommits(tip Commit, fn func(TaggedCommit) bool) error {
	if tip.IsEmpty() {
		return nil
	}

	byCommit, err := s.TagsByCommit()
	if err != nil {
		return err
	}

	err = s.repo.WalkCommits(tip.Sha, func(c Commit) bool {
		return fn(TaggedCommit{Commit: c, Tags: byCommit[c.Sha]})
	})
	if err != nil {
		return fmt.Errorf("walking commit log: %w", err)
	}
	return nil
}

// --- Branch queries ---

// GetBranchesContainingCommit returns branches that contain the given commit.
func (s *RepositoryStore) GetBranchesContainingCommit(commit Commit) ([]Branch, error) {
	if commit.IsEmpty() {
		return nil, nil
	}
	return s.repo.BranchesContainingCommit(commit.Sha)
}

// GetBranchesForCommit returns non-remote branches whose tip is the given commit.
func (s *RepositoryStore) GetBranchesForCommit(commit Commit) ([]Branch, error) {
	branches, err := s.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	var result []Branch
	for _, b := range branches {
		if !b.IsRemote && b.Tip != nil && b.Tip.Sha == commit.Sha {
			result = append(result, b)
		}
	}

	return result, nil
}

// GetTargetBranch resolves the target branch from a name or HEAD.
// Local branches win over remote tracking branches of the same name.
func (s *RepositoryStore) GetTargetBranch(targetBranchName string) (Branch, error) {
	if targetBranchName == "" {
		return s.repo.Head()
	}

	branches, err := s.repo.Branches()
	if err != nil {
		return Branch{}, fmt.Errorf("listing branches: %w", err)
	}

	var remote *Branch
	for i, b := range branches {
		if b.FriendlyName() == targetBranchName && !b.IsRemote {
			return b, nil
		}
		if remote == nil && (b.FriendlyName() == targetBranchName || b.Name.WithoutRemote == targetBranchName) {
			remote = &branches[i]
		}
	}
	if remote != nil {
		return *remote, nil
	}

	return Branch{}, fmt.Errorf("branch %q not found", targetBranchName)
}

// ResolveBranchName returns the name matched against branch cases:
// the branch name without any remote prefix.
func (s *RepositoryStore) ResolveBranchName(branch Branch) string {
	if branch.Name.WithoutRemote != "" {
		return branch.Name.WithoutRemote
	}
	return branch.FriendlyName()
}

// --- Commit queries ---

// GetCurrentCommit returns the commit for a revision or the branch tip.
func (s *RepositoryStore) GetCurrentCommit(branch Branch, commitID string) (Commit, error) {
	if commitID != "" {
		return s.ResolveCommit(commitID)
	}
	if branch.Tip == nil {
		return Commit{}, fmt.Errorf("branch %q has no tip commit", branch.FriendlyName())
	}
	return *branch.Tip, nil
}

// ResolveCommit resolves a revision (SHA, abbreviated SHA, tag or branch) to a commit.
func (s *RepositoryStore) ResolveCommit(rev string) (Commit, error) {
	sha, err := s.repo.ResolveRevision(rev)
	if err != nil {
		return Commit{}, err
	}
	commit, err := s.repo.CommitFromSha(sha)
	if err != nil {
		return Commit{}, fmt.Errorf("loading commit %s: %w", sha, err)
	}
	return commit, nil
}

// GetCommitLog returns commits reachable from to but not from fromSha,
// newest first. An empty fromSha yields the full ancestry of to.
func (s *RepositoryStore) GetCommitLog(fromSha string, to Commit) ([]Commit, error) {
	commits, err := s.repo.CommitLog(fromSha, to.Sha)
	if err != nil {
		return nil, fmt.Errorf("getting commit log: %w", err)
	}
	return commits, nil
}
