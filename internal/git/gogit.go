package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git. Access to the
// underlying repository is serialized so one instance can back concurrent
// calculations.
type GoGitRepository struct {
	mu      sync.Mutex
	repo    *gogit.Repository
	path    string
	workDir string
}

// Open opens a git repository at the given path.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()

	return &GoGitRepository{
		repo:    r,
		path:    filepath.Join(root, ".git"),
		workDir: root,
	}, nil
}

func (r *GoGitRepository) Path() string {
	return r.path
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

func (r *GoGitRepository) IsHeadDetached() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, err := r.repo.Head()
	if err != nil {
		return false
	}
	return !ref.Name().IsBranch()
}

func (r *GoGitRepository) Head() (Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, err := r.repo.Head()
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := r.commitFromHash(ref.Hash())
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD commit: %w", err)
	}

	return Branch{
		Name:           NewReferenceName(string(ref.Name())),
		Tip:            &commit,
		IsRemote:       false,
		IsDetachedHead: !ref.Name().IsBranch(),
	}, nil
}

func (r *GoGitRepository) Branches() ([]Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.branches()
}

func (r *GoGitRepository) branches() ([]Branch, error) {
	var branches []Branch

	refIter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if !name.IsBranch() && !name.IsRemote() {
			return nil
		}
		if ref.Type() != plumbing.HashReference {
			return nil // symbolic refs such as origin/HEAD
		}
		commit, err := r.commitFromHash(ref.Hash())
		if err != nil {
			return nil // skip branches we can't resolve
		}
		branches = append(branches, Branch{
			Name:     NewReferenceName(string(name)),
			Tip:      &commit,
			IsRemote: name.IsRemote(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating branches: %w", err)
	}

	return branches, nil
}

func (r *GoGitRepository) Tags() ([]Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tags []Tag

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, Tag{
			Name:      NewReferenceName(string(ref.Name())),
			TargetSha: ref.Hash().String(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

func (r *GoGitRepository) CommitFromSha(sha string) (Commit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commitFromHash(plumbing.NewHash(sha))
}

func (r *GoGitRepository) CommitLog(from, to string) ([]Commit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var excluded map[plumbing.Hash]struct{}
	if from != "" {
		var err error
		excluded, err = r.ancestors(plumbing.NewHash(from))
		if err != nil {
			return nil, err
		}
	}

	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  plumbing.NewHash(to),
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("getting commit log: %w", err)
	}

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if _, skip := excluded[c.Hash]; skip {
			return nil
		}
		commits = append(commits, convertCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}

	return commits, nil
}

func (r *GoGitRepository) WalkCommits(to string, fn func(Commit) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  plumbing.NewHash(to),
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return fmt.Errorf("getting commit log: %w", err)
	}

	err = iter.ForEach(func(c *object.Commit) error {
		if !fn(convertCommit(c)) {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterating commits: %w", err)
	}
	return nil
}

// ancestors returns the set of commits reachable from hash, hash included.
func (r *GoGitRepository) ancestors(hash plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{From: hash})
	if err != nil {
		return nil, fmt.Errorf("getting commit log of %s: %w", hash, err)
	}
	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits of %s: %w", hash, err)
	}
	return seen, nil
}

func (r *GoGitRepository) BranchesContainingCommit(sha string) ([]Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	targetHash := plumbing.NewHash(sha)
	targetCommit, err := r.repo.CommitObject(targetHash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", sha, err)
	}

	allBranches, err := r.branches()
	if err != nil {
		return nil, err
	}

	var result []Branch
	for _, b := range allBranches {
		tipHash := plumbing.NewHash(b.Tip.Sha)
		if targetHash == tipHash {
			result = append(result, b)
			continue
		}

		tipCommit, err := r.repo.CommitObject(tipHash)
		if err != nil {
			continue
		}

		isAnc, err := targetCommit.IsAncestor(tipCommit)
		if err != nil {
			continue
		}

		if isAnc {
			result = append(result, b)
		}
	}

	return result, nil
}

func (r *GoGitRepository) PeelTagToCommit(tag Tag) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash := plumbing.NewHash(tag.TargetSha)

	// Try as an annotated tag first.
	tagObj, err := r.repo.TagObject(hash)
	if err == nil {
		commit, err := tagObj.Commit()
		if err != nil {
			return "", fmt.Errorf("peeling annotated tag %s: %w", tag.Name.Friendly, err)
		}
		return commit.Hash.String(), nil
	}

	// If not an annotated tag, check if it points directly to a commit.
	if _, err := r.repo.CommitObject(hash); err != nil {
		return "", fmt.Errorf("tag %s does not point to a commit: %w", tag.Name.Friendly, err)
	}

	return tag.TargetSha, nil
}

func (r *GoGitRepository) ResolveRevision(rev string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", fmt.Errorf("revision %q not found: %w", rev, err)
		}
		return "", fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return hash.String(), nil
}

// commitFromHash loads a go-git commit and converts it to our Commit type.
func (r *GoGitRepository) commitFromHash(hash plumbing.Hash) (Commit, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return Commit{}, fmt.Errorf("loading commit %s: %w", hash.String(), err)
	}
	return convertCommit(c), nil
}

// convertCommit converts a go-git commit to our Commit type.
func convertCommit(c *object.Commit) Commit {
	parents := make([]string, 0, c.NumParents())
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return Commit{
		Sha:     c.Hash.String(),
		Parents: parents,
		When:    c.Committer.When,
		Message: c.Message,
	}
}
