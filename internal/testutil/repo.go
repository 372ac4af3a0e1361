// Package testutil builds throwaway git repositories with a scripted history
// of commits, tags and branches.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ConfigFileName is the file WriteConfig writes in the repository root.
const ConfigFileName = "nextver.yml"

// TestRepo creates commits with strictly increasing timestamps so commit
// order is deterministic.
type TestRepo struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
	seq  int
}

// NewTestRepo initializes a repository in a temporary directory with HEAD on main.
func NewTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return &TestRepo{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the repository root directory.
func (r *TestRepo) Path() string {
	return r.path
}

func (r *TestRepo) signature() *object.Signature {
	return &object.Signature{Name: "Test", Email: "test@example.com", When: r.time}
}

// AddCommit commits a fresh file carrying message and returns the commit SHA.
func (r *TestRepo) AddCommit(message string) string {
	r.t.Helper()
	return r.commit(message, nil)
}

// MergeCommit commits on top of HEAD with otherSha as second parent.
func (r *TestRepo) MergeCommit(message, otherSha string) string {
	r.t.Helper()
	head := r.HeadSha()
	return r.commit(message, []plumbing.Hash{plumbing.NewHash(head), plumbing.NewHash(otherSha)})
}

func (r *TestRepo) commit(message string, parents []plumbing.Hash) string {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)
	r.seq++

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	filename := fmt.Sprintf("file-%03d.txt", r.seq)
	if err := os.WriteFile(filepath.Join(r.path, filename), []byte(message), 0o644); err != nil {
		r.t.Fatalf("writing file: %v", err)
	}
	if _, err := wt.Add(filename); err != nil {
		r.t.Fatalf("staging file: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:    r.signature(),
		Committer: r.signature(),
		Parents:   parents,
	})
	if err != nil {
		r.t.Fatalf("committing: %v", err)
	}
	return hash.String()
}

// CreateTag creates a lightweight tag pointing at sha.
func (r *TestRepo) CreateTag(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/tags/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating tag %s: %v", name, err)
	}
}

// CreateAnnotatedTag creates an annotated tag object pointing at sha.
func (r *TestRepo) CreateAnnotatedTag(name, sha, message string) {
	r.t.Helper()
	r.time = r.time.Add(time.Second)

	_, err := r.repo.CreateTag(name, plumbing.NewHash(sha), &gogit.CreateTagOptions{
		Tagger:  r.signature(),
		Message: message,
	})
	if err != nil {
		r.t.Fatalf("creating annotated tag %s: %v", name, err)
	}
}

// CreateBranch points a new local branch at sha without switching to it.
func (r *TestRepo) CreateBranch(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/heads/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating branch %s: %v", name, err)
	}
}

// CreateRemoteBranch writes a remote tracking ref refs/remotes/<remote>/<name>.
func (r *TestRepo) CreateRemoteBranch(remote, name, sha string) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/remotes/"+remote+"/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating remote branch %s/%s: %v", remote, name, err)
	}
}

// Checkout switches HEAD to branch.
func (r *TestRepo) Checkout(branch string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(branch)}); err != nil {
		r.t.Fatalf("checking out %s: %v", branch, err)
	}
}

// CheckoutNewBranch creates branch at HEAD and switches to it.
func (r *TestRepo) CheckoutNewBranch(branch string) {
	r.t.Helper()
	r.CreateBranch(branch, r.HeadSha())
	r.Checkout(branch)
}

// DetachHead checks out sha directly, leaving HEAD detached.
func (r *TestRepo) DetachHead(sha string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{Hash: plumbing.NewHash(sha)}); err != nil {
		r.t.Fatalf("detaching HEAD at %s: %v", sha, err)
	}
}

// WriteConfig writes content to the configuration file in the repo root.
// The file is left untracked.
func (r *TestRepo) WriteConfig(content string) {
	r.t.Helper()
	path := filepath.Join(r.path, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing config: %v", err)
	}
}

// HeadSha returns the current HEAD commit SHA.
func (r *TestRepo) HeadSha() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("getting HEAD: %v", err)
	}
	return head.Hash().String()
}
