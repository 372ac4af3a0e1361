// Package github implements git.Repository over the GitHub REST API, so a
// version can be calculated without cloning.
package github

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	gh "github.com/google/go-github/v68/github"

	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
)

var _ git.Repository = (*GitHubRepository)(nil)

const defaultMaxCommits = 1000

// GitHubRepository implements git.Repository using the GitHub API. It only
// reads, and every response is cached for the lifetime of the value.
type GitHubRepository struct {
	client     *gh.Client
	owner      string
	repo       string
	ref        string // target ref: branch, tag or SHA
	maxCommits int    // hard cap on commit walk depth
	cache      *apiCache
	ctx        context.Context
	// isVersionTag marks tags whose commits end a full-history walk.
	isVersionTag func(name string) bool
}

// Option configures a GitHubRepository.
type Option func(*GitHubRepository)

// WithRef sets the ref HEAD resolves to. Empty means the default branch.
func WithRef(ref string) Option {
	return func(r *GitHubRepository) { r.ref = ref }
}

// WithMaxCommits sets the hard cap on commit walk depth.
func WithMaxCommits(n int) Option {
	return func(r *GitHubRepository) {
		if n > 0 {
			r.maxCommits = n
		}
	}
}

// WithContext sets the context used for every API request.
func WithContext(ctx context.Context) Option {
	return func(r *GitHubRepository) { r.ctx = ctx }
}

// WithVersionTagFilter lets full-history walks stop one page after the
// first commit carrying a tag accepted by fn.
func WithVersionTagFilter(fn func(name string) bool) Option {
	return func(r *GitHubRepository) { r.isVersionTag = fn }
}

// NewGitHubRepository creates a new GitHubRepository.
func NewGitHubRepository(client *gh.Client, owner, repo string, opts ...Option) *GitHubRepository {
	r := &GitHubRepository{
		client:     client,
		owner:      owner,
		repo:       repo,
		maxCommits: defaultMaxCommits,
		cache:      newCache(),
		ctx:        context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *GitHubRepository) Path() string {
	return fmt.Sprintf("github.com/%s/%s", r.owner, r.repo)
}

func (r *GitHubRepository) WorkingDirectory() string {
	return ""
}

var hexPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

func (r *GitHubRepository) IsHeadDetached() bool {
	if head, ok := r.cache.getHead(); ok {
		return head.IsDetachedHead
	}
	return hexPattern.MatchString(r.ref)
}

// Head resolves the configured ref. A branch name yields that branch; a SHA
// or a tag yields a detached HEAD on the commit.
func (r *GitHubRepository) Head() (git.Branch, error) {
	if branch, ok := r.cache.getHead(); ok {
		return *branch, nil
	}

	ref := r.ref
	if ref == "" {
		info, _, err := r.client.Repositories.Get(r.ctx, r.owner, r.repo)
		if err != nil {
			return git.Branch{}, fmt.Errorf("getting repository info: %w", err)
		}
		ref = info.GetDefaultBranch()
	}

	if hexPattern.MatchString(ref) {
		return r.detachedHead(ref)
	}

	ghBranch, resp, err := r.client.Repositories.GetBranch(r.ctx, r.owner, r.repo, ref, 0)
	if err != nil {
		// GetBranch reports a missing branch as a bare status error.
		if resp == nil || resp.StatusCode != http.StatusNotFound {
			return git.Branch{}, fmt.Errorf("getting branch %s: %w", ref, err)
		}
		sha, rerr := r.ResolveRevision(ref)
		if rerr != nil {
			return git.Branch{}, fmt.Errorf("getting branch %s: %w", ref, err)
		}
		return r.detachedHead(sha)
	}

	tip := convertGitHubRepoCommit(ghBranch.GetCommit())
	r.cache.putCommit(tip)

	branch := git.Branch{
		Name: git.NewBranchReferenceName(ref),
		Tip:  &tip,
	}
	r.cache.putHead(branch)
	return branch, nil
}

func (r *GitHubRepository) detachedHead(sha string) (git.Branch, error) {
	commit, err := r.CommitFromSha(sha)
	if err != nil {
		return git.Branch{}, fmt.Errorf("getting HEAD commit: %w", err)
	}
	branch := git.Branch{
		Name:           git.NewReferenceName("HEAD"),
		Tip:            &commit,
		IsDetachedHead: true,
	}
	r.cache.putHead(branch)
	return branch, nil
}

// Branches lists the remote's branches. The list endpoint only returns tip
// SHAs, so a tip carries its message and date only when already cached.
func (r *GitHubRepository) Branches() ([]git.Branch, error) {
	if branches, ok := r.cache.getBranches(); ok {
		return branches, nil
	}

	var branches []git.Branch
	opts := &gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: 100}}
	for {
		page, resp, err := r.client.Repositories.ListBranches(r.ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing branches: %w", err)
		}
		for _, b := range page {
			sha := b.GetCommit().GetSHA()
			if sha == "" {
				continue
			}
			tip, ok := r.cache.getCommit(sha)
			if !ok {
				tip = git.Commit{Sha: sha}
			}
			branches = append(branches, git.Branch{
				Name: git.NewBranchReferenceName(b.GetName()),
				Tip:  &tip,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	r.cache.putBranches(branches)
	return branches, nil
}

// Tags lists the remote's tags. The REST endpoint reports the commit each
// tag peels to, so TargetSha is always a commit SHA.
func (r *GitHubRepository) Tags() ([]git.Tag, error) {
	if tags, ok := r.cache.getTags(); ok {
		return tags, nil
	}

	var (
		tags     []git.Tag
		stopShas []string
	)
	opts := &gh.ListOptions{PerPage: 100}
	for {
		page, resp, err := r.client.Repositories.ListTags(r.ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing tags: %w", err)
		}
		for _, t := range page {
			sha := t.GetCommit().GetSHA()
			tags = append(tags, git.Tag{
				Name:      git.NewTagReferenceName(t.GetName()),
				TargetSha: sha,
			})
			if r.isVersionTag != nil && sha != "" && r.isVersionTag(t.GetName()) {
				stopShas = append(stopShas, sha)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	r.cache.putTags(tags, stopShas)
	return tags, nil
}

func (r *GitHubRepository) CommitFromSha(sha string) (git.Commit, error) {
	if commit, ok := r.cache.getCommit(sha); ok {
		return commit, nil
	}

	ghCommit, _, err := r.client.Repositories.GetCommit(r.ctx, r.owner, r.repo, sha, nil)
	if err != nil {
		return git.Commit{}, fmt.Errorf("getting commit %s: %w", sha, err)
	}

	commit := convertGitHubRepoCommit(ghCommit)
	r.cache.putCommit(commit)
	return commit, nil
}

// CommitLog returns commits reachable from to but not from from, newest
// first. Bounded ranges use the compare API and fall back to a paginated
// walk when the range is too large for it.
func (r *GitHubRepository) CommitLog(from, to string) ([]git.Commit, error) {
	if log, ok := r.cache.getCommitLog(from, to); ok {
		return log, nil
	}

	var (
		commits []git.Commit
		err     error
	)
	if from != "" {
		commits, err = r.commitLogCompare(from, to)
		if err != nil {
			commits, err = r.commitLogPaginated(from, to)
		}
	} else {
		commits, err = r.commitLogPaginated(from, to)
	}
	if err != nil {
		return nil, err
	}

	r.cache.putCommitLog(from, to, commits)
	return commits, nil
}

// WalkCommits visits the full-history log of to. The paginated walk already
// stops one page past the nearest version tag, so the log is fetched before
// fn runs.
func (r *GitHubRepository) WalkCommits(to string, fn func(git.Commit) bool) error {
	commits, err := r.CommitLog("", to)
	if err != nil {
		return err
	}
	for _, c := range commits {
		if !fn(c) {
			return nil
		}
	}
	return nil
}

// commitLogCompare uses the compare API for bounded commit ranges.
func (r *GitHubRepository) commitLogCompare(from, to string) ([]git.Commit, error) {
	comparison, _, err := r.client.Repositories.CompareCommits(r.ctx, r.owner, r.repo, from, to, nil)
	if err != nil {
		return nil, fmt.Errorf("comparing commits: %w", err)
	}

	// The compare API returns at most 250 commits.
	if comparison.GetTotalCommits() > len(comparison.Commits) {
		return nil, fmt.Errorf("compare API returned partial results (%d/%d commits)", len(comparison.Commits), comparison.GetTotalCommits())
	}

	// Compare lists oldest first.
	commits := make([]git.Commit, 0, len(comparison.Commits))
	for i := len(comparison.Commits) - 1; i >= 0; i-- {
		commit := convertGitHubRepoCommit(comparison.Commits[i])
		r.cache.putCommit(commit)
		commits = append(commits, commit)
	}
	return commits, nil
}

// commitLogPaginated walks the commit list page by page. A full-history
// walk stops one page after the first commit carrying a version tag.
func (r *GitHubRepository) commitLogPaginated(from, to string) ([]git.Commit, error) {
	opts := &gh.CommitsListOptions{
		SHA:         to,
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var commits []git.Commit
	foundTag := false
	bufferPages := 0

	for {
		ghCommits, resp, err := r.client.Repositories.ListCommits(r.ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits: %w", err)
		}

		for _, ghCommit := range ghCommits {
			sha := ghCommit.GetSHA()
			if from != "" && sha == from {
				return commits, nil
			}

			commit := convertGitHubRepoCommit(ghCommit)
			r.cache.putCommit(commit)
			commits = append(commits, commit)

			if from == "" && r.cache.isStopSha(sha) {
				foundTag = true
			}
			if len(commits) >= r.maxCommits {
				return commits, nil
			}
		}

		if foundTag {
			bufferPages++
			if bufferPages > 1 {
				break
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return commits, nil
}

// BranchesContainingCommit checks each branch tip against sha with the
// compare API. Branches that cannot be compared are skipped.
func (r *GitHubRepository) BranchesContainingCommit(sha string) ([]git.Branch, error) {
	branches, err := r.Branches()
	if err != nil {
		return nil, err
	}

	var result []git.Branch
	for _, b := range branches {
		if b.Tip == nil {
			continue
		}
		if b.Tip.Sha == sha {
			result = append(result, b)
			continue
		}

		comparison, _, err := r.client.Repositories.CompareCommits(r.ctx, r.owner, r.repo, sha, b.Tip.Sha, nil)
		if err != nil {
			continue
		}
		// "ahead" or "identical": the branch tip descends from sha.
		status := comparison.GetStatus()
		if status == "ahead" || status == "identical" {
			result = append(result, b)
		}
	}
	return result, nil
}

// PeelTagToCommit returns the commit a tag points to. Tags listed by this
// backend are already peeled.
func (r *GitHubRepository) PeelTagToCommit(tag git.Tag) (string, error) {
	if tag.TargetSha == "" {
		return "", fmt.Errorf("tag %s has no target", tag.Name.Friendly)
	}
	return tag.TargetSha, nil
}

// ResolveRevision resolves a SHA, abbreviated SHA, branch or tag name to a
// full commit SHA.
func (r *GitHubRepository) ResolveRevision(rev string) (string, error) {
	if hexPattern.MatchString(rev) {
		return rev, nil
	}
	if sha, ok := r.cache.getRevision(rev); ok {
		return sha, nil
	}

	sha, _, err := r.client.Repositories.GetCommitSHA1(r.ctx, r.owner, r.repo, rev, "")
	if err != nil {
		return "", fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	r.cache.putRevision(rev, sha)
	return sha, nil
}

// FetchFileContent fetches a file's content at the configured ref.
func (r *GitHubRepository) FetchFileContent(path string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: r.ref}

	content, _, _, err := r.client.Repositories.GetContents(r.ctx, r.owner, r.repo, path, opts)
	if err != nil {
		return "", fmt.Errorf("fetching file %s: %w", path, err)
	}
	if content == nil {
		return "", fmt.Errorf("file %s not found", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding file content: %w", err)
	}
	return decoded, nil
}

// convertGitHubRepoCommit converts a GitHub API RepositoryCommit to a git.Commit.
func convertGitHubRepoCommit(ghCommit *gh.RepositoryCommit) git.Commit {
	if ghCommit == nil {
		return git.Commit{}
	}

	var parents []string
	for _, p := range ghCommit.Parents {
		parents = append(parents, p.GetSHA())
	}

	var when time.Time
	var message string
	if ghCommit.Commit != nil {
		if ghCommit.Commit.Committer != nil && ghCommit.Commit.Committer.Date != nil {
			when = ghCommit.Commit.Committer.Date.Time
		}
		message = ghCommit.Commit.GetMessage()
	}

	return git.Commit{
		Sha:     ghCommit.GetSHA(),
		Parents: parents,
		When:    when,
		Message: message,
	}
}
