package github

import (
	"sync"

	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
)

// apiCache holds GitHub API responses for the lifetime of one repository
// value. It is safe for concurrent use.
type apiCache struct {
	mu sync.RWMutex

	branches        []git.Branch
	tags            []git.Tag
	branchesFetched bool
	tagsFetched     bool

	commits    map[string]git.Commit   // sha → Commit
	commitLogs map[string][]git.Commit // "from:to" → commits
	revisions  map[string]string       // rev → sha
	// stopShas are commits carrying a version tag; full-history walks end
	// shortly after reaching one.
	stopShas map[string]bool

	headBranch *git.Branch
}

func newCache() *apiCache {
	return &apiCache{
		commits:    make(map[string]git.Commit),
		commitLogs: make(map[string][]git.Commit),
		revisions:  make(map[string]string),
		stopShas:   make(map[string]bool),
	}
}

func (c *apiCache) getBranches() ([]git.Branch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.branches, c.branchesFetched
}

func (c *apiCache) putBranches(branches []git.Branch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.branches = branches
	c.branchesFetched = true
}

func (c *apiCache) getTags() ([]git.Tag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tags, c.tagsFetched
}

func (c *apiCache) putTags(tags []git.Tag, stopShas []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags = tags
	c.tagsFetched = true
	for _, sha := range stopShas {
		c.stopShas[sha] = true
	}
}

func (c *apiCache) isStopSha(sha string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopShas[sha]
}

func (c *apiCache) getCommit(sha string) (git.Commit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	commit, ok := c.commits[sha]
	return commit, ok
}

func (c *apiCache) putCommit(commit git.Commit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits[commit.Sha] = commit
}

func (c *apiCache) getCommitLog(from, to string) ([]git.Commit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	log, ok := c.commitLogs[from+":"+to]
	return log, ok
}

func (c *apiCache) putCommitLog(from, to string, commits []git.Commit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commitLogs[from+":"+to] = commits
}

func (c *apiCache) getRevision(rev string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sha, ok := c.revisions[rev]
	return sha, ok
}

func (c *apiCache) putRevision(rev, sha string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revisions[rev] = sha
}

func (c *apiCache) getHead() (*git.Branch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headBranch, c.headBranch != nil
}

func (c *apiCache) putHead(branch git.Branch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headBranch = &branch
}
