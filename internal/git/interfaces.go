package git

// Repository provides read-only access to a commit graph and its refs.
// This is the key abstraction point for testing and backend swapping.
// Implementations must be safe for concurrent readers.
type Repository interface {
	// Path returns the path to the .git directory, or a remote identifier.
	Path() string

	// WorkingDirectory returns the path to the working directory.
	WorkingDirectory() string

	// IsHeadDetached returns true if HEAD is not pointing to a branch.
	IsHeadDetached() bool

	// Head returns the current HEAD branch.
	Head() (Branch, error)

	// Branches returns all branches in the repository.
	Branches() ([]Branch, error)

	// Tags returns all tags in the repository.
	Tags() ([]Tag, error)

	// CommitFromSha returns the commit with the given SHA.
	CommitFromSha(sha string) (Commit, error)

	// CommitLog returns commits reachable from 'to' but not from 'from',
	// in reverse chronological order. If from is empty, all ancestors of
	// 'to' are returned.
	CommitLog(from, to string) ([]Commit, error)

	// WalkCommits visits the ancestry of 'to', 'to' included, in reverse
	// chronological order and stops as soon as fn returns false. fn must
	// not call back into the repository.
	WalkCommits(to string, fn func(Commit) bool) error

	// BranchesContainingCommit returns all branches that contain the
	// given commit SHA.
	BranchesContainingCommit(sha string) ([]Branch, error)

	// PeelTagToCommit resolves a tag to its target commit SHA.
	// For lightweight tags, returns the target directly.
	// For annotated tags, peels through to the commit.
	PeelTagToCommit(tag Tag) (string, error)

	// ResolveRevision resolves a SHA, abbreviated SHA, branch or tag name
	// to a full commit SHA.
	ResolveRevision(rev string) (string, error)
}
