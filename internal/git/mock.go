package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockRepository struct {
	PathFunc                     func() string
	WorkingDirectoryFunc         func() string
	IsHeadDetachedFunc           func() bool
	HeadFunc                     func() (Branch, error)
	BranchesFunc                 func() ([]Branch, error)
	TagsFunc                     func() ([]Tag, error)
	CommitFromShaFunc            func(string) (Commit, error)
	CommitLogFunc                func(string, string) ([]Commit, error)
	WalkCommitsFunc              func(string, func(Commit) bool) error
	BranchesContainingCommitFunc func(string) ([]Branch, error)
	PeelTagToCommitFunc          func(Tag) (string, error)
	ResolveRevisionFunc          func(string) (string, error)
}

func (m *MockRepository) Path() string {
	if m.PathFunc != nil {
		return m.PathFunc()
	}
	return ""
}

func (m *MockRepository) WorkingDirectory() string {
	if m.WorkingDirectoryFunc != nil {
		return m.WorkingDirectoryFunc()
	}
	return ""
}

func (m *MockRepository) IsHeadDetached() bool {
	if m.IsHeadDetachedFunc != nil {
		return m.IsHeadDetachedFunc()
	}
	return false
}

func (m *MockRepository) Head() (Branch, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Branch{}, nil
}

func (m *MockRepository) Branches() ([]Branch, error) {
	if m.BranchesFunc != nil {
		return m.BranchesFunc()
	}
	return nil, nil
}

func (m *MockRepository) Tags() ([]Tag, error) {
	if m.TagsFunc != nil {
		return m.TagsFunc()
	}
	return nil, nil
}

func (m *MockRepository) CommitFromSha(sha string) (Commit, error) {
	if m.CommitFromShaFunc != nil {
		return m.CommitFromShaFunc(sha)
	}
	return Commit{}, nil
}

func (m *MockRepository) CommitLog(from, to string) ([]Commit, error) {
	if m.CommitLogFunc != nil {
		return m.CommitLogFunc(from, to)
	}
	return nil, nil
}

// WalkCommits falls back to CommitLog when WalkCommitsFunc is nil.
func (m *MockRepository) WalkCommits(to string, fn func(Commit) bool) error {
	if m.WalkCommitsFunc != nil {
		return m.WalkCommitsFunc(to, fn)
	}
	commits, err := m.CommitLog("", to)
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

func (m *MockRepository) BranchesContainingCommit(sha string) ([]Branch, error) {
	if m.BranchesContainingCommitFunc != nil {
		return m.BranchesContainingCommitFunc(sha)
	}
	return nil, nil
}

func (m *MockRepository) PeelTagToCommit(tag Tag) (string, error) {
	if m.PeelTagToCommitFunc != nil {
		return m.PeelTagToCommitFunc(tag)
	}
	return tag.TargetSha, nil
}

func (m *MockRepository) ResolveRevision(rev string) (string, error) {
	if m.ResolveRevisionFunc != nil {
		return m.ResolveRevisionFunc(rev)
	}
	return rev, nil
}

// NewLinearMock returns a mock over a linear history given oldest-first.
// CommitLog, CommitFromSha and Head are wired; tags map tag names to commit SHAs.
func NewLinearMock(branch string, commits []Commit, tags map[string]string) *MockRepository {
	index := make(map[string]int, len(commits))
	for i, c := range commits {
		index[c.Sha] = i
	}
	m := &MockRepository{}
	m.CommitLogFunc = func(from, to string) ([]Commit, error) {
		end, ok := index[to]
		if !ok {
			return nil, nil
		}
		start := 0
		if i, ok := index[from]; ok && from != "" {
			start = i + 1
		}
		var out []Commit
		for i := end; i >= start; i-- {
			out = append(out, commits[i])
		}
		return out, nil
	}
	m.CommitFromShaFunc = func(sha string) (Commit, error) {
		if i, ok := index[sha]; ok {
			return commits[i], nil
		}
		return Commit{}, errNotFound(sha)
	}
	m.HeadFunc = func() (Branch, error) {
		if len(commits) == 0 {
			return Branch{Name: NewBranchReferenceName(branch)}, nil
		}
		tip := commits[len(commits)-1]
		return Branch{Name: NewBranchReferenceName(branch), Tip: &tip}, nil
	}
	m.BranchesFunc = func() ([]Branch, error) {
		head, _ := m.HeadFunc()
		return []Branch{head}, nil
	}
	m.TagsFunc = func() ([]Tag, error) {
		var out []Tag
		for name, sha := range tags {
			out = append(out, Tag{Name: NewTagReferenceName(name), TargetSha: sha})
		}
		return out, nil
	}
	m.ResolveRevisionFunc = func(rev string) (string, error) {
		if _, ok := index[rev]; ok {
			return rev, nil
		}
		if sha, ok := tags[rev]; ok {
			return sha, nil
		}
		return "", errNotFound(rev)
	}
	return m
}

type errNotFound string

func (e errNotFound) Error() string { return "revision " + string(e) + " not found" }
