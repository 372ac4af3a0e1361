// Package calculator implements the version calculation pipeline: latest
// version lookup, the commit message window, transformer selection and the
// orchestration that ties them together.
package calculator

import (
	"iter"

	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
	"github.com/MyCarrier-DevOps/go-nextver/internal/label"
	"github.com/MyCarrier-DevOps/go-nextver/internal/semver"
)

// CommitVersion is a version found on a tagged commit.
type CommitVersion struct {
	Version   semver.SemanticVersion
	CommitSha string
	TagName   string
}

// FoundCommitVersion is the outcome of a version search. A nil CommitVersion
// means no qualifying tag exists in the history.
type FoundCommitVersion struct {
	CommitVersion                      *CommitVersion
	IsCommitVersionCoreAlreadyReleased bool
}

// Found reports whether a version was found.
func (f FoundCommitVersion) Found() bool {
	return f.CommitVersion != nil
}

// FindLatest walks history newest-first and returns the first commit whose
// tags hold a qualifying version. The walk stops at that commit. A tag qualifies when it parses and is
// either a release or, with a search label set, carries exactly that
// pre-release. The highest qualifying version on the commit wins.
func FindLatest(history iter.Seq[git.TaggedCommit], tagPrefix string, search label.Label) FoundCommitVersion {
	searchValue, searching := search.Get()

	for tc := range history {
		var best *CommitVersion
		for _, tag := range tc.Tags {
			v, ok := semver.TryParse(tag.Name.Friendly, tagPrefix)
			if !ok {
				continue
			}
			if v.HasPreRelease() && (!searching || v.PreRelease() != searchValue) {
				continue
			}
			if best == nil || v.Compare(best.Version) > 0 {
				best = &CommitVersion{Version: v, CommitSha: tc.Commit.Sha, TagName: tag.Name.Friendly}
			}
		}
		if best != nil {
			return FoundCommitVersion{
				CommitVersion:                      best,
				IsCommitVersionCoreAlreadyReleased: !best.Version.HasPreRelease(),
			}
		}
	}
	return FoundCommitVersion{}
}

// LatestCommitVersionFinder runs FindLatest over the ancestry of a commit.
type LatestCommitVersionFinder struct {
	store *git.RepositoryStore
}

// NewLatestCommitVersionFinder creates a finder reading from store.
func NewLatestCommitVersionFinder(store *git.RepositoryStore) *LatestCommitVersionFinder {
	return &LatestCommitVersionFinder{store: store}
}

// Find searches the ancestry of tip, tip included.
func (f *LatestCommitVersionFinder) Find(tip git.Commit, tagPrefix string, search label.Label) (FoundCommitVersion, error) {
	var walkErr error
	history := func(yield func(git.TaggedCommit) bool) {
		walkErr = f.store.WalkTaggedCommits(tip, yield)
	}

	found := FindLatest(history, tagPrefix, search)
	if walkErr != nil {
		return FoundCommitVersion{}, walkErr
	}
	return found, nil
}
