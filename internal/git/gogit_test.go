package git_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-nextver/internal/git"
	"github.com/MyCarrier-DevOps/go-nextver/internal/testutil"
)

func openTestRepo(t *testing.T, tr *testutil.TestRepo) *git.GoGitRepository {
	t.Helper()
	repo, err := git.Open(tr.Path())
	require.NoError(t, err)
	return repo
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := git.Open("/nonexistent/path")
	require.ErrorContains(t, err, "opening git repository")
}

func TestOpen_Paths(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("init")
	repo := openTestRepo(t, tr)

	require.Equal(t, tr.Path(), repo.WorkingDirectory())
	require.Contains(t, repo.Path(), ".git")
}

func TestGoGit_HeadAndDetached(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	first := tr.AddCommit("init")
	second := tr.AddCommit("feat: more")
	repo := openTestRepo(t, tr)

	head, err := repo.Head()
	require.NoError(t, err)
	require.Equal(t, "main", head.FriendlyName())
	require.Equal(t, second, head.Tip.Sha)
	require.False(t, repo.IsHeadDetached())

	tr.DetachHead(first)
	require.True(t, repo.IsHeadDetached())
	head, err = repo.Head()
	require.NoError(t, err)
	require.True(t, head.IsDetachedHead)
	require.Equal(t, first, head.Tip.Sha)
}

func TestGoGit_BranchesIncludesRemotes(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	sha := tr.AddCommit("init")
	tr.CreateBranch("develop", sha)
	tr.CreateRemoteBranch("origin", "release/1.0", sha)
	repo := openTestRepo(t, tr)

	branches, err := repo.Branches()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, b := range branches {
		names[b.Name.Canonical] = b.IsRemote
	}
	require.Equal(t, map[string]bool{
		"refs/heads/main":                 false,
		"refs/heads/develop":              false,
		"refs/remotes/origin/release/1.0": true,
	}, names)
}

func TestGoGit_TagsAndPeel(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	first := tr.AddCommit("init")
	second := tr.AddCommit("feat: x")
	tr.CreateTag("v1.0.0", first)
	tr.CreateAnnotatedTag("v1.1.0", second, "release 1.1.0")
	repo := openTestRepo(t, tr)

	tags, err := repo.Tags()
	require.NoError(t, err)
	require.Len(t, tags, 2)

	peeled := map[string]string{}
	for _, tag := range tags {
		sha, err := repo.PeelTagToCommit(tag)
		require.NoError(t, err)
		peeled[tag.Name.Friendly] = sha
	}
	require.Equal(t, map[string]string{"v1.0.0": first, "v1.1.0": second}, peeled)
}

func TestGoGit_CommitLogRange(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	a := tr.AddCommit("a")
	b := tr.AddCommit("b")
	c := tr.AddCommit("c")
	repo := openTestRepo(t, tr)

	all, err := repo.CommitLog("", c)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, c, all[0].Sha)

	since, err := repo.CommitLog(a, c)
	require.NoError(t, err)
	require.Len(t, since, 2)
	require.Equal(t, c, since[0].Sha)
	require.Equal(t, b, since[1].Sha)

	none, err := repo.CommitLog(c, c)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestGoGit_CommitLogExcludesMergedSideBranch(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	base := tr.AddCommit("base")
	tr.CheckoutNewBranch("feature")
	side := tr.AddCommit("feat: side")
	tr.Checkout("main")
	mainOnly := tr.AddCommit("fix: main")
	merge := tr.MergeCommit("Merge feature", side)
	repo := openTestRepo(t, tr)

	log, err := repo.CommitLog(side, merge)
	require.NoError(t, err)

	var got []string
	for _, c := range log {
		got = append(got, c.Sha)
	}
	require.ElementsMatch(t, []string{merge, mainOnly}, got)
	require.NotContains(t, got, base)

	mergeCommit, err := repo.CommitFromSha(merge)
	require.NoError(t, err)
	require.True(t, mergeCommit.IsMerge())
}

func TestGoGit_BranchesContainingCommit(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	a := tr.AddCommit("a")
	tr.CreateBranch("old", a)
	b := tr.AddCommit("b")
	repo := openTestRepo(t, tr)

	containing, err := repo.BranchesContainingCommit(b)
	require.NoError(t, err)
	require.Len(t, containing, 1)
	require.Equal(t, "main", containing[0].FriendlyName())

	containing, err = repo.BranchesContainingCommit(a)
	require.NoError(t, err)
	require.Len(t, containing, 2)
}

func TestGoGit_ResolveRevision(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	a := tr.AddCommit("a")
	b := tr.AddCommit("b")
	tr.CreateTag("v1.0.0", a)
	repo := openTestRepo(t, tr)

	tests := []struct {
		rev  string
		want string
	}{
		{"HEAD", b},
		{"main", b},
		{"v1.0.0", a},
		{a, a},
		{"HEAD~1", a},
	}
	for _, tt := range tests {
		t.Run(tt.rev, func(t *testing.T) {
			got, err := repo.ResolveRevision(tt.rev)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := repo.ResolveRevision("no-such-ref")
	require.Error(t, err)
}

func TestRepositoryStore_WithGoGit(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	a := tr.AddCommit("a")
	b := tr.AddCommit("b")
	tr.CreateAnnotatedTag("v0.1.0", a, "first")
	repo := openTestRepo(t, tr)
	store := git.NewRepositoryStore(repo)

	head, err := store.GetTargetBranch("")
	require.NoError(t, err)

	var log []git.TaggedCommit
	err = store.WalkTaggedCommits(*head.Tip, func(tc git.TaggedCommit) bool {
		log = append(log, tc)
		return true
	})
	require.NoError(t, err)
	require.Len(t, log, 2)
	require.Equal(t, b, log[0].Commit.Sha)
	require.Equal(t, []string{"v0.1.0"}, log[1].TagNames())
}

func TestGoGitRepository_WalkCommitsStops(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	for i := range 50 {
		tr.AddCommit(fmt.Sprintf("commit %d", i))
	}
	newest := tr.AddCommit("newest")
	repo := openTestRepo(t, tr)

	var visited []string
	err := repo.WalkCommits(newest, func(c git.Commit) bool {
		visited = append(visited, c.Sha)
		return len(visited) < 2
	})
	require.NoError(t, err)
	require.Len(t, visited, 2)
	require.Equal(t, newest, visited[0])
}
