package backport

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/backporter/internal/backport/mocks"
	"github.com/simplesurance/backporter/internal/githubclt"
)

const repo = "repo"
const repoOwner = "testman"

func newResolverTest(t *testing.T) (*Resolver, *mocks.MockGithubClient) {
	t.Helper()
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mockCtrl := gomock.NewController(t)
	clt := mocks.NewMockGithubClient(mockCtrl)

	return NewResolver(clt, nil), clt
}

func TestResolveMergeCommitWithMultipleParents(t *testing.T) {
	resolver, clt := newResolverTest(t)

	pr := githubclt.PullRequest{
		Number:         42,
		Merged:         true,
		MergeCommitSHA: "mergesha",
	}

	clt.EXPECT().
		Commit(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq("mergesha")).
		Return(&githubclt.Commit{SHA: "mergesha", ParentCount: 2}, nil)

	commits, err := resolver.Resolve(context.Background(), repoOwner, repo, &pr, "master", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"mergesha"}, commits.SHAs())
}

func TestResolveLinearMergeRecoversCommitsByTitle(t *testing.T) {
	resolver, clt := newResolverTest(t)

	pr := githubclt.PullRequest{
		Number:         42,
		Merged:         true,
		MergeCommitSHA: "squashsha",
	}

	clt.EXPECT().
		Commit(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq("squashsha")).
		Return(&githubclt.Commit{SHA: "squashsha", ParentCount: 1}, nil)

	// promotion window bounded by the start commit
	clt.EXPECT().
		CompareCommits(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq("startsha"), gomock.Eq("master")).
		Return([]*githubclt.Commit{
			{SHA: "promoted1", Message: "add parser\n\ndetails"},
			{SHA: "unrelated", Message: "bump dependency"},
			{SHA: "promoted2", Message: "fix parser crash"},
		}, nil)

	clt.EXPECT().
		PRCommits(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(42)).
		Return([]*githubclt.Commit{
			{SHA: "orig1", Message: "add parser\n\ndetails"},
			{SHA: "orig2", Message: "fix parser crash"},
		}, nil)

	commits, err := resolver.Resolve(context.Background(), repoOwner, repo, &pr, "master", "startsha")
	require.NoError(t, err)

	// the promoted ids, not the original pull request ids, in original order
	assert.Equal(t, []string{"promoted1", "promoted2"}, commits.SHAs())
}

func TestResolveLinearMergeWithoutStartCommitScansFullHistory(t *testing.T) {
	resolver, clt := newResolverTest(t)

	pr := githubclt.PullRequest{
		Number:         23,
		Merged:         true,
		MergeCommitSHA: "squashsha",
	}

	clt.EXPECT().
		Commit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("squashsha")).
		Return(&githubclt.Commit{SHA: "squashsha", ParentCount: 1}, nil)

	clt.EXPECT().
		ListCommits(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq("master")).
		Return([]*githubclt.Commit{
			{SHA: "promoted1", Message: "improve logging"},
		}, nil)

	clt.EXPECT().
		PRCommits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(23)).
		Return([]*githubclt.Commit{
			{SHA: "orig1", Message: "improve logging"},
		}, nil)

	commits, err := resolver.Resolve(context.Background(), repoOwner, repo, &pr, "master", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"promoted1"}, commits.SHAs())
}

func TestResolveClosedUnmergedUsesClosedEvents(t *testing.T) {
	resolver, clt := newResolverTest(t)

	pr := githubclt.PullRequest{
		Number: 9,
		State:  "closed",
		Merged: false,
	}

	clt.EXPECT().
		ClosedEventCommits(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(9)).
		Return([]string{"applied1", "applied2"}, nil)

	commits, err := resolver.Resolve(context.Background(), repoOwner, repo, &pr, "master", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"applied1", "applied2"}, commits.SHAs())
}

func TestResolveOpenPullRequestReturnsEmptySet(t *testing.T) {
	resolver, _ := newResolverTest(t)

	pr := githubclt.PullRequest{
		Number: 5,
		State:  "open",
	}

	commits, err := resolver.Resolve(context.Background(), repoOwner, repo, &pr, "master", "")
	require.NoError(t, err)

	assert.True(t, commits.IsEmpty())
}
