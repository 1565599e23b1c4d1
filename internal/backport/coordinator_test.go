package backport

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/backporter/internal/backport/mocks"
	"github.com/simplesurance/backporter/internal/githubclt"
)

type coordinatorTest struct {
	coordinator *Coordinator
	clt         *mocks.MockGithubClient
	gitClt      *mocks.MockGitClient
}

func newCoordinatorTest(t *testing.T, filter *PRFilter) *coordinatorTest {
	t.Helper()
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mockCtrl := gomock.NewController(t)
	clt := mocks.NewMockGithubClient(mockCtrl)
	gitClt := mocks.NewMockGitClient(mockCtrl)

	engine := NewReplayEngine(repoURL, forkURL, botUser, botUser+"@example.com")
	engine.clone = func(context.Context, string, string, string) (GitClient, error) {
		return gitClt, nil
	}

	coordinator := NewCoordinator(&CoordinatorParams{
		GithubClient:    clt,
		Resolver:        NewResolver(clt, nil),
		Planner:         NewPlanner(),
		ReplayEngine:    engine,
		Publisher:       NewPublisher(clt, NewRetryer(), botUser),
		Filter:          filter,
		RepositoryOwner: repoOwner,
		Repository:      repo,
		PromotedLabel:   "promoted-to-master",
	})

	return &coordinatorTest{
		coordinator: coordinator,
		clt:         clt,
		gitClt:      gitClt,
	}
}

func TestStableBranchName(t *testing.T) {
	assert.Equal(t, "master", stableBranchName("next"))
	assert.Equal(t, "branch-5.4", stableBranchName("next-5.4"))
}

// A pull request that was squash-merged onto "next" and carries two backport
// labels is backported to both release branches, newest version first.
// The second backport replays the commits of the first backport pull request,
// not the originally promoted ones.
func TestRunRangeModeBackportsToAllTargetsNewestFirst(t *testing.T) {
	tt := newCoordinatorTest(t, nil)

	parent := &githubclt.PullRequest{
		Number:         42,
		Title:          "fix: handle empty reads",
		Body:           "Fixes #7",
		Author:         "testman",
		State:          "closed",
		Merged:         true,
		MergeCommitSHA: "p2sha",
		Labels:         []string{"promoted-to-master", "backport/5.4", "backport/5.2", "P1"},
	}

	promoted := []*githubclt.Commit{
		{SHA: "p1sha", Message: "fix: handle empty reads\n\ndetails", ParentCount: 1},
		{SHA: "p2sha", Message: "fix: handle empty writes\n\ndetails", ParentCount: 1},
	}

	// selection: both commits in the promotion window belong to #42
	tt.clt.EXPECT().CompareCommits(gomock.Any(), repoOwner, repo, "startsha", "endsha").Return(promoted, nil)
	tt.clt.EXPECT().PRsWithCommit(gomock.Any(), repoOwner, repo, "p1sha").Return([]*githubclt.PullRequest{parent}, nil)
	tt.clt.EXPECT().PRsWithCommit(gomock.Any(), repoOwner, repo, "p2sha").Return([]*githubclt.PullRequest{parent}, nil)

	tt.clt.EXPECT().HasLinkedIssue(gomock.Any(), repoOwner, repo, 42).Return(true, nil)

	// resolution: the merge commit is linear, the promoted commits are
	// recovered via title matching on the stable branch
	tt.clt.EXPECT().Commit(gomock.Any(), repoOwner, repo, "p2sha").Return(promoted[1], nil)
	tt.clt.EXPECT().CompareCommits(gomock.Any(), repoOwner, repo, "startsha", "master").Return(promoted, nil)
	tt.clt.EXPECT().PRCommits(gomock.Any(), repoOwner, repo, 42).Return([]*githubclt.Commit{
		{SHA: "orig1", Message: "fix: handle empty reads"},
		{SHA: "orig2", Message: "fix: handle empty writes"},
	}, nil)

	tt.gitClt.EXPECT().SetCommitter(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	// target 5.4 replays the promoted commits
	tt.gitClt.EXPECT().CreateAndCheckoutBranch(gomock.Any(), "backport/42/to-5.4").Return(nil)
	tt.gitClt.EXPECT().CherryPick(gomock.Any(), "p1sha").Return(nil)
	tt.gitClt.EXPECT().CherryPick(gomock.Any(), "p2sha").Return(nil)
	tt.gitClt.EXPECT().PushForce(gomock.Any(), forkURL, "backport/42/to-5.4").Return(nil)

	// target 5.2 replays the commits of the 5.4 backport pull request
	tt.clt.EXPECT().PRCommits(gomock.Any(), repoOwner, repo, 101).Return([]*githubclt.Commit{
		{SHA: "b1"}, {SHA: "b2"},
	}, nil)
	tt.gitClt.EXPECT().CreateAndCheckoutBranch(gomock.Any(), "backport/42/to-5.2").Return(nil)
	tt.gitClt.EXPECT().CherryPick(gomock.Any(), "b1").Return(nil)
	tt.gitClt.EXPECT().CherryPick(gomock.Any(), "b2").Return(nil)
	tt.gitClt.EXPECT().PushForce(gomock.Any(), forkURL, "backport/42/to-5.2").Return(nil)

	tt.clt.EXPECT().
		CreatePullRequest(
			gomock.Any(),
			gomock.Eq(repoOwner), gomock.Eq(repo),
			gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(),
			gomock.Eq(false),
		).
		DoAndReturn(func(_ context.Context, _, _, title, _, head, base string, _ bool) (*githubclt.PullRequest, error) {
			switch base {
			case "next-5.4":
				assert.Equal(t, "[Backport 5.4] fix: handle empty reads", title)
				assert.Equal(t, botUser+":backport/42/to-5.4", head)
				return &githubclt.PullRequest{Number: 101}, nil

			case "next-5.2":
				assert.Equal(t, "[Backport 5.2] fix: handle empty reads", title)
				assert.Equal(t, botUser+":backport/42/to-5.2", head)
				return &githubclt.PullRequest{Number: 102}, nil

			default:
				t.Fatalf("pull request created for unexpected base branch: %q", base)
				return nil, nil
			}
		}).
		Times(2)

	tt.clt.EXPECT().AddAssignee(gomock.Any(), repoOwner, repo, 101, "testman").Return(nil)
	tt.clt.EXPECT().AddAssignee(gomock.Any(), repoOwner, repo, 102, "testman").Return(nil)

	tt.clt.EXPECT().AddLabels(gomock.Any(), repoOwner, repo, 101, []string{"P1", cloudRoutingLabel}).Return(nil)
	tt.clt.EXPECT().AddLabels(gomock.Any(), repoOwner, repo, 102, []string{"P1", cloudRoutingLabel}).Return(nil)

	tt.clt.EXPECT().RemoveLabel(gomock.Any(), repoOwner, repo, 42, "backport/5.4").Return(nil)
	tt.clt.EXPECT().AddLabels(gomock.Any(), repoOwner, repo, 42, []string{"backport/5.4-done"}).Return(nil)
	tt.clt.EXPECT().AddLabels(gomock.Any(), repoOwner, repo, 101, []string{"backport/5.4-done"}).Return(nil)

	tt.clt.EXPECT().RemoveLabel(gomock.Any(), repoOwner, repo, 42, "backport/5.2").Return(nil)
	tt.clt.EXPECT().AddLabels(gomock.Any(), repoOwner, repo, 42, []string{"backport/5.2-done"}).Return(nil)
	tt.clt.EXPECT().AddLabels(gomock.Any(), repoOwner, repo, 102, []string{"backport/5.2-done"}).Return(nil)

	err := tt.coordinator.Run(context.Background(), &Request{
		BaseBranchRef: "refs/heads/next",
		CommitRange:   "startsha..endsha",
	})
	require.NoError(t, err)
}

// When the newest target fails, the older targets have no commit set to chain
// from and are skipped, no pull request is created for them.
func TestRunNewerTargetFailureSkipsOlderTargets(t *testing.T) {
	tt := newCoordinatorTest(t, nil)

	parent := &githubclt.PullRequest{
		Number:         42,
		Title:          "fix: chained",
		Author:         "testman",
		State:          "closed",
		Merged:         true,
		MergeCommitSHA: "msha",
		Labels:         []string{"backport/5.4", "backport/5.2"},
	}

	tt.clt.EXPECT().PR(gomock.Any(), repoOwner, repo, 42).Return(parent, nil)
	tt.clt.EXPECT().HasLinkedIssue(gomock.Any(), repoOwner, repo, 42).Return(true, nil)
	tt.clt.EXPECT().Commit(gomock.Any(), repoOwner, repo, "msha").
		Return(&githubclt.Commit{SHA: "msha", ParentCount: 2}, nil)

	tt.gitClt.EXPECT().SetCommitter(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	tt.gitClt.EXPECT().CreateAndCheckoutBranch(gomock.Any(), "backport/42/to-5.4").Return(nil)
	tt.gitClt.EXPECT().CherryPick(gomock.Any(), "msha").Return(nil)
	tt.gitClt.EXPECT().PushForce(gomock.Any(), forkURL, "backport/42/to-5.4").
		Return(errors.New("mocked push failure"))

	err := tt.coordinator.Run(context.Background(), &Request{
		BaseBranchRef: "refs/heads/next",
		PRNumber:      42,
		HeadCommit:    "endsha",
	})
	require.NoError(t, err)
}

func TestRunLabelOverrideProcessesSingleTarget(t *testing.T) {
	tt := newCoordinatorTest(t, nil)

	parent := &githubclt.PullRequest{
		Number:         42,
		Title:          "fix: single target",
		Author:         "testman",
		State:          "closed",
		Merged:         true,
		MergeCommitSHA: "msha",
		Labels:         []string{"backport/5.4", "backport/5.2"},
	}

	tt.clt.EXPECT().PR(gomock.Any(), repoOwner, repo, 42).Return(parent, nil)
	tt.clt.EXPECT().HasLinkedIssue(gomock.Any(), repoOwner, repo, 42).Return(true, nil)
	tt.clt.EXPECT().Commit(gomock.Any(), repoOwner, repo, "msha").
		Return(&githubclt.Commit{SHA: "msha", ParentCount: 2}, nil)

	tt.gitClt.EXPECT().SetCommitter(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	tt.gitClt.EXPECT().CreateAndCheckoutBranch(gomock.Any(), "backport/42/to-5.2").Return(nil)
	tt.gitClt.EXPECT().CherryPick(gomock.Any(), "msha").Return(nil)
	tt.gitClt.EXPECT().PushForce(gomock.Any(), forkURL, "backport/42/to-5.2").Return(nil)

	tt.clt.EXPECT().
		CreatePullRequest(
			gomock.Any(),
			gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Eq("next-5.2"),
			gomock.Any(),
		).
		Return(&githubclt.PullRequest{Number: 102}, nil)
	tt.clt.EXPECT().AddAssignee(gomock.Any(), repoOwner, repo, 102, "testman").Return(nil)
	tt.clt.EXPECT().RemoveLabel(gomock.Any(), repoOwner, repo, 42, "backport/5.2").Return(nil)
	tt.clt.EXPECT().AddLabels(gomock.Any(), repoOwner, repo, 42, []string{"backport/5.2-done"}).Return(nil)
	tt.clt.EXPECT().AddLabels(gomock.Any(), repoOwner, repo, 102, []string{"backport/5.2-done"}).Return(nil)

	err := tt.coordinator.Run(context.Background(), &Request{
		BaseBranchRef: "refs/heads/next",
		PRNumber:      42,
		HeadCommit:    "endsha",
		LabelOverride: "backport/5.2",
	})
	require.NoError(t, err)
}

func TestRunSkipsPullRequestWithoutPromotedLabel(t *testing.T) {
	tt := newCoordinatorTest(t, nil)

	pr := &githubclt.PullRequest{
		Number: 42,
		Labels: []string{"backport/5.4"},
	}

	tt.clt.EXPECT().CompareCommits(gomock.Any(), repoOwner, repo, "startsha", "endsha").
		Return([]*githubclt.Commit{{SHA: "p1sha"}}, nil)
	tt.clt.EXPECT().PRsWithCommit(gomock.Any(), repoOwner, repo, "p1sha").
		Return([]*githubclt.PullRequest{pr}, nil)

	err := tt.coordinator.Run(context.Background(), &Request{
		BaseBranchRef: "refs/heads/next",
		CommitRange:   "startsha..endsha",
	})
	require.NoError(t, err)
}

func TestRunFilterQuerySkipsNonMatching(t *testing.T) {
	filter, err := NewPRFilter(`.author == "testman"`)
	require.NoError(t, err)

	tt := newCoordinatorTest(t, filter)

	parent := &githubclt.PullRequest{
		Number: 42,
		Author: "somebody-else",
		Labels: []string{"backport/5.4"},
	}

	tt.clt.EXPECT().PR(gomock.Any(), repoOwner, repo, 42).Return(parent, nil)

	err = tt.coordinator.Run(context.Background(), &Request{
		BaseBranchRef: "refs/heads/next",
		PRNumber:      42,
		HeadCommit:    "endsha",
	})
	require.NoError(t, err)
}

func TestRunMissingIssueLinkRemovesLabelsAndSkips(t *testing.T) {
	tt := newCoordinatorTest(t, nil)

	parent := &githubclt.PullRequest{
		Number: 42,
		Author: "testman",
		Labels: []string{"backport/5.4"},
	}

	tt.clt.EXPECT().PR(gomock.Any(), repoOwner, repo, 42).Return(parent, nil)
	tt.clt.EXPECT().HasLinkedIssue(gomock.Any(), repoOwner, repo, 42).Return(false, nil)
	tt.clt.EXPECT().RemoveLabel(gomock.Any(), repoOwner, repo, 42, "backport/5.4").Return(nil)
	tt.clt.EXPECT().CreateIssueComment(gomock.Any(), repoOwner, repo, 42, gomock.Any()).Return(nil)

	err := tt.coordinator.Run(context.Background(), &Request{
		BaseBranchRef: "refs/heads/next",
		PRNumber:      42,
		HeadCommit:    "endsha",
	})
	require.NoError(t, err)
}

func TestRunRequiresSelection(t *testing.T) {
	tt := newCoordinatorTest(t, nil)

	err := tt.coordinator.Run(context.Background(), &Request{BaseBranchRef: "refs/heads/next"})
	require.Error(t, err)
}
