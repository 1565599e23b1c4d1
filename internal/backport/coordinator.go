// Package backport replays merged pull requests onto older release branches
// and publishes the result as new pull requests.
package backport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/backporter/internal/githubclt"
	"github.com/simplesurance/backporter/internal/logfields"
)

const loggerName = "coordinator"

// GithubClient is the subset of the github API that the backporter consumes.
type GithubClient interface {
	PR(ctx context.Context, owner, repo string, number int) (*githubclt.PullRequest, error)
	Commit(ctx context.Context, owner, repo, sha string) (*githubclt.Commit, error)
	CompareCommits(ctx context.Context, owner, repo, base, head string) ([]*githubclt.Commit, error)
	ListCommits(ctx context.Context, owner, repo, ref string) ([]*githubclt.Commit, error)
	PRCommits(ctx context.Context, owner, repo string, number int) ([]*githubclt.Commit, error)
	PRsWithCommit(ctx context.Context, owner, repo, sha string) ([]*githubclt.PullRequest, error)
	ClosedEventCommits(ctx context.Context, owner, repo string, number int) ([]string, error)
	CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string, draft bool) (*githubclt.PullRequest, error)
	AddAssignee(ctx context.Context, owner, repo string, number int, user string) error
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error
	CreateIssueComment(ctx context.Context, owner, repo string, issueOrPRNr int, comment string) error
	HasLinkedIssue(ctx context.Context, owner, repo string, prNumber int) (bool, error)
}

// Request describes one invocation of the backporter.
// Either PRNumber or CommitRange must be set.
type Request struct {
	// BaseBranchRef is the git ref of the promotion branch, e.g.
	// "refs/heads/next".
	BaseBranchRef string
	// CommitRange selects all pull requests that produced a commit in
	// the range, format: "<start>..<end>".
	CommitRange string
	// PRNumber selects a single pull request.
	PRNumber int
	// HeadCommit is the head of the promotion branch after PRNumber was
	// merged, it bounds the promotion window for commit recovery.
	HeadCommit string
	// LabelOverride processes only the given backport label instead of
	// scanning the labels of the pull request. Only valid with PRNumber.
	LabelOverride string
}

// Coordinator drives the backport pipeline: it selects the pull requests to
// process and runs resolver, planner, replay engine and publisher for each of
// their targets.
//
// Processing is strictly sequential. The targets of a pull request depend on
// each other: the input commit set of a target is the replayed commit set of
// the previously processed, newer, target. A conflict resolved while
// backporting to a newer version is carried into the older versions this way.
type Coordinator struct {
	clt           GithubClient
	resolver      *Resolver
	planner       *Planner
	replayer      *ReplayEngine
	publisher     *Publisher
	filter        *PRFilter
	owner         string
	repo          string
	promotedLabel string
	logger        *zap.Logger
}

type CoordinatorParams struct {
	GithubClient GithubClient
	Resolver     *Resolver
	Planner      *Planner
	ReplayEngine *ReplayEngine
	Publisher    *Publisher
	// Filter is optional, when nil all selected pull requests are
	// processed.
	Filter          *PRFilter
	RepositoryOwner string
	Repository      string
	PromotedLabel   string
}

func NewCoordinator(params *CoordinatorParams) *Coordinator {
	return &Coordinator{
		clt:           params.GithubClient,
		resolver:      params.Resolver,
		planner:       params.Planner,
		replayer:      params.ReplayEngine,
		publisher:     params.Publisher,
		filter:        params.Filter,
		owner:         params.RepositoryOwner,
		repo:          params.Repository,
		promotedLabel: params.PromotedLabel,
		logger: zap.L().Named(loggerName).With(
			logfields.RepositoryOwner(params.RepositoryOwner),
			logfields.Repository(params.Repository),
		),
	}
}

// Run processes all pull requests selected by req.
// Failures of individual pull requests or targets are logged and counted,
// they do not abort the run. An error is only returned when the selection
// itself fails.
func (c *Coordinator) Run(ctx context.Context, req *Request) error {
	baseBranch := strings.TrimPrefix(req.BaseBranchRef, "refs/heads/")
	stableBranch := stableBranchName(baseBranch)

	prs, startCommit, err := c.selectPullRequests(ctx, req)
	if err != nil {
		return fmt.Errorf("selecting pull requests failed: %w", err)
	}

	c.logger.Info("pull requests selected",
		logfields.Event("pull_requests_selected"),
		zap.Int("backport.candidate_count", len(prs)),
		logfields.BaseBranch(baseBranch),
	)

	for _, pr := range prs {
		c.processPullRequest(ctx, req, pr, stableBranch, startCommit)
	}

	return nil
}

// stableBranchName maps a promotion branch to the stable branch its commits
// are promoted to. "next" promotes to "master", "next-X.Y" to "branch-X.Y".
func stableBranchName(baseBranch string) string {
	if baseBranch == "next" {
		return "master"
	}

	return strings.Replace(baseBranch, "next", "branch", 1)
}

func (c *Coordinator) selectPullRequests(ctx context.Context, req *Request) (prs []*githubclt.PullRequest, startCommit string, err error) {
	if req.PRNumber > 0 {
		pr, err := c.clt.PR(ctx, c.owner, c.repo, req.PRNumber)
		if err != nil {
			return nil, "", fmt.Errorf("retrieving pull request #%d failed: %w", req.PRNumber, err)
		}

		return []*githubclt.PullRequest{pr}, req.HeadCommit, nil
	}

	if req.CommitRange != "" {
		prs, start, err := c.pullRequestsInRange(ctx, req.CommitRange)
		if err != nil {
			return nil, "", err
		}

		return prs, start, nil
	}

	return nil, "", errors.New("either a pull request number or a commit range must be specified")
}

func (c *Coordinator) pullRequestsInRange(ctx context.Context, commitRange string) (prs []*githubclt.PullRequest, startCommit string, err error) {
	start, end, found := strings.Cut(commitRange, "..")
	if !found || start == "" || end == "" {
		return nil, "", fmt.Errorf("invalid commit range %q, expected format: <start>..<end>", commitRange)
	}

	commits, err := c.clt.CompareCommits(ctx, c.owner, c.repo, start, end)
	if err != nil {
		return nil, "", fmt.Errorf("comparing %s failed: %w", commitRange, err)
	}

	seen := map[int]struct{}{}
	for _, commit := range commits {
		commitPRs, err := c.clt.PRsWithCommit(ctx, c.owner, c.repo, commit.SHA)
		if err != nil {
			return nil, "", fmt.Errorf("listing pull requests of commit %s failed: %w", commit.SHA, err)
		}

		for _, pr := range commitPRs {
			if _, exists := seen[pr.Number]; exists {
				continue
			}

			seen[pr.Number] = struct{}{}
			prs = append(prs, pr)
		}
	}

	return prs, start, nil
}

func (c *Coordinator) processPullRequest(ctx context.Context, req *Request, pr *githubclt.PullRequest, stableBranch, startCommit string) {
	logger := c.logger.With(logfields.PullRequest(pr.Number))
	metrics.processedPRs.Inc()

	explicitPR := req.PRNumber > 0

	if !explicitPR && !hasLabel(pr.Labels, c.promotedLabel) {
		logger.Info("skipping pull request, promoted label is missing",
			logfields.Event("pull_request_skipped"),
			logfields.Label(c.promotedLabel),
		)

		return
	}

	targets, ok := c.planTargets(req, pr, logger)
	if !ok || len(targets) == 0 {
		return
	}

	if c.filter != nil {
		matched, err := c.filter.Match(ctx, pr)
		if err != nil {
			logger.Error("evaluating filter query failed",
				logfields.Event("filter_query_failed"),
				zap.Error(err),
			)

			return
		}

		if !matched {
			logger.Info("skipping pull request, filter query did not match",
				logfields.Event("pull_request_skipped"),
				zap.String("filter_query", c.filter.String()),
			)

			return
		}
	}

	linked, err := c.clt.HasLinkedIssue(ctx, c.owner, c.repo, pr.Number)
	if err != nil {
		logger.Error("retrieving linked issues failed",
			logfields.Event("linked_issue_check_failed"),
			zap.Error(err),
		)

		return
	}

	if !linked {
		logger.Warn("pull request is not linked to an issue, removing backport labels",
			logfields.Event("pull_request_issue_link_missing"),
			zap.Error(ErrNoIssueLinked),
		)

		if err := c.publisher.PublishMissingIssueLink(ctx, c.owner, c.repo, pr); err != nil {
			logger.Error("reporting missing issue link failed",
				logfields.Event("issue_link_report_failed"),
				zap.Error(err),
			)
		}

		return
	}

	commits, err := c.resolver.Resolve(ctx, c.owner, c.repo, pr, stableBranch, startCommit)
	if err != nil {
		logger.Error("resolving commits failed",
			logfields.Event("commit_resolution_failed"),
			zap.Error(err),
		)

		return
	}

	if commits.IsEmpty() {
		logger.Info("no commits found, nothing to backport",
			logfields.Event("pull_request_skipped"),
		)

		return
	}

	logger.Info("commits resolved",
		logfields.Event("commits_resolved"),
		zap.String("git.commits", commits.String()),
	)

	c.processTargets(ctx, pr, targets, commits)
}

func (c *Coordinator) planTargets(req *Request, pr *githubclt.PullRequest, logger *zap.Logger) ([]*Target, bool) {
	if req.PRNumber > 0 && req.LabelOverride != "" {
		target, err := c.planner.PlanLabel(pr.Number, req.LabelOverride)
		if err != nil {
			logger.Error("invalid backport label argument",
				logfields.Event("backport_label_malformed"),
				logfields.Label(req.LabelOverride),
				zap.Error(err),
			)

			return nil, false
		}

		return []*Target{target}, true
	}

	targets := c.planner.Plan(pr.Number, pr.Labels)
	if len(targets) == 0 {
		logger.Info("skipping pull request, no backport labels",
			logfields.Event("pull_request_skipped"),
		)
	}

	return targets, true
}

// processTargets replays and publishes each target sequentially, newest
// version first.
// The commit set of a target with index >0 is the replayed commit set of the
// previous target's pull request. When a target fails there is no valid
// commit set to chain from, the remaining older targets are skipped.
func (c *Coordinator) processTargets(ctx context.Context, pr *githubclt.PullRequest, targets []*Target, commits *CommitSet) {
	chain := commits

	for i, target := range targets {
		logger := c.logger.With(
			logfields.PullRequest(pr.Number),
			logfields.TargetVersion(target.Version.String()),
		)

		if i > 0 && chain == nil {
			metrics.skippedTargets.Inc()
			logger.Error("skipping target, a newer target did not complete",
				logfields.Event("backport_target_skipped"),
			)

			continue
		}

		run, err := c.replayer.Replay(ctx, target, chain)
		if err != nil {
			chain = nil

			if errors.Is(err, ErrBaseBranchMissing) {
				metrics.TargetFailed("base_branch_missing")
				logger.Error("backport target failed, base branch does not exist",
					logfields.Event("backport_target_failed"),
					logfields.BaseBranch(target.BaseBranch),
					zap.Error(err),
				)

				continue
			}

			metrics.TargetFailed("replay")
			logger.Error("replaying commits failed",
				logfields.Event("backport_target_failed"),
				zap.Error(err),
			)

			continue
		}

		backportPR, err := c.publisher.Publish(ctx, c.owner, c.repo, pr, run)
		if err != nil {
			chain = nil
			metrics.TargetFailed("publish")
			logger.Error("publishing backport failed",
				logfields.Event("backport_target_failed"),
				zap.Error(err),
			)

			continue
		}

		if backportPR == nil {
			// the backport pull request already exists, its state
			// cannot be derived from this run, do not chain from it
			chain = nil
			logger.Info("backport already published",
				logfields.Event("backport_target_already_done"),
			)

			continue
		}

		metrics.BackportCreated(run.Conflicted)
		logger.Info("backport target completed",
			logfields.Event("backport_target_completed"),
			zap.Int("github.backport_pull_request", backportPR.Number),
			zap.Bool("backport.conflicted", run.Conflicted),
		)

		if i == len(targets)-1 {
			continue
		}

		chain, err = c.replayedCommits(ctx, backportPR.Number)
		if err != nil {
			chain = nil
			metrics.TargetFailed("chain")
			logger.Error("retrieving replayed commits for chaining failed",
				logfields.Event("backport_chain_failed"),
				zap.Error(err),
			)
		}
	}
}

// replayedCommits returns the commits of a backport pull request, they are
// the input for the next older target.
func (c *Coordinator) replayedCommits(ctx context.Context, prNumber int) (*CommitSet, error) {
	commits, err := c.clt.PRCommits(ctx, c.owner, c.repo, prNumber)
	if err != nil {
		return nil, err
	}

	result := NewCommitSet()
	for _, commit := range commits {
		result.Add(commit.SHA)
	}

	return result, nil
}

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}

	return false
}
