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

const (
	// conflictsLabel marks backport pull requests that contain unresolved
	// conflicts.
	conflictsLabel = "conflicts"
	// cloudRoutingLabel is attached together with a propagated priority
	// label.
	cloudRoutingLabel = "force_on_cloud"
)

// priorityLabels are propagated from the parent to the backport pull request,
// ordered by severity. Only the most severe one present is propagated.
var priorityLabels = []string{"P0", "P1"}

// Publisher turns a completed backport run into a pull request and updates
// the labels that record the backport state.
type Publisher struct {
	clt     GithubClient
	retryer *Retryer
	botUser string
	logger  *zap.Logger
}

func NewPublisher(clt GithubClient, retryer *Retryer, botUser string) *Publisher {
	return &Publisher{
		clt:     clt,
		retryer: retryer,
		botUser: botUser,
		logger:  zap.L().Named("publisher"),
	}
}

// Publish creates the pull request for a backport run, from the work branch
// on the bot fork into the target base branch.
//
// The original author is assigned, the most severe priority label of the
// parent is propagated and conflicted runs are opened as draft with a
// "conflicts" label and an explanatory comment.
// On success the backport label on the parent is replaced with its -done
// variant and the -done label is added to the new pull request.
//
// If a pull request for the branch pair already exists the backport is
// already published, (nil, nil) is returned and nothing is changed.
// Label and comment failures do not fail the publish, they are retried and
// logged.
func (p *Publisher) Publish(ctx context.Context, owner, repo string, parent *githubclt.PullRequest, run *BackportRun) (*githubclt.PullRequest, error) {
	target := run.Target

	logger := p.logger.With(
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.PullRequest(parent.Number),
		logfields.TargetVersion(target.Version.String()),
	)

	title := fmt.Sprintf("[Backport %s] %s", target.Version, parent.Title)
	head := p.botUser + ":" + target.WorkBranch

	backportPR, err := p.clt.CreatePullRequest(
		ctx,
		owner, repo,
		title, p.describeProvenance(parent, run),
		head, target.BaseBranch,
		run.Conflicted,
	)
	if err != nil {
		if errors.Is(err, githubclt.ErrPullRequestExists) {
			logger.Warn("backport pull request already exists",
				logfields.Event("backport_pr_exists"),
				logfields.Branch(target.WorkBranch),
			)

			return nil, nil
		}

		return nil, fmt.Errorf("creating backport pull request failed: %w", err)
	}

	run.PR = backportPR
	logger = logger.With(zap.Int("github.backport_pull_request", backportPR.Number))
	logger.Info("backport pull request created", logfields.Event("backport_pr_created"))

	if err := p.clt.AddAssignee(ctx, owner, repo, backportPR.Number, parent.Author); err != nil {
		logger.Warn("assigning original author failed",
			logfields.Event("backport_pr_assign_failed"),
			zap.Error(err),
		)
	}

	labels := propagatedLabels(parent)

	if run.Conflicted {
		labels = append(labels, conflictsLabel)

		comment := fmt.Sprintf(
			"@%s - This PR has conflicts, therefore it was moved to `draft`\n"+
				"Please resolve them and mark this PR as ready for review",
			parent.Author,
		)
		if err := p.clt.CreateIssueComment(ctx, owner, repo, backportPR.Number, comment); err != nil {
			logger.Warn("creating conflict comment failed",
				logfields.Event("backport_pr_comment_failed"),
				zap.Error(err),
			)
		}
	}

	if len(labels) > 0 {
		p.addLabelsLogged(ctx, owner, repo, backportPR.Number, labels, logger)
	}

	p.markDone(ctx, owner, repo, parent.Number, backportPR.Number, target, logger)

	return backportPR, nil
}

// describeProvenance synthesizes the pull request description: the parent
// description, one provenance line per replayed commit and a reference to the
// parent pull request.
func (p *Publisher) describeProvenance(parent *githubclt.PullRequest, run *BackportRun) string {
	var body strings.Builder

	body.WriteString(parent.Body)
	body.WriteString("\n\n")

	for _, sha := range run.Commits.SHAs() {
		fmt.Fprintf(&body, "- (cherry picked from commit %s)\n\n", sha)
	}

	fmt.Fprintf(&body, "Parent PR: #%d", parent.Number)

	return body.String()
}

// propagatedLabels returns the labels to copy from the parent pull request.
// At most one priority label is propagated, the most severe one, together
// with the cloud routing label.
func propagatedLabels(parent *githubclt.PullRequest) []string {
	for _, priority := range priorityLabels {
		for _, label := range parent.Labels {
			if label == priority {
				return []string{priority, cloudRoutingLabel}
			}
		}
	}

	return nil
}

// markDone replaces the backport label on the parent with its -done variant
// and adds the -done label to the backport pull request.
func (p *Publisher) markDone(ctx context.Context, owner, repo string, parentNr, backportNr int, target *Target, logger *zap.Logger) {
	err := p.retryer.Run(ctx, func(ctx context.Context) error {
		return p.clt.RemoveLabel(ctx, owner, repo, parentNr, target.Label)
	}, []zap.Field{logfields.Label(target.Label)})
	if err != nil {
		logger.Error("removing backport label from parent failed",
			logfields.Event("backport_label_update_failed"),
			logfields.Label(target.Label),
			zap.Error(err),
		)
	}

	p.addLabelsLogged(ctx, owner, repo, parentNr, []string{target.DoneLabel()}, logger)
	p.addLabelsLogged(ctx, owner, repo, backportNr, []string{target.DoneLabel()}, logger)
}

func (p *Publisher) addLabelsLogged(ctx context.Context, owner, repo string, number int, labels []string, logger *zap.Logger) {
	err := p.retryer.Run(ctx, func(ctx context.Context) error {
		return p.clt.AddLabels(ctx, owner, repo, number, labels)
	}, []zap.Field{logfields.PullRequest(number)})
	if err != nil {
		logger.Error("adding labels failed",
			logfields.Event("backport_label_update_failed"),
			zap.Strings("github.labels", labels),
			zap.Error(err),
		)
	}
}

// PublishMissingIssueLink records on the parent pull request that it can not
// be backported because it does not close an issue.
// All pending backport labels are removed and listed in an explanatory
// comment.
func (p *Publisher) PublishMissingIssueLink(ctx context.Context, owner, repo string, pr *githubclt.PullRequest) error {
	var removed []string

	for _, label := range pr.Labels {
		if !IsBackportLabel(label) {
			continue
		}

		if err := p.clt.RemoveLabel(ctx, owner, repo, pr.Number, label); err != nil {
			return fmt.Errorf("removing label %q failed: %w", label, err)
		}

		removed = append(removed, label)
	}

	var comment strings.Builder
	fmt.Fprintf(&comment,
		":warning: @%s PR body does not contain a valid reference to an issue based on "+
			"[linking-a-pull-request-to-an-issue](https://docs.github.com/en/issues/tracking-your-work-with-issues/using-issues/linking-a-pull-request-to-an-issue#linking-a-pull-request-to-an-issue-using-a-keyword) "+
			"and can not be backported\n\n",
		pr.Author,
	)
	comment.WriteString("The following labels were removed:\n")
	for _, label := range removed {
		fmt.Fprintf(&comment, "- %s\n", label)
	}
	comment.WriteString("\nPlease add the relevant backport labels after PR body is fixed")

	if err := p.clt.CreateIssueComment(ctx, owner, repo, pr.Number, comment.String()); err != nil {
		return fmt.Errorf("creating comment failed: %w", err)
	}

	return nil
}
