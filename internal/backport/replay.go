package backport

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/simplesurance/backporter/internal/gitclt"
	"github.com/simplesurance/backporter/internal/logfields"
)

// GitClient runs git operations in a local repository clone.
type GitClient interface {
	SetCommitter(ctx context.Context, name, email string) error
	CreateAndCheckoutBranch(ctx context.Context, name string) error
	CherryPick(ctx context.Context, commit string) error
	StageAll(ctx context.Context) error
	CherryPickContinue(ctx context.Context) error
	PushForce(ctx context.Context, remoteURL, branch string) error
}

// CloneFunc clones the repository at url into dir, checked out at branch.
type CloneFunc func(ctx context.Context, url, dir, branch string) (GitClient, error)

func defaultClone(ctx context.Context, url, dir, branch string) (GitClient, error) {
	return gitclt.Clone(ctx, url, dir, branch)
}

// ReplayEngine replays commit sets onto backport target branches.
//
// Per target it clones the repository into an ephemeral directory, creates
// the work branch on the target base branch, cherry-picks the commit set in
// order and force-pushes the result to the bot fork.
// A cherry-pick conflict does not abort the replay, the conflicted working
// tree is committed as-is and the run is marked as conflicted, resolution is
// left to a human on the resulting pull request.
type ReplayEngine struct {
	clone          CloneFunc
	repoCloneURL   string
	forkPushURL    string
	committerName  string
	committerEmail string
	logger         *zap.Logger
}

func NewReplayEngine(repoCloneURL, forkPushURL, committerName, committerEmail string) *ReplayEngine {
	return &ReplayEngine{
		clone:          defaultClone,
		repoCloneURL:   repoCloneURL,
		forkPushURL:    forkPushURL,
		committerName:  committerName,
		committerEmail: committerEmail,
		logger:         zap.L().Named("replay"),
	}
}

// Replay replays commits onto a fresh work branch for target and pushes it to
// the bot fork.
//
// The local clone is deleted on every return path.
// If the target base branch does not exist, the returned error wraps
// ErrBaseBranchMissing.
// Clone, branch creation and push failures abort the run, no branch is
// published then.
func (e *ReplayEngine) Replay(ctx context.Context, target *Target, commits *CommitSet) (*BackportRun, error) {
	logger := e.logger.With(
		logfields.TargetVersion(target.Version.String()),
		logfields.BaseBranch(target.BaseBranch),
		logfields.Branch(target.WorkBranch),
	)

	workDir, err := os.MkdirTemp("", "backporter-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary work directory failed: %w", err)
	}

	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			logger.Warn("removing temporary work directory failed",
				logfields.Event("workdir_removal_failed"),
				zap.String("git.work_dir", workDir),
				zap.Error(rmErr),
			)
		}
	}()

	clt, err := e.clone(ctx, e.repoCloneURL, workDir, target.BaseBranch)
	if err != nil {
		if errors.Is(err, gitclt.ErrBranchNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBaseBranchMissing, target.BaseBranch)
		}

		return nil, fmt.Errorf("cloning repository at branch %s failed: %w", target.BaseBranch, err)
	}

	if err := clt.SetCommitter(ctx, e.committerName, e.committerEmail); err != nil {
		return nil, err
	}

	if err := clt.CreateAndCheckoutBranch(ctx, target.WorkBranch); err != nil {
		return nil, err
	}

	run := BackportRun{
		Target:  target,
		Commits: commits,
	}

	for _, sha := range commits.SHAs() {
		err := clt.CherryPick(ctx, sha)
		if err == nil {
			continue
		}

		logger.Warn("cherry-pick conflict, committing conflicted tree",
			logfields.Event("cherry_pick_conflict"),
			logfields.Commit(sha),
			zap.Error(err),
		)

		run.Conflicted = true

		if err := clt.StageAll(ctx); err != nil {
			return nil, fmt.Errorf("staging conflicted tree of %s failed: %w", sha, err)
		}

		if err := clt.CherryPickContinue(ctx); err != nil {
			return nil, fmt.Errorf("committing conflicted tree of %s failed: %w", sha, err)
		}
	}

	if err := clt.PushForce(ctx, e.forkPushURL, target.WorkBranch); err != nil {
		return nil, err
	}

	logger.Info("commits replayed and pushed",
		logfields.Event("backport_branch_pushed"),
		zap.Int("backport.commit_count", commits.Len()),
		zap.Bool("backport.conflicted", run.Conflicted),
	)

	return &run, nil
}
