// Package gitclt runs local git operations by executing the git binary.
package gitclt

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/backporter/internal/logfields"
)

const loggerName = "git_client"

// ErrBranchNotFound is returned by Clone when the requested branch does not
// exist in the remote repository.
var ErrBranchNotFound = errors.New("remote branch not found")

// Client runs git commands in a local repository clone.
type Client struct {
	workDir string
	logger  *zap.Logger
}

// Clone clones the repository at url into dir, checked out at branch, and
// returns a client operating on the clone.
// If the branch does not exist in the remote repository, an error wrapping
// ErrBranchNotFound is returned.
func Clone(ctx context.Context, url, dir, branch string) (*Client, error) {
	cmd := exec.CommandContext(ctx, "git", "clone", "--branch", branch, "--", url, dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if strings.Contains(string(output), "not found in upstream") ||
			strings.Contains(string(output), "Could not find remote branch") {
			return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, branch)
		}

		return nil, fmt.Errorf("git clone of branch %s failed: %w", branch, err)
	}

	logger := zap.L().Named(loggerName)
	logger.Debug("repository cloned",
		logfields.Event("git_repository_cloned"),
		logfields.Branch(branch),
		zap.String("git.work_dir", dir),
	)

	return &Client{
		workDir: dir,
		logger:  logger,
	}, nil
}

// WorkDir returns the directory of the local clone.
func (c *Client) WorkDir() string {
	return c.workDir
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.workDir
	return cmd.CombinedOutput()
}

// SetCommitter configures the committer identity for the clone.
// Replayed commits keep their original author, the committer is the
// configured identity.
func (c *Client) SetCommitter(ctx context.Context, name, email string) error {
	if output, err := c.run(ctx, "config", "user.name", name); err != nil {
		return fmt.Errorf("configuring committer name failed: %w, output: %s", err, output)
	}

	if output, err := c.run(ctx, "config", "user.email", email); err != nil {
		return fmt.Errorf("configuring committer email failed: %w, output: %s", err, output)
	}

	return nil
}

// CreateAndCheckoutBranch creates a new branch at the current HEAD and checks
// it out.
func (c *Client) CreateAndCheckoutBranch(ctx context.Context, name string) error {
	if output, err := c.run(ctx, "checkout", "-b", name); err != nil {
		return fmt.Errorf("creating branch %s failed: %w, output: %s", name, err, output)
	}

	c.logger.Debug("branch created",
		logfields.Event("git_branch_created"),
		logfields.Branch(name),
	)

	return nil
}

// CherryPick replays a commit onto the current branch.
// A provenance trailer referencing the original commit is recorded and the
// first parent is used as mainline when the commit is a merge commit.
// On failure the working tree is left as git produced it, including conflict
// markers, so that the caller can stage it and continue.
func (c *Client) CherryPick(ctx context.Context, commit string) error {
	output, err := c.run(ctx, "cherry-pick", "-m1", "-x", commit)
	if err != nil {
		return fmt.Errorf("cherry-pick of %s failed: %w, output: %s", commit, err, output)
	}

	c.logger.Debug("commit cherry-picked",
		logfields.Event("git_commit_cherry_picked"),
		logfields.Commit(commit),
	)

	return nil
}

// StageAll stages all working tree changes, including unmerged paths.
func (c *Client) StageAll(ctx context.Context) error {
	if output, err := c.run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("staging working tree failed: %w, output: %s", err, output)
	}

	return nil
}

// CherryPickContinue completes an interrupted cherry-pick with the currently
// staged changes, keeping the prepared commit message.
func (c *Client) CherryPickContinue(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "-c", "core.editor=true", "cherry-pick", "--continue")
	cmd.Dir = c.workDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("continuing cherry-pick failed: %w, output: %s", err, output)
	}

	return nil
}

// PushForce pushes branch to the repository at remoteURL, overwriting an
// existing branch of the same name.
// The remote url is not included in error messages, it can contain
// credentials.
func (c *Client) PushForce(ctx context.Context, remoteURL, branch string) error {
	output, err := c.run(ctx, "push", "--force", "--", remoteURL, branch)
	if err != nil {
		return fmt.Errorf("force-pushing branch %s failed: %w, output: %s",
			branch, err, redactURLCredentials(string(output), remoteURL))
	}

	c.logger.Debug("branch pushed",
		logfields.Event("git_branch_pushed"),
		logfields.Branch(branch),
	)

	return nil
}

func redactURLCredentials(output, remoteURL string) string {
	return strings.ReplaceAll(output, remoteURL, "<remote>")
}
