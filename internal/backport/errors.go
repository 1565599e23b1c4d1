package backport

import "errors"

var (
	// ErrBaseBranchMissing is returned when the base branch of a backport
	// target does not exist in the repository, e.g. because the version
	// part of a backport label is wrong.
	ErrBaseBranchMissing = errors.New("backport base branch does not exist")

	// ErrNoIssueLinked is reported for pull requests that do not close an
	// issue and therefore must not be backported.
	ErrNoIssueLinked = errors.New("pull request is not linked to an issue")
)
