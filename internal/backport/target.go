package backport

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/simplesurance/backporter/internal/githubclt"
)

const (
	// LabelPrefix is the prefix of labels that request a backport, the
	// remainder of the label is the destination version.
	LabelPrefix = "backport/"
	// DoneLabelSuffix marks a backport label as processed.
	DoneLabelSuffix = "-done"
	// baseBranchPrefix is the naming convention for release integration
	// branches, version 5.4 is integrated via branch "next-5.4".
	baseBranchPrefix = "next-"
)

// backportLabelRe matches labels that request a backport, e.g. "backport/5.4".
var backportLabelRe = regexp.MustCompile(`^backport/\d+\.\d+$`)

// IsBackportLabel returns true if label requests a backport.
func IsBackportLabel(label string) bool {
	return backportLabelRe.MatchString(label)
}

// Target is one destination of a backport, derived from a backport label.
type Target struct {
	// Version is the destination release version, e.g. "5.4".
	Version Version
	// Label is the backport label the target was derived from.
	Label string
	// BaseBranch is the branch the backport pull request is opened
	// against.
	BaseBranch string
	// WorkBranch is the branch the replayed commits are pushed to. It
	// embeds the pull request number and version, reruns for the same
	// pull request and version produce the same branch name.
	WorkBranch string
}

// NewTarget derives a backport target from a backport label.
func NewTarget(prNumber int, label string) (*Target, error) {
	versionStr, found := strings.CutPrefix(label, LabelPrefix)
	if !found {
		return nil, fmt.Errorf("label %q does not start with %q", label, LabelPrefix)
	}

	version, err := ParseVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("label %q: %w", label, err)
	}

	return &Target{
		Version:    version,
		Label:      label,
		BaseBranch: baseBranchPrefix + versionStr,
		WorkBranch: fmt.Sprintf("backport/%d/to-%s", prNumber, versionStr),
	}, nil
}

// DoneLabel returns the label that marks this target as processed.
func (t *Target) DoneLabel() string {
	return t.Label + DoneLabelSuffix
}

func (t *Target) String() string {
	return fmt.Sprintf("backport to %s (branch %s)", t.Version, t.BaseBranch)
}

// BackportRun is the result of replaying a commit set for one target.
// It is created by the replay engine and consumed by the publisher, no state
// of it is persisted.
type BackportRun struct {
	Target *Target
	// Commits is the commit set that was replayed.
	Commits *CommitSet
	// Conflicted is true if at least one commit could not be replayed
	// cleanly. The pushed branch then contains conflict markers that a
	// human has to resolve.
	Conflicted bool
	// PR is the created backport pull request, it is set by the
	// publisher.
	PR *githubclt.PullRequest
}
