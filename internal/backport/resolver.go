package backport

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/backporter/internal/githubclt"
	"github.com/simplesurance/backporter/internal/logfields"
)

// CommitMatcher decides if a candidate commit on the stable branch is the
// promoted counterpart of a pull request commit.
// It exists as an interface so that the identity scheme can be replaced, e.g.
// with change-id trailer matching, without touching the resolver.
type CommitMatcher interface {
	Match(prCommit, candidate *githubclt.Commit) bool
}

// TitlePrefixMatcher matches commits whose message starts with the title of
// the pull request commit.
// Title matching is needed because some repositories merge multi-commit pull
// requests without creating a merge commit. The individual promoted commits
// then have new ids that the pull request API does not know.
type TitlePrefixMatcher struct{}

func (TitlePrefixMatcher) Match(prCommit, candidate *githubclt.Commit) bool {
	return strings.HasPrefix(candidate.Message, prCommit.Title())
}

// Resolver determines the commits of a pull request that have to be replayed
// to backport it.
type Resolver struct {
	clt     GithubClient
	matcher CommitMatcher
	logger  *zap.Logger
}

func NewResolver(clt GithubClient, matcher CommitMatcher) *Resolver {
	if matcher == nil {
		matcher = TitlePrefixMatcher{}
	}

	return &Resolver{
		clt:     clt,
		matcher: matcher,
		logger:  zap.L().Named("resolver"),
	}
}

// Resolve returns the ordered commit set of a pull request.
//
// For a pull request that was merged with a merge commit, the merge commit is
// the only member, replaying it replays the whole change.
// For a linear merge the original commits are recovered by matching the pull
// request commits against the promoted commits on stableBranch, limited to
// the commits after startCommit when it is non-empty.
// For a pull request that was closed without merging, the commits recorded on
// its "closed" events are returned, they identify externally applied patches.
//
// An empty commit set means there is nothing to backport, it is not an error.
func (r *Resolver) Resolve(ctx context.Context, owner, repo string, pr *githubclt.PullRequest, stableBranch, startCommit string) (*CommitSet, error) {
	if !pr.Merged {
		if pr.State == "closed" {
			return r.resolveClosedUnmerged(ctx, owner, repo, pr)
		}

		return NewCommitSet(), nil
	}

	if pr.MergeCommitSHA == "" {
		return nil, fmt.Errorf("pull request #%d is merged but has no merge commit sha", pr.Number)
	}

	mergeCommit, err := r.clt.Commit(ctx, owner, repo, pr.MergeCommitSHA)
	if err != nil {
		return nil, fmt.Errorf("retrieving merge commit %s failed: %w", pr.MergeCommitSHA, err)
	}

	if mergeCommit.ParentCount > 1 {
		// a real merge commit, replaying it with the first parent as
		// mainline replays all commits of the pull request at once
		return NewCommitSet(mergeCommit.SHA), nil
	}

	return r.resolveLinearMerge(ctx, owner, repo, pr, stableBranch, startCommit)
}

func (r *Resolver) resolveLinearMerge(ctx context.Context, owner, repo string, pr *githubclt.PullRequest, stableBranch, startCommit string) (*CommitSet, error) {
	var candidates []*githubclt.Commit
	var err error

	if startCommit != "" {
		candidates, err = r.clt.CompareCommits(ctx, owner, repo, startCommit, stableBranch)
	} else {
		candidates, err = r.clt.ListCommits(ctx, owner, repo, stableBranch)
	}
	if err != nil {
		return nil, fmt.Errorf("listing promoted commits on %s failed: %w", stableBranch, err)
	}

	prCommits, err := r.clt.PRCommits(ctx, owner, repo, pr.Number)
	if err != nil {
		return nil, fmt.Errorf("listing commits of pull request #%d failed: %w", pr.Number, err)
	}

	result := NewCommitSet()
	for _, prCommit := range prCommits {
		for _, candidate := range candidates {
			if r.matcher.Match(prCommit, candidate) {
				result.Add(candidate.SHA)
			}
		}
	}

	return result, nil
}

func (r *Resolver) resolveClosedUnmerged(ctx context.Context, owner, repo string, pr *githubclt.PullRequest) (*CommitSet, error) {
	shas, err := r.clt.ClosedEventCommits(ctx, owner, repo, pr.Number)
	if err != nil {
		return nil, fmt.Errorf("listing closed events of pull request #%d failed: %w", pr.Number, err)
	}

	r.logger.Debug("resolved commits from closed events",
		logfields.PullRequest(pr.Number),
		zap.Strings("git.commits", shas),
	)

	return NewCommitSet(shas...), nil
}
