package githubclt

import (
	"context"

	"github.com/shurcooL/githubv4"
)

// HasLinkedIssue returns true if the pull request is linked to at least one
// issue that it closes.
//
// The linkage is retrieved via the GraphQL [closing issues references]
// connection, which covers both closing keywords in the pull request
// description and manually linked issues.
//
// [closing issues references]: https://docs.github.com/en/issues/tracking-your-work-with-issues/using-issues/linking-a-pull-request-to-an-issue
func (clt *Client) HasLinkedIssue(ctx context.Context, owner, repo string, prNumber int) (bool, error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				ClosingIssuesReferences struct {
					TotalCount githubv4.Int
				} `graphql:"closingIssuesReferences(first: 1)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	vars := map[string]any{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(prNumber),
	}

	err := clt.graphQLClt.Query(ctx, &q, vars)
	if err != nil {
		return false, clt.wrapGraphQLRetryableErrors(err)
	}

	return q.Repository.PullRequest.ClosingIssuesReferences.TotalCount > 0, nil
}
