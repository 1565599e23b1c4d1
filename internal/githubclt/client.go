// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v59/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/backporter/internal/bperr"
	"github.com/simplesurance/backporter/internal/logfields"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

const listPerPage = 100

// ErrPullRequestExists is returned by CreatePullRequest when an open pull
// request for the same head and base branch pair already exists.
var ErrPullRequestExists = errors.New("pull request already exists")

// New returns a new github api client.
func New(oauthAPItoken string) *Client {
	httpClient := newHTTPClient(oauthAPItoken)
	return &Client{
		restClt:    github.NewClient(httpClient),
		graphQLClt: githubv4.NewClient(httpClient),
		logger:     zap.L().Named(loggerName),
	}
}

func newHTTPClient(apiToken string) *http.Client {
	if apiToken == "" {
		return &http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: apiToken},
	)

	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultHTTPClientTimeout

	return tc
}

// Client is an github API client.
// All methods return a bperr.RetryableError when an operation can be retried.
// This can be e.g. the case when the API ratelimit is exceeded.
type Client struct {
	restClt    *github.Client
	graphQLClt *githubv4.Client
	logger     *zap.Logger
}

// PullRequest is the subset of pull request information that the backporter
// consumes.
type PullRequest struct {
	Number         int      `json:"number"`
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	Author         string   `json:"author"`
	State          string   `json:"state"`
	Merged         bool     `json:"merged"`
	MergeCommitSHA string   `json:"merge_commit_sha"`
	Labels         []string `json:"labels"`
}

// Commit describes a single commit of a repository or pull request.
type Commit struct {
	SHA string
	// Message is the full commit message, the first line is the commit
	// title.
	Message string
	// ParentCount is the number of parent commits. It is only set by
	// methods that retrieve individual commits.
	ParentCount int
}

// Title returns the first line of the commit message.
func (c *Commit) Title() string {
	title, _, _ := strings.Cut(c.Message, "\n")
	return title
}

func toPullRequest(pr *github.PullRequest) *PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}

	return &PullRequest{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		Author:         pr.GetUser().GetLogin(),
		State:          pr.GetState(),
		Merged:         pr.GetMerged(),
		MergeCommitSHA: pr.GetMergeCommitSHA(),
		Labels:         labels,
	}
}

// PR retrieves a pull request by number.
func (clt *Client) PR(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	pr, _, err := clt.restClt.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, clt.wrapRetryableErrors(err)
	}

	return toPullRequest(pr), nil
}

// Commit retrieves a single commit, including its parent count.
func (clt *Client) Commit(ctx context.Context, owner, repo, sha string) (*Commit, error) {
	commit, _, err := clt.restClt.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, clt.wrapRetryableErrors(err)
	}

	return &Commit{
		SHA:         commit.GetSHA(),
		Message:     commit.GetCommit().GetMessage(),
		ParentCount: len(commit.Parents),
	}, nil
}

// CompareCommits returns the commits that head contains but base does not, in
// chronological order.
func (clt *Client) CompareCommits(ctx context.Context, owner, repo, base, head string) ([]*Commit, error) {
	var result []*Commit

	opts := github.ListOptions{PerPage: listPerPage}
	for {
		cmp, resp, err := clt.restClt.Repositories.CompareCommits(ctx, owner, repo, base, head, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, commit := range cmp.Commits {
			result = append(result, &Commit{
				SHA:     commit.GetSHA(),
				Message: commit.GetCommit().GetMessage(),
			})
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// ListCommits returns the commit history of ref, newest first.
func (clt *Client) ListCommits(ctx context.Context, owner, repo, ref string) ([]*Commit, error) {
	var result []*Commit

	opts := github.CommitsListOptions{
		SHA:         ref,
		ListOptions: github.ListOptions{PerPage: listPerPage},
	}
	for {
		commits, resp, err := clt.restClt.Repositories.ListCommits(ctx, owner, repo, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, commit := range commits {
			result = append(result, &Commit{
				SHA:     commit.GetSHA(),
				Message: commit.GetCommit().GetMessage(),
			})
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// PRCommits returns the commits belonging to a pull request, in their original
// order.
func (clt *Client) PRCommits(ctx context.Context, owner, repo string, number int) ([]*Commit, error) {
	var result []*Commit

	opts := github.ListOptions{PerPage: listPerPage}
	for {
		commits, resp, err := clt.restClt.PullRequests.ListCommits(ctx, owner, repo, number, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, commit := range commits {
			result = append(result, &Commit{
				SHA:         commit.GetSHA(),
				Message:     commit.GetCommit().GetMessage(),
				ParentCount: len(commit.Parents),
			})
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// PRsWithCommit returns the pull requests that are associated with the given
// commit.
func (clt *Client) PRsWithCommit(ctx context.Context, owner, repo, sha string) ([]*PullRequest, error) {
	prs, _, err := clt.restClt.PullRequests.ListPullRequestsWithCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, clt.wrapRetryableErrors(err)
	}

	result := make([]*PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, toPullRequest(pr))
	}

	return result, nil
}

// ClosedEventCommits returns the commit ids recorded on "closed" issue events
// of a pull request. These identify commits that closed the pull request
// without github merging it, e.g. patches applied externally.
func (clt *Client) ClosedEventCommits(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var result []string

	opts := github.ListOptions{PerPage: listPerPage}
	for {
		events, resp, err := clt.restClt.Issues.ListIssueEvents(ctx, owner, repo, number, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, event := range events {
			if event.GetEvent() != "closed" {
				continue
			}

			if commitID := event.GetCommitID(); commitID != "" {
				result = append(result, commitID)
			}
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// CreatePullRequest opens a new pull request from head into base.
// If an open pull request for the same branch pair already exists, an error
// wrapping ErrPullRequestExists is returned.
func (clt *Client) CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string, draft bool) (*PullRequest, error) {
	pr, _, err := clt.restClt.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: &title,
		Body:  &body,
		Head:  &head,
		Base:  &base,
		Draft: &draft,
	})
	if err != nil {
		var respErr *github.ErrorResponse
		if errors.As(err, &respErr) &&
			respErr.Response.StatusCode == http.StatusUnprocessableEntity &&
			isPullRequestExistsResponse(respErr) {
			// the API reports this condition only via the error
			// message, there is no structured error kind for it
			return nil, fmt.Errorf("%w: %s", ErrPullRequestExists, respErr.Message)
		}

		return nil, clt.wrapRetryableErrors(err)
	}

	return toPullRequest(pr), nil
}

func isPullRequestExistsResponse(respErr *github.ErrorResponse) bool {
	if strings.Contains(respErr.Message, "pull request already exists") {
		return true
	}

	for _, detail := range respErr.Errors {
		if strings.Contains(detail.Message, "pull request already exists") {
			return true
		}
	}

	return false
}

// AddAssignee assigns a user to a pull request or issue.
func (clt *Client) AddAssignee(ctx context.Context, owner, repo string, number int, user string) error {
	_, _, err := clt.restClt.Issues.AddAssignees(ctx, owner, repo, number, []string{user})
	return clt.wrapRetryableErrors(err)
}

// AddLabels adds labels to a pull request or issue.
func (clt *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if len(labels) == 0 {
		// by default github removes all labels when none is provided,
		// we do not need this functionality, as safe guard fail if
		// because of a bug an empty label list is passed:
		return errors.New("provided label list is empty")
	}
	_, _, err := clt.restClt.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	return clt.wrapRetryableErrors(err)
}

// RemoveLabel removes a label from a pull request or issue.
// If the issue or PR does not have the label, the operation succeeds.
func (clt *Client) RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error {
	_, err := clt.restClt.Issues.RemoveLabelForIssue(ctx, owner, repo, number, label)
	if err != nil {
		var respErr *github.ErrorResponse
		if errors.As(err, &respErr) && respErr.Response.StatusCode == http.StatusNotFound {
			clt.logger.Debug("removing label returned a not found response, interpreting it as success",
				logfields.RepositoryOwner(owner),
				logfields.Repository(repo),
				logfields.PullRequest(number),
				logfields.Label(label),
				logfields.Event("github_remove_label_returned_not_found"),
				zap.Error(err),
			)

			return nil
		}

		return clt.wrapRetryableErrors(err)
	}

	return nil
}

// CreateIssueComment creates a comment in a issue or pull request
func (clt *Client) CreateIssueComment(ctx context.Context, owner, repo string, issueOrPRNr int, comment string) error {
	_, _, err := clt.restClt.Issues.CreateComment(ctx, owner, repo, issueOrPRNr, &github.IssueComment{Body: &comment})
	return clt.wrapRetryableErrors(err)
}

func (clt *Client) wrapRetryableErrors(err error) error {
	switch v := err.(type) {
	case *github.RateLimitError:
		clt.logger.Info(
			"rate limit exceeded",
			logfields.Event("github_api_rate_limit_exceeded"),
			zap.Int("github_api_rate_limit", v.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", v.Rate.Reset.Time),
		)

		return bperr.NewRetryableError(err, v.Rate.Reset.Time)

	case *github.ErrorResponse:
		if v.Response.StatusCode >= 500 && v.Response.StatusCode < 600 {
			return bperr.NewRetryableAnytimeError(err)
		}
	}

	return err
}

var graphQlHTTPStatusErrRe = regexp.MustCompile(`^non-200 OK status code: ([0-9]+) .*`)

func (clt *Client) wrapGraphQLRetryableErrors(err error) error {
	matches := graphQlHTTPStatusErrRe.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return err
	}

	errcode, atoiErr := strconv.Atoi(matches[1])
	if atoiErr != nil {
		clt.logger.Info(
			"parsing http code from error string failed",
			zap.Error(atoiErr),
			zap.String("error_string", err.Error()),
			zap.String("http_errcode", matches[1]),
		)
		return err
	}

	if errcode >= 500 && errcode < 600 {
		return bperr.NewRetryableAnytimeError(err)
	}

	return err
}
