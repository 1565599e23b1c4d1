package githubclt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v59/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/backporter/internal/bperr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	restClt, err := github.NewClient(srv.Client()).WithEnterpriseURLs(srv.URL, srv.URL)
	require.NoError(t, err)

	return &Client{
		logger:     zap.L(),
		restClt:    restClt,
		graphQLClt: githubv4.NewEnterpriseClient(srv.URL, srv.Client()),
	}
}

func TestWrapRetryableErrorsGraphql(t *testing.T) {
	// same error string than in github.com/shurcooL/graphql do()
	clt := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	linked, err := clt.HasLinkedIssue(context.Background(), "test", "test", 123)
	require.Error(t, err)
	assert.False(t, linked)

	var retryableErr *bperr.RetryableError
	assert.ErrorAs(t, err, &retryableErr)
}

func TestWrapRetryableErrorsGraphqlWithNonStatusErr(t *testing.T) {
	err := errors.New("error")
	wrappedErr := (&Client{}).wrapGraphQLRetryableErrors(err)
	assert.Equal(t, err, wrappedErr)
}

func TestWrapRetryableErrorsServerError(t *testing.T) {
	clt := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := clt.PR(context.Background(), "test", "test", 123)
	require.Error(t, err)

	var retryableErr *bperr.RetryableError
	assert.ErrorAs(t, err, &retryableErr)
}

func TestCreatePullRequestDuplicateIsStructuredError(t *testing.T) {
	clt := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"message": "Validation Failed",
			"errors": [{
				"resource": "PullRequest",
				"code": "custom",
				"message": "A pull request already exists for bot:backport/42/to-5.4."
			}]
		}`))
	})

	pr, err := clt.CreatePullRequest(
		context.Background(),
		"test", "test",
		"[Backport 5.4] fix crash", "body",
		"bot:backport/42/to-5.4", "next-5.4",
		false,
	)
	require.Error(t, err)
	assert.Nil(t, pr)
	assert.ErrorIs(t, err, ErrPullRequestExists)
}

func TestCommitTitle(t *testing.T) {
	commit := Commit{Message: "fix: crash on empty input\n\nlonger description"}
	assert.Equal(t, "fix: crash on empty input", commit.Title())

	oneline := Commit{Message: "single line"}
	assert.Equal(t, "single line", oneline.Title())
}
