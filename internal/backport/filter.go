package backport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/simplesurance/backporter/internal/githubclt"
)

// PRFilter evaluates a jq query against the JSON representation of a pull
// request to decide if it should be backported.
type PRFilter struct {
	query    *gojq.Query
	queryStr string
}

func NewPRFilter(query string) (*PRFilter, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("parsing filter query %q failed: %w", query, err)
	}

	return &PRFilter{
		query:    parsed,
		queryStr: query,
	}, nil
}

// Match returns true if the query evaluates to true for the pull request.
// The query must return exactly one boolean result.
func (f *PRFilter) Match(ctx context.Context, pr *githubclt.PullRequest) (bool, error) {
	data, err := json.Marshal(pr)
	if err != nil {
		return false, fmt.Errorf("marshalling pull request to json failed: %w", err)
	}

	var prUn any
	if err := json.Unmarshal(data, &prUn); err != nil {
		return false, fmt.Errorf("unmarshalling pull request json failed: %w", err)
	}

	var results []any
	iter := f.query.RunWithContext(ctx, prUn)
	for {
		res, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := res.(error); isErr {
			return false, fmt.Errorf("filter query %q failed: %w", f.queryStr, err)
		}

		results = append(results, res)
	}

	if len(results) != 1 {
		return false, fmt.Errorf("filter query %q returned %d results, expected exactly 1", f.queryStr, len(results))
	}

	matched, isBool := results[0].(bool)
	if !isBool {
		return false, fmt.Errorf("filter query %q returned non-bool result: %+v (%T)", f.queryStr, results[0], results[0])
	}

	return matched, nil
}

func (f *PRFilter) String() string {
	return f.queryStr
}
