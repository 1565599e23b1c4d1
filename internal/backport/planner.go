package backport

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/simplesurance/backporter/internal/logfields"
)

// Planner turns the backport labels of a pull request into an ordered list of
// backport targets.
type Planner struct {
	logger *zap.Logger
}

func NewPlanner() *Planner {
	return &Planner{logger: zap.L().Named("planner")}
}

// Plan returns one target per backport label, ordered by destination version,
// newest version first.
// Newer versions must be processed first, the commits of each backport are
// chained into the next older one.
// Labels that are not backport labels are ignored, backport labels with an
// unparsable version are skipped and logged.
func (p *Planner) Plan(prNumber int, labels []string) []*Target {
	result := make([]*Target, 0, len(labels))

	for _, label := range labels {
		if !IsBackportLabel(label) {
			continue
		}

		target, err := NewTarget(prNumber, label)
		if err != nil {
			p.logger.Warn("skipping malformed backport label",
				logfields.Event("backport_label_malformed"),
				logfields.PullRequest(prNumber),
				logfields.Label(label),
				zap.Error(err),
			)

			continue
		}

		result = append(result, target)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Version.Compare(result[j].Version) > 0
	})

	return result
}

// PlanLabel returns the single target for an explicitly requested label,
// bypassing label scanning.
// Unlike Plan, a malformed label is an error, the label was specified by the
// caller and a typo must not be ignored silently.
func (p *Planner) PlanLabel(prNumber int, label string) (*Target, error) {
	if !IsBackportLabel(label) {
		return nil, fmt.Errorf("label %q is not a backport label, expected format: %s<major>.<minor>", label, LabelPrefix)
	}

	return NewTarget(prNumber, label)
}
