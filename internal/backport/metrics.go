package backport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"

	"github.com/simplesurance/backporter/internal/logfields"
)

const metricNamespace = "backporter"

const (
	processedPRsMetricName   = "processed_pull_requests_total"
	createdBackportsName     = "created_backport_pull_requests_total"
	failedTargetsMetricName  = "failed_backport_targets_total"
	skippedTargetsMetricName = "skipped_backport_targets_total"
)

const (
	stateLabel  = "state"
	reasonLabel = "reason"
)

const (
	stateLabelCleanVal      = "clean"
	stateLabelConflictedVal = "conflicted"
)

type metricCollector struct {
	processedPRs     prometheus.Counter
	createdBackports *prometheus.CounterVec
	failedTargets    *prometheus.CounterVec
	skippedTargets   prometheus.Counter
}

var metrics = newMetricCollector()

func newMetricCollector() *metricCollector {
	return &metricCollector{
		processedPRs: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      processedPRsMetricName,
				Help:      "count of pull requests that were evaluated for backporting",
			},
		),
		createdBackports: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      createdBackportsName,
				Help:      "count of created backport pull requests",
			},
			[]string{stateLabel},
		),
		failedTargets: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      failedTargetsMetricName,
				Help:      "count of backport targets that failed",
			},
			[]string{reasonLabel},
		),
		skippedTargets: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      skippedTargetsMetricName,
				Help:      "count of backport targets skipped because a newer target failed",
			},
		),
	}
}

func (m *metricCollector) BackportCreated(conflicted bool) {
	state := stateLabelCleanVal
	if conflicted {
		state = stateLabelConflictedVal
	}

	m.createdBackports.WithLabelValues(state).Inc()
}

func (m *metricCollector) TargetFailed(reason string) {
	m.failedTargets.WithLabelValues(reason).Inc()
}

// PushMetrics pushes all collected metrics to a prometheus pushgateway.
// The backporter is a batch job, there is no process that could be scraped
// after the run finished.
func PushMetrics(pushgatewayURL string) {
	if pushgatewayURL == "" {
		return
	}

	err := push.New(pushgatewayURL, "backporter").
		Gatherer(prometheus.DefaultGatherer).
		Push()
	if err != nil {
		zap.L().Named("metrics").Warn("pushing metrics to pushgateway failed",
			logfields.Event("metrics_push_failed"),
			zap.Error(err),
		)
	}
}
