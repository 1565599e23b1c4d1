package backport

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/simplesurance/backporter/internal/bperr"
	"github.com/simplesurance/backporter/internal/logfields"
)

const defMaxRetryTimeout = 10 * time.Minute

// Retryer runs a function repeatedly until it succeeds, it fails with an
// error that is not a bperr.RetryableError, the retry timeout expired or the
// context was cancelled.
type Retryer struct {
	logger          *zap.Logger
	maxRetryTimeout time.Duration
}

func NewRetryer() *Retryer {
	return &Retryer{
		logger:          zap.L().Named("retryer"),
		maxRetryTimeout: defMaxRetryTimeout,
	}
}

func (r *Retryer) Run(ctx context.Context, fn func(context.Context) error, logF []zap.Field) error {
	var tryCnt uint

	endTime := time.Now().Add(r.maxRetryTimeout)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 5 * time.Second

	retryTimer := time.NewTimer(0)
	defer retryTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-retryTimer.C:
		}

		tryCnt++

		err := fn(ctx)
		if err == nil {
			return nil
		}

		logger := r.logger.With(logF...).With(
			zap.Uint("try_count", tryCnt),
			zap.Error(err),
		)

		if errors.Is(err, context.Canceled) {
			return err
		}

		var retryError *bperr.RetryableError
		if !errors.As(err, &retryError) {
			return err
		}

		var retryIn time.Duration
		if retryError.After.IsZero() {
			retryIn = bo.NextBackOff()
		} else {
			retryIn = time.Until(retryError.After)
		}

		if time.Now().Add(retryIn).After(endTime) {
			logger.Error(
				"operation failed, next retry would exceed the retry timeout",
				logfields.Event("retry_timeout_expired"),
				zap.Duration("retry_timeout", r.maxRetryTimeout),
			)

			return err
		}

		logger.Info(
			"operation failed, retry scheduled",
			logfields.Event("retry_scheduled"),
			zap.Duration("retry_in", retryIn),
		)

		retryTimer.Reset(retryIn)
	}
}
