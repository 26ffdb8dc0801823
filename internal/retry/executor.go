package retry

import (
	"context"
	"time"

	"github.com/vvka-141/qload/pkg/qload"
)

// Executor runs an operation, retrying transient failures according to a
// backoff strategy.
//
// Execute is safe for concurrent use. WithOnRetry returns a copy, so the
// receiver is never mutated.
type Executor struct {
	classifier qload.ErrorClassifier
	strategy   qload.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier qload.ErrorClassifier, strategy qload.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// WithOnRetry returns a new Executor that calls callback before each retry.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation until it succeeds, fails with a non-transient
// error, the retry budget is spent, or ctx is done.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	lastErr := operation(ctx)
	if lastErr == nil || !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	maxAttempts := e.strategy.MaxAttempts()
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		lastErr = operation(ctx)
		if lastErr == nil || !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

// NewConnectExecutor returns the executor used for connection setup, built
// from the qload retry defaults.
func NewConnectExecutor(classifier qload.ErrorClassifier) *Executor {
	strategy := NewExponentialBackoff(qload.DefaultRetryMaxAttempts,
		WithInitialDelay(qload.DefaultRetryInitialDelay),
		WithMaxDelay(qload.DefaultRetryMaxDelay),
		WithMultiplier(qload.DefaultRetryMultiplier),
	)
	return NewExecutor(classifier, strategy)
}
