package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/qload/pkg/qload"
)

// mockOperation fails with err until the failUntil-th invocation.
type mockOperation struct {
	invocations int
	failUntil   int
	err         error
}

func (m *mockOperation) execute(_ context.Context) error {
	m.invocations++
	if m.invocations < m.failUntil {
		if m.err != nil {
			return m.err
		}
		return &pgconn.PgError{Code: "08006", Message: "connection failure"}
	}
	return nil
}

func fastBackoff(attempts int) *ExponentialBackoff {
	return NewExponentialBackoff(attempts,
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(5*time.Millisecond),
		WithJitter(0),
	)
}

func TestExecutor_SuccessOnFirstAttempt(t *testing.T) {
	executor := NewExecutor(NewPostgreSQLErrorClassifier(), fastBackoff(3))
	op := &mockOperation{failUntil: 1}

	if err := executor.Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_SuccessAfterRetries(t *testing.T) {
	executor := NewExecutor(NewPostgreSQLErrorClassifier(), fastBackoff(5))
	op := &mockOperation{failUntil: 4}

	if err := executor.Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("Expected success after retries, got error: %v", err)
	}
	if op.invocations != 4 {
		t.Errorf("Expected 4 invocations, got %d", op.invocations)
	}
}

func TestExecutor_FatalErrorNoRetry(t *testing.T) {
	executor := NewExecutor(NewPostgreSQLErrorClassifier(), fastBackoff(5))
	op := &mockOperation{failUntil: 99, err: &pgconn.PgError{Code: "42601", Message: "syntax error"}}

	err := executor.Execute(context.Background(), op.execute)

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "42601" {
		t.Fatalf("Expected PgError with code 42601, got %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_ExhaustedRetries(t *testing.T) {
	executor := NewExecutor(NewPostgreSQLErrorClassifier(), fastBackoff(3))
	op := &mockOperation{failUntil: 999}

	if err := executor.Execute(context.Background(), op.execute); err == nil {
		t.Fatal("Expected error after exhausted retries, got nil")
	}
	// initial attempt + 3 retries
	if op.invocations != 4 {
		t.Errorf("Expected 4 invocations, got %d", op.invocations)
	}
}

func TestExecutor_OnRetryCallback(t *testing.T) {
	base := NewExecutor(NewPostgreSQLErrorClassifier(), fastBackoff(5))

	var attempts []int
	executor := base.WithOnRetry(func(attempt int, _ error, _ time.Duration) {
		attempts = append(attempts, attempt)
	})

	op := &mockOperation{failUntil: 3}
	if err := executor.Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(attempts) != 2 || attempts[0] != 0 || attempts[1] != 1 {
		t.Errorf("unexpected retry attempts %v", attempts)
	}
	if base.onRetry != nil {
		t.Error("WithOnRetry must not modify the original executor")
	}
}

func TestExecutor_ContextCancelled(t *testing.T) {
	strategy := NewExponentialBackoff(-1, WithInitialDelay(time.Hour), WithJitter(0))
	executor := NewExecutor(NewPostgreSQLErrorClassifier(), strategy)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	op := &mockOperation{failUntil: 999}
	err := executor.Execute(ctx, op.execute)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded, got %v", err)
	}
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil classifier")
		}
	}()
	NewExecutor(nil, fastBackoff(1))
}

func TestNewConnectExecutor(t *testing.T) {
	executor := NewConnectExecutor(NewRedisErrorClassifier())
	if executor.strategy.MaxAttempts() != 3 {
		t.Errorf("Expected 3 attempts, got %d", executor.strategy.MaxAttempts())
	}

	b, ok := executor.strategy.(*ExponentialBackoff)
	if !ok {
		t.Fatalf("Expected *ExponentialBackoff, got %T", executor.strategy)
	}
	if b.initialDelay != qload.DefaultRetryInitialDelay || b.maxDelay != qload.DefaultRetryMaxDelay {
		t.Errorf("Unexpected delays %v/%v", b.initialDelay, b.maxDelay)
	}
	if b.multiplier != qload.DefaultRetryMultiplier {
		t.Errorf("Expected multiplier %v, got %v", qload.DefaultRetryMultiplier, b.multiplier)
	}
}
