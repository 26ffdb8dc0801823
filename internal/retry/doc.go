// Package retry retries connection setup with exponential backoff.
//
// qload only retries while establishing connections (PostgreSQL pool
// creation, Redis PING). Queue pushes are never retried: a failed push
// aborts the run.
//
//	executor := retry.NewExecutor(retry.NewRedisErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return client.Ping(ctx).Err()
//	})
package retry
