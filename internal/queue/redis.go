package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vvka-141/qload/internal/retry"
	"github.com/vvka-141/qload/pkg/qload"
)

// RedisQueue pushes batches onto Redis lists.
type RedisQueue struct {
	client redis.UniversalClient
}

// NewRedisQueue wraps an existing client.
func NewRedisQueue(client redis.UniversalClient) *RedisQueue {
	return &RedisQueue{client: client}
}

// Connect opens a client for cfg and checks it with PING, retrying
// transient failures.
func Connect(ctx context.Context, cfg RedisConfig) (*RedisQueue, error) {
	return connect(ctx, cfg, retry.NewConnectExecutor(retry.NewRedisErrorClassifier()))
}

func connect(ctx context.Context, cfg RedisConfig, executor *retry.Executor) (*RedisQueue, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	err = executor.Execute(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis at %s: %w: %w", opts.Addr, qload.ErrConnectionFailed, err)
	}

	return &RedisQueue{client: client}, nil
}

// PushBatch prepends items to queue with one LPUSH, keeping their relative
// order at the head of the list. An empty batch is a no-op.
func (q *RedisQueue) PushBatch(ctx context.Context, queue string, items []string) error {
	if len(items) == 0 {
		return nil
	}

	// LPUSH inserts each argument at the head in turn, so the last argument
	// ends up first
	args := make([]interface{}, len(items))
	for i, item := range items {
		args[len(items)-1-i] = item
	}

	if err := q.client.LPush(ctx, queue, args...).Err(); err != nil {
		return fmt.Errorf("LPUSH %s (%d items): %w", queue, len(items), err)
	}
	return nil
}

// Len returns the current length of queue.
func (q *RedisQueue) Len(ctx context.Context, queue string) (int64, error) {
	return q.client.LLen(ctx, queue).Result()
}

// Close releases the client.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

var _ qload.QueueWriter = (*RedisQueue)(nil)
