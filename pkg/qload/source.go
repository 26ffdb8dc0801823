package qload

import "context"

// RowSource produces the single-column result of a SQL query.
type RowSource interface {
	// FetchColumn runs sql and returns every value of its only column, in
	// result order. The whole result is read before returning.
	FetchColumn(ctx context.Context, sql string) ([]string, error)

	// StreamColumn runs sql and calls fn for each value as rows arrive.
	// Iteration stops at the first error returned by fn.
	StreamColumn(ctx context.Context, sql string, fn func(value string) error) error
}

// QueueWriter pushes batches onto a named queue.
type QueueWriter interface {
	// PushBatch prepends items to queue in one bulk operation. Relative
	// order of items is preserved at the head of the queue.
	PushBatch(ctx context.Context, queue string, items []string) error
}

// ProgressReporter receives one report per pushed batch.
// total is negative when the row count is not known up front.
type ProgressReporter interface {
	Report(processed, total int)
}
