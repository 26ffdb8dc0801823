package loader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/qload/internal/batch"
	"github.com/vvka-141/qload/pkg/qload"
)

// unknownTotal is reported while streaming, where the row count is only
// known once the query is exhausted.
const unknownTotal = -1

// Option configures a Loader.
type Option func(*Loader)

// WithBatchSize sets the maximum number of values per push.
func WithBatchSize(n int) Option {
	return func(l *Loader) { l.batchSize = n }
}

// WithStream batches rows as they are read instead of loading the whole
// result first.
func WithStream(enabled bool) Option {
	return func(l *Loader) { l.stream = enabled }
}

// WithDryRun runs the query and reports batches without pushing them.
func WithDryRun(enabled bool) Option {
	return func(l *Loader) { l.dryRun = enabled }
}

// WithRunID sets the identifier returned in LoadResult. A random UUID is
// used when unset.
func WithRunID(id string) Option {
	return func(l *Loader) { l.runID = id }
}

// Loader implements a single query-to-queue transfer.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type Loader struct {
	source   qload.RowSource
	writer   qload.QueueWriter
	reporter qload.ProgressReporter
	logger   qload.Logger

	batchSize int
	stream    bool
	dryRun    bool
	runID     string
}

// New creates a Loader. writer may be nil only in dry-run mode.
// Panics on missing dependencies.
func New(source qload.RowSource, writer qload.QueueWriter, reporter qload.ProgressReporter, logger qload.Logger, opts ...Option) *Loader {
	l := &Loader{
		source:    source,
		writer:    writer,
		reporter:  reporter,
		logger:    logger,
		batchSize: qload.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(l)
	}

	if source == nil {
		panic("source cannot be nil")
	}
	if writer == nil && !l.dryRun {
		panic("writer cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if l.runID == "" {
		l.runID = uuid.NewString()
	}
	return l
}

// RunID returns the identifier of this loader's run.
func (l *Loader) RunID() string {
	return l.runID
}

// Run executes sql and pushes its values onto queueName in batches.
//
// The returned result is populated even on failure, so callers can tell
// how many rows reached the queue before the error.
func (l *Loader) Run(ctx context.Context, queueName, sql string) (qload.LoadResult, error) {
	start := time.Now()
	result := qload.LoadResult{RunID: l.runID}

	if err := l.validate(queueName, sql); err != nil {
		return result, err
	}

	l.logger.Verbose("Run %s: batch size %d, stream=%t, dry-run=%t", l.runID, l.batchSize, l.stream, l.dryRun)

	var err error
	if l.stream {
		err = l.runStreaming(ctx, queueName, sql, &result)
	} else {
		err = l.runEager(ctx, queueName, sql, &result)
	}
	result.Duration = time.Since(start)
	if err != nil {
		return result, err
	}

	l.logger.Verbose("Run %s: %d rows in %d batches to %q (%s)",
		l.runID, result.Rows, result.Batches, queueName, result.Duration.Round(time.Millisecond))
	return result, nil
}

func (l *Loader) validate(queueName, sql string) error {
	if strings.TrimSpace(queueName) == "" {
		return fmt.Errorf("queue name is required: %w", qload.ErrInvalidConfig)
	}
	if strings.TrimSpace(sql) == "" {
		return fmt.Errorf("sql is required: %w", qload.ErrInvalidConfig)
	}
	if l.batchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d: %w", l.batchSize, qload.ErrInvalidConfig)
	}
	return nil
}

func (l *Loader) runEager(ctx context.Context, queueName, sql string, result *qload.LoadResult) error {
	values, err := l.source.FetchColumn(ctx, sql)
	if err != nil {
		return err
	}

	total := len(values)
	l.logger.Verbose("Query returned %d rows, %d batches", total, batch.Count(total, l.batchSize))

	for _, chunk := range batch.Partition(values, l.batchSize) {
		if err := l.push(ctx, queueName, chunk, total, result); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) runStreaming(ctx context.Context, queueName, sql string, result *qload.LoadResult) error {
	acc := batch.NewAccumulator[string](l.batchSize)

	err := l.source.StreamColumn(ctx, sql, func(v string) error {
		if chunk, ok := acc.Add(v); ok {
			return l.push(ctx, queueName, chunk, unknownTotal, result)
		}
		return nil
	})
	if err != nil {
		if acc.Pending() > 0 {
			l.logger.Verbose("Discarding %d buffered rows", acc.Pending())
		}
		return err
	}

	if rest := acc.Flush(); len(rest) > 0 {
		return l.push(ctx, queueName, rest, unknownTotal, result)
	}
	return nil
}

func (l *Loader) push(ctx context.Context, queueName string, chunk []string, total int, result *qload.LoadResult) error {
	if !l.dryRun {
		if err := l.writer.PushBatch(ctx, queueName, chunk); err != nil {
			l.logger.Error("Push of batch %d failed; %d rows were already pushed to %q",
				result.Batches+1, result.Rows, queueName)
			return fmt.Errorf("batch %d (%d rows) to %q: %w: %w",
				result.Batches+1, len(chunk), queueName, qload.ErrPushFailed, err)
		}
	}

	result.Rows += len(chunk)
	result.Batches++
	l.reporter.Report(result.Rows, total)
	return nil
}
