package loader

import (
	"context"
	"errors"
	"sync"
)

type fakeSource struct {
	values []string
	err    error

	// streamErrAfter makes StreamColumn fail once this many values were delivered.
	streamErrAfter int
	streamErr      error

	fetchCalls  int
	streamCalls int
}

func (s *fakeSource) FetchColumn(ctx context.Context, sql string) ([]string, error) {
	s.fetchCalls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out, nil
}

func (s *fakeSource) StreamColumn(ctx context.Context, sql string, fn func(string) error) error {
	s.streamCalls++
	if s.err != nil {
		return s.err
	}
	for i, v := range s.values {
		if s.streamErr != nil && i == s.streamErrAfter {
			return s.streamErr
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

type fakeWriter struct {
	mu     sync.Mutex
	pushes [][]string
	queues []string

	// failOn is the 1-based push that fails; 0 never fails.
	failOn int
}

var errPushBoom = errors.New("connection reset by peer")

func (w *fakeWriter) PushBatch(ctx context.Context, queue string, items []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failOn > 0 && len(w.pushes)+1 == w.failOn {
		return errPushBoom
	}
	batch := make([]string, len(items))
	copy(batch, items)
	w.pushes = append(w.pushes, batch)
	w.queues = append(w.queues, queue)
	return nil
}

type report struct {
	processed, total int
}

type fakeReporter struct {
	reports []report
}

func (r *fakeReporter) Report(processed, total int) {
	r.reports = append(r.reports, report{processed, total})
}
