package batch

import "fmt"

// Count returns the number of chunks Partition produces for n values.
func Count(n, size int) int {
	if size <= 0 {
		panic(fmt.Sprintf("batch: size must be positive, got %d", size))
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Partition splits items into consecutive chunks of at most size values.
// The chunks share the backing array of items. Returns nil for empty input.
// Panics if size is not positive.
func Partition[T any](items []T, size int) [][]T {
	count := Count(len(items), size)
	if count == 0 {
		return nil
	}

	chunks := make([][]T, 0, count)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}

// Accumulator collects values one at a time and hands back a chunk every
// time size values have been collected.
//
// Not safe for concurrent use.
type Accumulator[T any] struct {
	size int
	buf  []T
}

// NewAccumulator creates an Accumulator producing chunks of size values.
// Panics if size is not positive.
func NewAccumulator[T any](size int) *Accumulator[T] {
	if size <= 0 {
		panic(fmt.Sprintf("batch: size must be positive, got %d", size))
	}
	return &Accumulator[T]{
		size: size,
		buf:  make([]T, 0, size),
	}
}

// Add appends v. When the pending chunk reaches size values it is returned
// with ok set, and the accumulator starts a fresh chunk.
func (a *Accumulator[T]) Add(v T) (full []T, ok bool) {
	a.buf = append(a.buf, v)
	if len(a.buf) < a.size {
		return nil, false
	}
	full = a.buf
	a.buf = make([]T, 0, a.size)
	return full, true
}

// Flush returns the pending partial chunk, or nil when nothing is pending.
func (a *Accumulator[T]) Flush() []T {
	if len(a.buf) == 0 {
		return nil
	}
	rest := a.buf
	a.buf = make([]T, 0, a.size)
	return rest
}

// Pending reports how many values are waiting for the next chunk.
func (a *Accumulator[T]) Pending() int {
	return len(a.buf)
}
