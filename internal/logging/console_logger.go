package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/vvka-141/qload/pkg/qload"
)

// ConsoleLogger writes log messages to a writer, normally stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	runID   string
	out     io.Writer
	mu      sync.Mutex
}

// NewWriterLogger creates a ConsoleLogger writing to w.
// If verbose is false, Verbose() calls are no-ops.
func NewWriterLogger(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		out:     w,
	}
}

// WithRunID returns a logger that tags verbose lines with the run id.
func (l *ConsoleLogger) WithRunID(runID string) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: l.verbose,
		runID:   runID,
		out:     l.out,
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	prefix := "[VERBOSE] "
	if l.runID != "" {
		prefix = "[VERBOSE " + l.runID + "] "
	}
	l.write(prefix, format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] ", format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}

var _ qload.Logger = (*ConsoleLogger)(nil)
