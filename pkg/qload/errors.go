package qload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := loader.Run(ctx, "wdj:app:todo", "SELECT apk FROM android")
//	if errors.Is(err, qload.ErrPushFailed) {
//	    // some batches may already be on the queue
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates a database or queue connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrQueryFailed indicates the SQL query failed or did not return a single column.
	ErrQueryFailed = errors.New("query failed")

	// ErrPushFailed indicates a bulk push to the queue failed.
	ErrPushFailed = errors.New("queue push failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// usagePatterns are the messages cobra and pflag produce for command line misuse.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"invalid argument",
	"flag needs an argument",
	"required flag",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrQueryFailed):
		return ExitQueryFailed
	case errors.Is(err, ErrPushFailed):
		return ExitPushFailed
	}

	errStr := err.Error()
	for _, p := range usagePatterns {
		if strings.Contains(errStr, p) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

// TruncateSQL shortens sql for inclusion in error messages.
func TruncateSQL(sql string) string {
	sql = strings.Join(strings.Fields(sql), " ")
	if len(sql) <= MaxErrorPreviewLength {
		return sql
	}
	return sql[:MaxErrorPreviewLength] + "..."
}
