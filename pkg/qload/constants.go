package qload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Transfer completed (or nothing to do)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or profile
	ExitConnectionError = 11 // Failed to connect to PostgreSQL or Redis
	ExitQueryFailed     = 13 // SQL query failed or returned the wrong shape
	ExitPushFailed      = 15 // Queue push failed mid-transfer
)

const (
	// DefaultBatchSize is the maximum number of values sent in one bulk push.
	DefaultBatchSize = 10000

	// DefaultProfile is used when ENV is unset or names an unknown profile.
	DefaultProfile = "dev"

	// DefaultTimeout bounds the whole run. Zero disables the deadline.
	DefaultTimeout = time.Hour

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMultiplier grows the delay between connect attempts.
	DefaultRetryMultiplier = 2.0

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxErrorPreviewLength caps how much SQL text is echoed in error messages.
	MaxErrorPreviewLength = 200

	// AppName is reported to PostgreSQL as application_name.
	AppName = "qload"
)
