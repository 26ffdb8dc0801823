// Package logging provides concrete implementations of the qload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes prefixed lines to stderr (or any io.Writer)
//   - NullLogger: discards all messages
//
// Progress lines are not log output; see package progress.
package logging
