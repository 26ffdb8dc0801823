package qload_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vvka-141/qload/pkg/qload"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, qload.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), qload.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), qload.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--batch-size\""), qload.ExitUsageError},
		{"general error", errors.New("something went wrong"), qload.ExitGeneralError},
		{"invalid config", fmt.Errorf("batch size: %w", qload.ErrInvalidConfig), qload.ExitConfigError},
		{"unsupported auth", fmt.Errorf("x: %w", qload.ErrUnsupportedAuthMethod), qload.ExitConfigError},
		{"connection failed", qload.ErrConnectionFailed, qload.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), qload.ExitConnectionError},
		{"query failed", fmt.Errorf("run: %w", qload.ErrQueryFailed), qload.ExitQueryFailed},
		{"push failed", fmt.Errorf("batch 3: %w", qload.ErrPushFailed), qload.ExitPushFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qload.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestTruncateSQL(t *testing.T) {
	if got := qload.TruncateSQL("SELECT apk\n  FROM android"); got != "SELECT apk FROM android" {
		t.Errorf("whitespace not collapsed: %q", got)
	}

	long := "SELECT " + strings.Repeat("x", qload.MaxErrorPreviewLength)
	got := qload.TruncateSQL(long)
	if len(got) != qload.MaxErrorPreviewLength+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("long SQL not truncated: len=%d", len(got))
	}
}
