package progress

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReporter_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := NewLineReporter(&buf, ModePlain)

	r.Report(3, 5)
	r.Report(5, 5)

	assert.Equal(t, "Commit: 3 / 5\nCommit: 5 / 5\n", buf.String())
}

func TestLineReporter_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	NewLineReporter(&buf, ModePlain).Report(10000, -1)

	assert.Equal(t, "Commit: 10000 / ?\n", buf.String())
}

func TestLineReporter_StyledIsOneLinePerReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewLineReporter(&buf, ModeStyled)

	r.Report(1, 4)
	r.Report(4, 4)
	r.Report(7, -1)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Commit:")
	assert.Contains(t, lines[2], "?")
}

func TestDetectMode_EnvOverrides(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "")
	t.Setenv("QLOAD_PLAIN", "1")
	assert.Equal(t, ModePlain, DetectMode(os.Stdout))

	t.Setenv("QLOAD_PLAIN", "")
	t.Setenv("CI", "true")
	assert.Equal(t, ModePlain, DetectMode(os.Stdout))

	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ModePlain, DetectMode(os.Stdout))
}

func TestDetectMode_NonTerminal(t *testing.T) {
	t.Setenv("QLOAD_PLAIN", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, ModePlain, DetectMode(f))
	assert.Equal(t, ModePlain, DetectMode(nil))
}
