package progress

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/qload/pkg/qload"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	totalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const barWidth = 30

// LineReporter writes one line per reported batch.
//
// In ModePlain the line is exactly "Commit: <processed> / <total>", with
// "?" for an unknown total. ModeStyled renders the same text with color and
// a trailing progress bar when the total is known.
type LineReporter struct {
	mu    sync.Mutex
	out   io.Writer
	mode  Mode
	meter bar.Model
}

// NewLineReporter creates a reporter writing to out.
func NewLineReporter(out io.Writer, mode Mode) *LineReporter {
	r := &LineReporter{out: out, mode: mode}
	if mode == ModeStyled {
		r.meter = bar.New(
			bar.WithDefaultGradient(),
			bar.WithWidth(barWidth),
		)
	}
	return r
}

// Report writes the line for a batch. A negative total means unknown.
func (r *LineReporter) Report(processed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode != ModeStyled {
		fmt.Fprintf(r.out, "Commit: %d / %s\n", processed, formatTotal(total))
		return
	}

	line := labelStyle.Render("Commit:") + " " +
		countStyle.Render(strconv.Itoa(processed)) + " / " +
		totalStyle.Render(formatTotal(total))
	if total > 0 {
		line += "  " + r.meter.ViewAs(float64(processed)/float64(total))
	}
	fmt.Fprintln(r.out, line)
}

func formatTotal(total int) string {
	if total < 0 {
		return "?"
	}
	return strconv.Itoa(total)
}

// Discard drops all reports.
type Discard struct{}

func (Discard) Report(int, int) {}

var (
	_ qload.ProgressReporter = (*LineReporter)(nil)
	_ qload.ProgressReporter = Discard{}
)
