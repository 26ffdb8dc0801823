package progress

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how progress lines are rendered.
type Mode int

const (
	// ModePlain writes bare "Commit: n / total" lines. Used for pipes, files and CI.
	ModePlain Mode = iota
	// ModeStyled adds color and a progress bar for a human at a terminal.
	ModeStyled
)

// DetectMode returns ModePlain if:
//   - QLOAD_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set
//   - f is not a terminal
//
// Returns ModeStyled otherwise.
func DetectMode(f *os.File) Mode {
	if os.Getenv("QLOAD_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return ModePlain
	}
	return ModeStyled
}
