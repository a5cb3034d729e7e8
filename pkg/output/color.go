package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/kiln/pkg/config"
)

type fdWriter interface {
	Fd() uintptr
}

// ColorEnabled decides whether output written to w is colored. mode is the
// output.color setting. In auto mode color needs a terminal, an unset
// NO_COLOR and a terminal profile that supports at least ANSI colors.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}
