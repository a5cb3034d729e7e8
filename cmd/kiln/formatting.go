package kiln

import (
	"os"
	"strings"
	"text/template"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/kiln/pkg/config"
	"github.com/arthur-debert/kiln/pkg/output"
)

// helpStyled reports whether help text is printed with ANSI emphasis. It
// follows the same rules as the generation report.
var helpStyled = func() bool {
	return output.ColorEnabled(config.Get().Output.Color, os.Stdout)
}

func formatBold(s string) string {
	if !helpStyled() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// initTemplateFormatting registers the help template functions
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":  formatBold,
		"upper": strings.ToUpper,
		"boldUpper": func(s string) string {
			return formatBold(strings.ToUpper(s))
		},
	})
}
