package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/output/styles"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer writes styled output to a writer
type Renderer struct {
	templates *template.Template
	styles    styles.Registry
	writer    io.Writer
	color     bool
}

// NewRenderer creates a renderer writing to w. With color false every style
// renders as plain text.
func NewRenderer(w io.Writer, color bool) (*Renderer, error) {
	log := logging.GetLogger("output")

	lr := lipgloss.NewRenderer(w)
	if !color {
		lr.SetColorProfile(termenv.Ascii)
	}
	log.Debug().
		Bool("color", color).
		Str("profile", fmt.Sprintf("%v", lr.ColorProfile())).
		Msg("Creating renderer")

	r := &Renderer{
		styles: styles.Default().Build(lr),
		writer: w,
		color:  color,
	}

	tmpl, err := template.New("output").
		Funcs(template.FuncMap{"style": r.style}).
		ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.templates = tmpl
	return r, nil
}

func (r *Renderer) style(name, text string) string {
	return r.styles.Get(name).Render(text)
}

// Render writes a generation summary
func (r *Renderer) Render(summary *Summary) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "result.tmpl", summary); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	_, err := fmt.Fprintln(r.writer, strings.TrimRight(buf.String(), "\n"))
	return err
}

// RenderError writes an error line
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.writer, "%s %s\n", r.style("error", "Error:"), err.Error())
	return writeErr
}

// RenderMessage writes a single styled message
func (r *Renderer) RenderMessage(style, message string) error {
	_, err := fmt.Fprintln(r.writer, r.style(style, message))
	return err
}
