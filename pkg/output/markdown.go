package output

import (
	"github.com/charmbracelet/glamour"
)

// DefaultMarkdownWidth is the wrap width used for markdown output
const DefaultMarkdownWidth = 80

// RenderMarkdown renders markdown for the terminal. Without color the
// plain "notty" style is used. Rendering failures return the source text.
func RenderMarkdown(content string, color bool, width int) string {
	var options []glamour.TermRendererOption
	if color {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath("notty"))
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
