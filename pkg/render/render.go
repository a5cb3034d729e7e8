// Package render is kiln's rendering primitive. It turns a template string
// and an answer context into text, and evaluates boolean expressions for
// conditional questions. The engine is pongo2, which understands the
// Jinja/Django syntax templates are written in ({{ var }}, {% if %}).
package render

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/flosch/pongo2/v6"
)

// Renderer renders template text against a JSON-like context
type Renderer interface {
	// Render returns text with every expression substituted. Undefined
	// variables render as empty.
	Render(text string, ctx map[string]interface{}) (string, error)

	// Evaluate reports whether expr is truthy in ctx. An empty
	// expression is true.
	Evaluate(expr string, ctx map[string]interface{}) (bool, error)
}

// Pongo2 is the pongo2-backed Renderer. The zero value is ready to use and
// holds no state, so one instance can be shared by every component.
type Pongo2 struct{}

// New returns the default renderer
func New() *Pongo2 {
	return &Pongo2{}
}

var markers = []string{"{{", "{%", "{#"}

// HasExpressions reports whether text contains any template markup
func HasExpressions(text string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// Render implements Renderer
func (p *Pongo2) Render(text string, ctx map[string]interface{}) (string, error) {
	if !HasExpressions(text) {
		return text, nil
	}

	// Output is files and paths, never HTML.
	tpl, err := pongo2.FromString("{% autoescape off %}" + text + "{% endautoescape %}")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "failed to parse template %q", abbreviate(text))
	}

	out, err := tpl.Execute(pongoContext(ctx))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "failed to render template %q", abbreviate(text))
	}
	return out, nil
}

// Evaluate implements Renderer
func (p *Pongo2) Evaluate(expr string, ctx map[string]interface{}) (bool, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true, nil
	}

	out, err := p.Render("{% if "+expr+" %}true{% else %}false{% endif %}", ctx)
	if err != nil {
		return false, err
	}

	logger := logging.GetLogger("render")
	logger.Trace().
		Str("expr", expr).
		Str("result", out).
		Msg("Evaluated expression")
	return out == "true", nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether name can be referenced from a template
func IsIdentifier(name string) bool {
	return identifier.MatchString(name)
}

// pongoContext builds the pongo2 context from the identifier keys of ctx. pongo2
// rejects a whole context holding any other key.
func pongoContext(ctx map[string]interface{}) pongo2.Context {
	out := make(pongo2.Context, len(ctx))
	var skipped []string
	for k, v := range ctx {
		if !IsIdentifier(k) {
			skipped = append(skipped, k)
			continue
		}
		out[k] = v
	}
	if len(skipped) > 0 {
		logger := logging.GetLogger("render")
		logger.Debug().Strs("keys", skipped).Msg("Skipping context keys that are not identifiers")
	}
	return out
}

func abbreviate(text string) string {
	const limit = 60
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}
