// pkg/render/render_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: pongo2
// PURPOSE: Test template rendering, expression evaluation and path segments

package render_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_NoExpressionsIsIdentity(t *testing.T) {
	r := render.New()
	inputs := []string{
		"",
		"plain text",
		"<html> & \"quotes\" stay as they are",
		"line one\nline two\n",
		"braces { alone } are fine",
	}
	for _, in := range inputs {
		out, err := r.Render(in, map[string]interface{}{"x": 1})
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestRender_Substitutes(t *testing.T) {
	r := render.New()
	ctx := map[string]interface{}{"file_name": "hello_world", "greetings": "Hello, World"}

	out, err := r.Render("{{file_name}}.txt", ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello_world.txt", out)

	out, err = r.Render("{{ greetings }}", ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World", out)
}

func TestRender_DoesNotEscape(t *testing.T) {
	r := render.New()
	out, err := r.Render("{{ v }}", map[string]interface{}{"v": "<a & b>"})
	require.NoError(t, err)
	assert.Equal(t, "<a & b>", out)
}

func TestRender_UndefinedIsEmpty(t *testing.T) {
	r := render.New()
	out, err := r.Render("[{{ later_key }}]", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestRender_Conditional(t *testing.T) {
	r := render.New()
	tpl := "{% if create_dir %}hello{% endif %}"

	out, err := r.Render(tpl, map[string]interface{}{"create_dir": true})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	out, err = r.Render(tpl, map[string]interface{}{"create_dir": false})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRender_SyntaxError(t *testing.T) {
	r := render.New()
	_, err := r.Render("{% if %}", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
}

func TestEvaluate(t *testing.T) {
	r := render.New()
	ctx := map[string]interface{}{
		"use_docker": true,
		"license":    "MIT",
		"count":      0,
	}

	tests := []struct {
		expr     string
		expected bool
	}{
		{"", true},
		{"   ", true},
		{"use_docker", true},
		{"not use_docker", false},
		{"license == \"MIT\"", true},
		{"license != \"MIT\"", false},
		{"count", false},
		{"missing_key", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := r.Evaluate(tt.expr, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRender_SkipsNonIdentifierKeys(t *testing.T) {
	r := render.New()
	ctx := map[string]interface{}{"project-name": "x", "greeting": "hi"}

	out, err := r.Render("{{ greeting }}", ctx)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	ok, err := r.Evaluate("greeting", ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, render.IsIdentifier("project_name"))
	assert.True(t, render.IsIdentifier("_private"))
	assert.True(t, render.IsIdentifier("v2"))
	assert.False(t, render.IsIdentifier("project-name"))
	assert.False(t, render.IsIdentifier("2fast"))
	assert.False(t, render.IsIdentifier("a b"))
	assert.False(t, render.IsIdentifier(""))
}

func TestRender_ErrorMessageKeepsRunesWhole(t *testing.T) {
	r := render.New()
	// 59 ASCII bytes put the cut inside the first multi-byte rune
	text := "{% if %}" + strings.Repeat("a", 51) + strings.Repeat("é", 20)
	_, err := r.Render(text, nil)
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), "é...")
}

func TestEvaluate_Malformed(t *testing.T) {
	r := render.New()
	_, err := r.Evaluate("use_docker ==", nil)
	assert.Error(t, err)
}

func TestPathSegments(t *testing.T) {
	r := render.New()
	ctx := map[string]interface{}{"name": "demo", "flag": false}

	src, out, err := render.PathSegments(r, "{{name}}/{% if flag %}x{% endif %}/file.txt", ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"{{name}}", "{% if flag %}x{% endif %}", "file.txt"}, src)
	assert.Equal(t, []string{"demo", "", "file.txt"}, out)

	src, out, err = render.PathSegments(r, ".", ctx)
	require.NoError(t, err)
	assert.Nil(t, src)
	assert.Nil(t, out)
}
