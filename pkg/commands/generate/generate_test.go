// pkg/commands/generate/generate_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: temp directories, /bin/sh for hook tests, mock Prompter and Confirmer
// PURPOSE: Test the full generation flow from template to output tree

package generate_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kiln/pkg/commands/generate"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/filesystem"
	"github.com/arthur-debert/kiln/pkg/hooks"
	"github.com/arthur-debert/kiln/pkg/operations"
	"github.com/arthur-debert/kiln/pkg/testutil"
)

const questionsJSON = `{
	"file_name": {"type": "str", "default": "notes"},
	"use_docs": {"type": "bool", "default": false},
	"author": {"type": "str", "default": "anonymous"}
}`

func baseTemplate(t *testing.T) string {
	tpl := t.TempDir()
	testutil.WriteTree(t, tpl, map[string]string{
		"kiln.json":              questionsJSON,
		"{{file_name}}.txt.tmpl": "written by {{ author }}",
		"static.txt":             "copied {{ verbatim }}",
		".kilnignore":            "*.bak\n",
		"old.bak":                "ignored",
		"{% if use_docs %}docs{% endif %}/index.md": "docs",
	})
	return tpl
}

func TestGenerate_NonInteractive(t *testing.T) {
	tpl := baseTemplate(t)
	out := filepath.Join(t.TempDir(), "project")

	result, err := generate.Generate(context.Background(), generate.Options{
		Template:       tpl,
		OutputDir:      out,
		Context:        `{"file_name": "readme", "author": "Ada"}`,
		TemplateSuffix: ".tmpl",
		Workers:        2,
	})
	require.NoError(t, err)

	assert.Equal(t, out, result.OutputDir)
	assert.Equal(t, []string{"file_name", "use_docs", "author"}, result.Answers.Keys())
	assert.True(t, result.Answers.Frozen())

	assert.Equal(t, "written by Ada", testutil.ReadFile(t, filepath.Join(out, "readme.txt")))
	assert.NoFileExists(t, filepath.Join(out, "readme.txt.tmpl"))
	assert.Equal(t, "copied {{ verbatim }}", testutil.ReadFile(t, filepath.Join(out, "static.txt")))
	assert.NoFileExists(t, filepath.Join(out, "old.bak"))
	assert.NoFileExists(t, filepath.Join(out, "kiln.json"))
	assert.NoFileExists(t, filepath.Join(out, ".kilnignore"))

	// the collapsed conditional directory is reported, not fatal
	require.Len(t, result.Report.Errors, 1)
	assert.True(t, errors.IsErrorCode(result.Report.Errors[0].Err, errors.ErrPathInvalid))
	assert.NoDirExists(t, filepath.Join(out, "docs"))
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGenerate_ConditionalDirectoryEnabled(t *testing.T) {
	tpl := baseTemplate(t)
	out := filepath.Join(t.TempDir(), "project")

	result, err := generate.Generate(context.Background(), generate.Options{
		Template:       tpl,
		OutputDir:      out,
		Context:        `{"use_docs": true}`,
		TemplateSuffix: ".tmpl",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Report.Errors)
	assert.Equal(t, "docs", testutil.ReadFile(t, filepath.Join(out, "docs", "index.md")))
	assert.Equal(t, "written by anonymous", testutil.ReadFile(t, filepath.Join(out, "notes.txt")))
}

func TestGenerate_OutputExists(t *testing.T) {
	tpl := baseTemplate(t)
	out := t.TempDir()

	_, err := generate.Generate(context.Background(), generate.Options{Template: tpl, OutputDir: out})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutputExists))
	assert.Equal(t, 2, errors.ExitCode(err))
}

func TestGenerate_OutputStatFailure(t *testing.T) {
	tpl := baseTemplate(t)
	out := filepath.Join(t.TempDir(), "project")

	_, err := generate.Generate(context.Background(), generate.Options{
		Template:   tpl,
		OutputDir:  out,
		FileSystem: testutil.DenyStat(filesystem.NewOS(), out),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess), "got %v", err)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_MissingTemplate(t *testing.T) {
	_, err := generate.Generate(context.Background(), generate.Options{
		Template:  filepath.Join(t.TempDir(), "absent"),
		OutputDir: filepath.Join(t.TempDir(), "out"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
}

func TestGenerate_ConflictPolicies(t *testing.T) {
	tests := []struct {
		name   string
		opts   func(*generate.Options)
		want   string
		action operations.Action
	}{
		{
			name:   "declined overwrite keeps the file byte-identical",
			opts:   func(o *generate.Options) {},
			want:   "hand edited\n",
			action: operations.ActionSkipping,
		},
		{
			name:   "keep existing",
			opts:   func(o *generate.Options) { o.KeepExisting = true; o.SkipOverwriteCheck = true },
			want:   "hand edited\n",
			action: operations.ActionSkipping,
		},
		{
			name:   "skip overwrite check",
			opts:   func(o *generate.Options) { o.SkipOverwriteCheck = true },
			want:   "written by anonymous",
			action: operations.ActionOverwriting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := baseTemplate(t)
			out := t.TempDir()
			testutil.WriteTree(t, out, map[string]string{"notes.txt": "hand edited\n"})

			opts := generate.Options{Template: tpl, OutputDir: out, Force: true, TemplateSuffix: ".tmpl"}
			tt.opts(&opts)
			result, err := generate.Generate(context.Background(), opts)
			require.NoError(t, err)

			assert.Equal(t, tt.want, testutil.ReadFile(t, filepath.Join(out, "notes.txt")))
			found := false
			for _, r := range result.Report.Results {
				if r.Operation.Target == filepath.Join(out, "notes.txt") {
					found = true
					assert.Equal(t, tt.action, r.Action)
				}
			}
			assert.True(t, found)
		})
	}
}

func TestGenerate_DryRun(t *testing.T) {
	tpl := baseTemplate(t)
	out := filepath.Join(t.TempDir(), "project")

	result, err := generate.Generate(context.Background(), generate.Options{
		Template:       tpl,
		OutputDir:      out,
		DryRun:         true,
		TemplateSuffix: ".tmpl",
	})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.NotEmpty(t, result.Report.Results)
	assert.NoDirExists(t, out)
}

func TestGenerate_StdinAnswers(t *testing.T) {
	tpl := baseTemplate(t)
	out := filepath.Join(t.TempDir(), "project")

	_, err := generate.Generate(context.Background(), generate.Options{
		Template:       tpl,
		OutputDir:      out,
		Context:        `{"author": "from context"}`,
		Stdin:          strings.NewReader(`{"author": "from stdin", "file_name": "piped"}`),
		Interactive:    true,
		TemplateSuffix: ".tmpl",
	})
	require.NoError(t, err)
	// context wins over stdin, stdin fills the rest, and nothing prompts
	assert.Equal(t, "written by from context", testutil.ReadFile(t, filepath.Join(out, "piped.txt")))
}

func TestGenerate_InvalidContext(t *testing.T) {
	tpl := baseTemplate(t)
	_, err := generate.Generate(context.Background(), generate.Options{
		Template:  tpl,
		OutputDir: filepath.Join(t.TempDir(), "project"),
		Context:   `["not", "an", "object"]`,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestGenerate_Interactive(t *testing.T) {
	tpl := baseTemplate(t)
	out := filepath.Join(t.TempDir(), "project")

	prompter := new(testutil.MockPrompter)
	prompter.On("Text", "file_name", "notes").Return("answers", nil)
	prompter.On("Confirm", "use_docs", false).Return(false, nil)
	prompter.On("Text", "author", "anonymous").Return("Grace", nil)
	confirmer := new(testutil.MockConfirmer)

	result, err := generate.Generate(context.Background(), generate.Options{
		Template:       tpl,
		OutputDir:      out,
		Interactive:    true,
		Prompter:       prompter,
		Confirmer:      confirmer,
		TemplateSuffix: ".tmpl",
	})
	require.NoError(t, err)
	prompter.AssertExpectations(t)
	confirmer.AssertNotCalled(t, "RequestConfirmation", mock.Anything, mock.Anything)

	v, _ := result.Answers.Get("author")
	assert.Equal(t, "Grace", v)
	assert.Equal(t, "written by Grace", testutil.ReadFile(t, filepath.Join(out, "answers.txt")))
}

func hookTemplate(t *testing.T) string {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts need a POSIX shell")
	}
	tpl := t.TempDir()
	testutil.WriteTree(t, tpl, map[string]string{
		"kiln.json":              `{"name": {"type": "str", "default": "default-name"}}`,
		"{{ name }}.md.tmpl":     "# {{ name }}",
		"hooks/pre_gen_project":  "#!/bin/sh\ncat >/dev/null\necho '{\"name\": \"from-hook\"}'\n",
		"hooks/post_gen_project": "#!/bin/sh\ncat > \"$(dirname \"$0\")/../../post-payload.json\"\n",
	})
	return tpl
}

func TestGenerate_HooksWithSkipCheck(t *testing.T) {
	tpl := hookTemplate(t)
	out := filepath.Join(t.TempDir(), "project")

	result, err := generate.Generate(context.Background(), generate.Options{
		Template:       tpl,
		OutputDir:      out,
		SkipHooksCheck: true,
		TemplateSuffix: ".tmpl",
	})
	require.NoError(t, err)

	assert.Equal(t, []hooks.Kind{hooks.Pre, hooks.Post}, result.HooksRun)
	assert.Equal(t, "# from-hook", testutil.ReadFile(t, filepath.Join(out, "from-hook.md")))
	assert.NoDirExists(t, filepath.Join(out, "hooks"))

	payload := testutil.ReadFile(t, filepath.Join(filepath.Dir(tpl), "post-payload.json"))
	assert.Contains(t, payload, `"answers":{"name":"from-hook"}`)
}

func TestGenerate_ContextBeatsPreHook(t *testing.T) {
	tpl := hookTemplate(t)
	out := filepath.Join(t.TempDir(), "project")

	_, err := generate.Generate(context.Background(), generate.Options{
		Template:       tpl,
		OutputDir:      out,
		SkipHooksCheck: true,
		Context:        `{"name": "explicit"}`,
		TemplateSuffix: ".tmpl",
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "explicit.md"))
}

func TestGenerate_HooksNeedConfirmation(t *testing.T) {
	t.Run("non-interactive skips hooks", func(t *testing.T) {
		tpl := hookTemplate(t)
		out := filepath.Join(t.TempDir(), "project")

		result, err := generate.Generate(context.Background(), generate.Options{
			Template: tpl, OutputDir: out, TemplateSuffix: ".tmpl",
		})
		require.NoError(t, err)
		assert.Empty(t, result.HooksRun)
		assert.FileExists(t, filepath.Join(out, "default-name.md"))
	})

	t.Run("declined confirmation skips hooks", func(t *testing.T) {
		tpl := hookTemplate(t)
		out := filepath.Join(t.TempDir(), "project")
		confirmer := new(testutil.MockConfirmer)
		confirmer.On("RequestConfirmation", "hooks", "Run template hooks?").Return(false)
		prompter := new(testutil.MockPrompter)
		prompter.On("Text", "name", "default-name").Return("typed", nil)

		result, err := generate.Generate(context.Background(), generate.Options{
			Template: tpl, OutputDir: out, TemplateSuffix: ".tmpl",
			Interactive: true, Prompter: prompter, Confirmer: confirmer,
		})
		require.NoError(t, err)
		confirmer.AssertExpectations(t)
		assert.Empty(t, result.HooksRun)
		assert.FileExists(t, filepath.Join(out, "typed.md"))
	})
}

func TestGenerate_FailingHookAborts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts need a POSIX shell")
	}
	tpl := t.TempDir()
	testutil.WriteTree(t, tpl, map[string]string{
		"kiln.json":             `{}`,
		"hooks/pre_gen_project": "#!/bin/sh\nexit 3\n",
	})

	_, err := generate.Generate(context.Background(), generate.Options{
		Template: tpl, OutputDir: filepath.Join(t.TempDir(), "project"), SkipHooksCheck: true,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHookExecute))
	assert.Equal(t, 5, errors.ExitCode(err))
}
