// Package generate implements the main kiln command: materializing a
// template directory into an output directory.
package generate

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/kiln/pkg/answers"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/filesystem"
	"github.com/arthur-debert/kiln/pkg/hooks"
	"github.com/arthur-debert/kiln/pkg/ignore"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/materialize"
	"github.com/arthur-debert/kiln/pkg/operations"
	"github.com/arthur-debert/kiln/pkg/prompt"
	"github.com/arthur-debert/kiln/pkg/questions"
	"github.com/arthur-debert/kiln/pkg/render"
	"github.com/arthur-debert/kiln/pkg/source"
	"github.com/arthur-debert/kiln/pkg/types"
)

// Options defines the options for the Generate command.
type Options struct {
	// Template is a local directory or a git URL.
	Template string
	// OutputDir is the root the template is materialized into.
	OutputDir string

	// Force allows an existing output directory.
	Force bool
	// SkipHooksCheck runs hooks without asking.
	SkipHooksCheck bool
	// SkipOverwriteCheck overwrites existing files and reuses cached
	// templates without asking.
	SkipOverwriteCheck bool
	// KeepExisting leaves existing files untouched. It wins over
	// SkipOverwriteCheck.
	KeepExisting bool
	// DryRun decides everything but writes nothing and runs no hooks.
	DryRun bool

	// Context is a JSON object of explicit answers.
	Context string
	// Stdin, when set, is read for a JSON object of explicit answers.
	Stdin io.Reader
	// Interactive reports whether the user can be prompted. It is cleared
	// when answers are read from Stdin.
	Interactive bool

	// TemplateSuffix marks files whose content is rendered.
	TemplateSuffix string
	// Workers bounds parallel file operations.
	Workers int
	// MaxAttempts bounds re-prompting after a rejected answer.
	MaxAttempts int
	// HookTimeout bounds each hook; zero means no limit.
	HookTimeout time.Duration
	// CacheDir holds cloned git templates.
	CacheDir string
	// GitCommand is the git executable.
	GitCommand string

	// FileSystem defaults to the OS filesystem.
	FileSystem types.FS
	// Renderer defaults to the pongo2 renderer.
	Renderer render.Renderer
	// Prompter defaults to the terminal prompter when interactive.
	Prompter answers.Prompter
	// Confirmer defaults to the terminal when interactive and to a
	// refusal otherwise.
	Confirmer operations.Confirmer
	// HookStdout and HookStderr receive hook output.
	HookStdout io.Writer
	HookStderr io.Writer
}

// Result describes a finished generation run.
type Result struct {
	TemplateDir string
	OutputDir   string
	Answers     *types.Answers
	Report      *materialize.Report
	// HooksRun lists the hooks that were executed.
	HooksRun []hooks.Kind
	DryRun   bool
}

// Generate materializes a template. Setup failures abort with an error;
// per-entry failures are collected in the report and do not fail the run.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.generate")
	log.Debug().Str("command", "Generate").Str("template", opts.Template).Msg("Executing command")
	done := logging.LogOperationStart(log, "generate")
	defer done()

	g, err := newGeneration(opts, log)
	if err != nil {
		return nil, err
	}

	templateDir, err := g.resolveSource(ctx)
	if err != nil {
		return nil, err
	}
	outputDir, err := g.checkOutput()
	if err != nil {
		return nil, err
	}

	set, err := questions.Load(g.fs, templateDir)
	if err != nil {
		return nil, err
	}
	matcher, err := ignore.Load(g.fs, templateDir)
	if err != nil {
		return nil, err
	}

	result := &Result{TemplateDir: templateDir, OutputDir: outputDir, DryRun: opts.DryRun}
	runner := hooks.NewRunner(templateDir, outputDir, hooks.Options{
		Timeout: opts.HookTimeout,
		Stdout:  opts.HookStdout,
		Stderr:  opts.HookStderr,
	})
	runHooks := g.confirmHooks(runner)

	sources, err := g.explicitSources()
	if err != nil {
		return nil, err
	}

	if runHooks && runner.Exists(hooks.Pre) {
		out, err := runner.Run(ctx, hooks.Pre, nil)
		if err != nil {
			return nil, err
		}
		result.HooksRun = append(result.HooksRun, hooks.Pre)
		preHook, perr := answers.ParseJSON(answers.SourcePreHook, out)
		if perr != nil {
			log.Warn().Err(perr).Msg("Ignoring pre-hook output, it is not a JSON object")
		} else {
			sources = append(sources, preHook)
		}
	}

	engine := answers.NewEngine(g.renderer, g.prompter, answers.Options{
		Interactive: g.interactive,
		MaxAttempts: opts.MaxAttempts,
	})
	resolved, err := engine.Resolve(set, sources...)
	if err != nil {
		return nil, err
	}
	result.Answers = resolved

	processor := materialize.NewProcessor(g.fs, g.renderer, matcher, resolved, materialize.Config{
		TemplateRoot: templateDir,
		OutputRoot:   outputDir,
		Suffix:       opts.TemplateSuffix,
	})
	executor := operations.NewExecutor(g.fs, g.confirmer, g.policy(), opts.DryRun)
	if g.writer != nil {
		executor.WithWriter(g.writer)
	}
	report, err := materialize.NewPipeline(g.fs, processor, executor, opts.Workers).Run(ctx)
	if err != nil {
		return nil, err
	}
	result.Report = report

	if runHooks && runner.Exists(hooks.Post) {
		if _, err := runner.Run(ctx, hooks.Post, resolved); err != nil {
			return result, err
		}
		result.HooksRun = append(result.HooksRun, hooks.Post)
	}

	log.Info().
		Str("command", "Generate").
		Str("output", outputDir).
		Int("results", len(report.Results)).
		Int("errors", len(report.Errors)).
		Msg("Command finished")
	return result, nil
}

// generation holds the collaborators of one run
type generation struct {
	opts        Options
	fs          types.FS
	writer      operations.Writer
	renderer    render.Renderer
	prompter    answers.Prompter
	confirmer   operations.Confirmer
	interactive bool
	log         zerolog.Logger
}

func newGeneration(opts Options, log zerolog.Logger) (*generation, error) {
	if opts.Template == "" {
		return nil, errors.New(errors.ErrInvalidInput, "template is required")
	}
	if opts.OutputDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output directory is required")
	}

	g := &generation{
		opts:        opts,
		fs:          opts.FileSystem,
		renderer:    opts.Renderer,
		prompter:    opts.Prompter,
		confirmer:   opts.Confirmer,
		interactive: opts.Interactive && opts.Stdin == nil,
		log:         log,
	}
	if g.fs == nil {
		g.fs = filesystem.NewOS()
		g.writer = operations.NewSynthfsWriter()
	}
	if g.renderer == nil {
		g.renderer = render.New()
	}

	var terminal *prompt.Terminal
	if g.interactive && (g.prompter == nil || g.confirmer == nil) {
		terminal = prompt.NewTerminal()
	}
	if g.prompter == nil && terminal != nil {
		g.prompter = terminal
	}
	if g.confirmer == nil {
		if terminal != nil {
			g.confirmer = terminal
		} else {
			g.confirmer = prompt.Fixed(false)
		}
	}
	return g, nil
}

func (g *generation) resolveSource(ctx context.Context) (string, error) {
	resolver := source.NewResolver(g.fs, g.confirmer, source.Options{
		CacheDir:    g.opts.CacheDir,
		GitCommand:  g.opts.GitCommand,
		ReuseCached: g.opts.SkipOverwriteCheck,
	})
	return resolver.Resolve(ctx, g.opts.Template)
}

// checkOutput returns the absolute output root. An existing root needs
// Force.
func (g *generation) checkOutput() (string, error) {
	outputDir, err := filepath.Abs(g.opts.OutputDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid output directory %s", g.opts.OutputDir)
	}
	info, err := g.fs.Stat(outputDir)
	if os.IsNotExist(err) {
		return outputDir, nil
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to stat output directory %s", outputDir).
			WithDetail("output", outputDir)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrOutputExists, "output path %s exists and is not a directory", outputDir).
			WithDetail("output", outputDir)
	}
	if !g.opts.Force {
		return "", errors.Newf(errors.ErrOutputExists, "output directory %s already exists, use --force to write into it", outputDir).
			WithDetail("output", outputDir)
	}
	g.log.Info().Str("output", outputDir).Msg("Writing into existing output directory")
	return outputDir, nil
}

// confirmHooks decides whether the template's hooks may run
func (g *generation) confirmHooks(runner *hooks.Runner) bool {
	present := runner.Present()
	if len(present) == 0 {
		return false
	}
	if g.opts.DryRun {
		g.log.Info().Msg("Dry run, hooks are not executed")
		return false
	}
	if g.opts.SkipHooksCheck {
		return true
	}
	if !g.interactive {
		g.log.Warn().Msg("Template has hooks but input is not interactive; skipping them (use --skip-hooks-check to run them)")
		return false
	}

	paths := make([]string, len(present))
	for i, kind := range present {
		paths[i] = runner.Path(kind)
	}
	return g.confirmer.RequestConfirmation(
		"hooks",
		"Run template hooks?",
		"This template ships executable hooks. They run with your permissions.",
		paths...,
	)
}

// explicitSources parses the --context blob and the stdin answers. Both are
// explicit overrides; the context blob is consulted first.
func (g *generation) explicitSources() ([]answers.Source, error) {
	var sources []answers.Source
	if strings.TrimSpace(g.opts.Context) != "" {
		src, err := answers.ParseJSON(answers.SourceExplicit, []byte(g.opts.Context))
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if g.opts.Stdin != nil {
		data, err := io.ReadAll(g.opts.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileRead, "failed to read answers from stdin")
		}
		src, err := answers.ParseJSON(answers.SourceExplicit, data)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func (g *generation) policy() operations.ConflictPolicy {
	switch {
	case g.opts.KeepExisting:
		return operations.ConflictSkip
	case g.opts.SkipOverwriteCheck:
		return operations.ConflictOverwrite
	default:
		return operations.ConflictPrompt
	}
}
