// Package hooks runs a template's lifecycle hooks.
//
// A hook is an executable at hooks/pre_gen_project or hooks/post_gen_project
// under the template root. It receives one JSON document on stdin with the
// template and output directories and the answers (null for the pre-hook).
// The pre-hook's stdout is captured so it can supply answers; the
// post-hook's stdout goes to the terminal. A non-zero exit fails the run.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/arthur-debert/kiln/pkg/constants"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/types"
	"github.com/rs/zerolog"
)

// Kind identifies a lifecycle hook
type Kind string

const (
	Pre  Kind = constants.PreHook
	Post Kind = constants.PostHook
)

// Payload is the document written to a hook's stdin
type Payload struct {
	TemplateDir string         `json:"template_dir"`
	OutputDir   string         `json:"output_dir"`
	Answers     *types.Answers `json:"answers"`
}

// Options configures a Runner
type Options struct {
	// Timeout bounds each hook; zero means no limit
	Timeout time.Duration
	// Stdout receives the post-hook's output, os.Stdout when nil
	Stdout io.Writer
	// Stderr receives both hooks' error output, os.Stderr when nil
	Stderr io.Writer
}

// Runner executes the hooks of one template for one output directory
type Runner struct {
	templateDir string
	outputDir   string
	opts        Options
	logger      zerolog.Logger
}

// NewRunner creates a runner. Directories are made absolute for the payload.
func NewRunner(templateDir, outputDir string, opts Options) *Runner {
	if abs, err := filepath.Abs(templateDir); err == nil {
		templateDir = abs
	}
	if abs, err := filepath.Abs(outputDir); err == nil {
		outputDir = abs
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Runner{
		templateDir: templateDir,
		outputDir:   outputDir,
		opts:        opts,
		logger:      logging.GetLogger("hooks"),
	}
}

// Path returns where the hook of the given kind lives
func (r *Runner) Path(kind Kind) string {
	return filepath.Join(r.templateDir, constants.HooksDir, string(kind))
}

// Exists reports whether the template ships the hook
func (r *Runner) Exists(kind Kind) bool {
	info, err := os.Stat(r.Path(kind))
	return err == nil && !info.IsDir()
}

// Present returns the hooks the template ships, pre first
func (r *Runner) Present() []Kind {
	var kinds []Kind
	for _, k := range []Kind{Pre, Post} {
		if r.Exists(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Run executes a hook. A missing hook is a no-op. For the pre-hook the
// captured stdout is returned; for the post-hook it is streamed and nil is
// returned.
func (r *Runner) Run(ctx context.Context, kind Kind, answers *types.Answers) ([]byte, error) {
	path := r.Path(kind)
	if !r.Exists(kind) {
		r.logger.Debug().Str("hook", string(kind)).Msg("Hook not present")
		return nil, nil
	}

	payload, err := json.Marshal(Payload{TemplateDir: r.templateDir, OutputDir: r.outputDir, Answers: answers})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrHookExecute, "failed to encode payload for %s", kind)
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path)
	cmd.Stderr = r.opts.Stderr

	var captured bytes.Buffer
	if kind == Pre {
		cmd.Stdout = &captured
	} else {
		cmd.Stdout = r.opts.Stdout
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrHookExecute, "failed to open stdin for %s", kind)
	}

	r.logger.Info().Str("hook", string(kind)).Str("path", path).Msg("Running hook")
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHookExecute, "failed to start hook %s", path).
			WithDetail("hook", string(kind))
	}

	// Written concurrently with the stdout copy so large payloads cannot
	// fill both pipes.
	written := make(chan error, 1)
	go func() {
		_, werr := stdin.Write(payload)
		if cerr := stdin.Close(); werr == nil {
			werr = cerr
		}
		written <- werr
	}()

	waitErr := cmd.Wait()
	if werr := <-written; werr != nil {
		r.logger.Debug().Err(werr).Str("hook", string(kind)).Msg("Hook did not consume its payload")
	}

	r.logger.Debug().
		Str("hook", string(kind)).
		Dur("duration", time.Since(start)).
		Int("stdout_bytes", captured.Len()).
		Msg("Hook finished")

	if waitErr != nil {
		kerr := errors.Wrapf(waitErr, errors.ErrHookExecute, "hook %s failed", kind).
			WithDetail("hook", string(kind)).
			WithDetail("path", path)
		if ctx.Err() == context.DeadlineExceeded {
			kerr = kerr.WithDetail("timeout", r.opts.Timeout.String())
		}
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			kerr = kerr.WithDetail("exit_code", exitErr.ExitCode())
		}
		return nil, kerr
	}

	if kind == Pre {
		return captured.Bytes(), nil
	}
	return nil, nil
}
