package materialize

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/operations"
	"github.com/arthur-debert/kiln/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// EntryError is a failure confined to one template entry
type EntryError struct {
	Path string
	Err  error
}

func (e EntryError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e EntryError) Unwrap() error {
	return e.Err
}

// Report is the outcome of a pipeline run. Results are in walk order.
type Report struct {
	Results []operations.OperationResult
	Errors  []EntryError
}

// Pipeline walks a template tree and materializes it
type Pipeline struct {
	fs        types.FS
	processor *Processor
	executor  *operations.Executor
	workers   int
	logger    zerolog.Logger
}

// NewPipeline creates a pipeline. workers above one execute file
// operations concurrently once every directory exists.
func NewPipeline(fsys types.FS, processor *Processor, executor *operations.Executor, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		fs:        fsys,
		processor: processor,
		executor:  executor,
		workers:   workers,
		logger:    logging.GetLogger("materialize"),
	}
}

type decided struct {
	op   operations.Operation
	path string
}

// Run walks the template root, decides every entry and executes the
// decisions. Per-entry failures are collected in the report; only a failure
// to walk the template root itself, or cancellation, is returned as an error.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	root := p.processor.cfg.TemplateRoot
	report := &Report{}

	var ops []decided
	err := p.fs.Walk(root, func(path string, info fs.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			p.recordError(report, path, errors.Wrapf(walkErr, errors.ErrFileAccess, "failed to read %s", path))
			return nil
		}

		op, err := p.processor.Process(path, info)
		if err != nil {
			p.recordError(report, path, err)
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		ops = append(ops, decided{op: op, path: path})
		if op.Type == operations.Ignore && info.IsDir() {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}
		return report, errors.Wrapf(err, errors.ErrTemplateNotFound, "failed to walk template %s", root)
	}

	results := make([]operations.OperationResult, len(ops))

	// Directories and ignores first, in walk order, so parents precede children.
	var files []int
	for i, d := range ops {
		switch d.op.Type {
		case operations.Copy, operations.Write:
			files = append(files, i)
		default:
			results[i] = p.executor.Execute(d.op)
		}
	}

	if err := p.executeFiles(ctx, ops, files, results); err != nil {
		return report, err
	}

	for i, r := range results {
		if !r.Success {
			p.recordError(report, ops[i].path, r.Error)
		}
	}
	report.Results = results
	return report, nil
}

func (p *Pipeline) executeFiles(ctx context.Context, ops []decided, files []int, results []operations.OperationResult) error {
	if p.workers == 1 {
		for _, i := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.executor.Execute(ops[i].op)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, i := range files {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.executor.Execute(ops[i].op)
			return nil
		})
	}
	return g.Wait()
}

func (p *Pipeline) recordError(report *Report, path string, err error) {
	p.logger.Warn().Err(err).Str("path", path).Msg("Skipping entry")
	report.Errors = append(report.Errors, EntryError{Path: path, Err: err})
}
