package materialize

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/operations"
	"github.com/arthur-debert/kiln/pkg/render"
	"github.com/arthur-debert/kiln/pkg/types"
)

// Matcher reports whether a template-relative path is ignored
type Matcher interface {
	Match(rel string) bool
}

// Config locates the trees a Processor works between
type Config struct {
	TemplateRoot string
	OutputRoot   string
	// Suffix marks template files; empty disables content rendering
	Suffix string
}

// Processor decides the operation for a single template entry. Apart from
// reading template files and checking whether targets exist it has no side
// effects.
type Processor struct {
	fs       types.FS
	renderer render.Renderer
	matcher  Matcher
	context  map[string]interface{}
	cfg      Config
}

// NewProcessor creates a processor rendering against answers
func NewProcessor(fsys types.FS, r render.Renderer, m Matcher, answers *types.Answers, cfg Config) *Processor {
	cfg.TemplateRoot = filepath.Clean(cfg.TemplateRoot)
	cfg.OutputRoot = filepath.Clean(cfg.OutputRoot)
	return &Processor{
		fs:       fsys,
		renderer: r,
		matcher:  m,
		context:  answers.Map(),
		cfg:      cfg,
	}
}

// Process decides the operation for the entry at path, an absolute or
// template-root-prefixed path
func (p *Processor) Process(path string, info fs.FileInfo) (operations.Operation, error) {
	rel, err := filepath.Rel(p.cfg.TemplateRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return operations.Operation{}, errors.Newf(errors.ErrPathInvalid, "%s is outside the template root", path).
			WithDetail("path", path)
	}

	if rel == "." {
		exists, err := p.exists(p.cfg.OutputRoot)
		if err != nil {
			return operations.Operation{}, err
		}
		return operations.Operation{
			Type:         operations.CreateDirectory,
			Target:       p.cfg.OutputRoot,
			TargetExists: exists,
		}, nil
	}

	if p.matcher != nil && p.matcher.Match(rel) {
		return operations.Operation{Type: operations.Ignore, Source: path}, nil
	}

	renderedRel, isTemplate, err := p.targetRel(rel, info.IsDir())
	if err != nil {
		return operations.Operation{}, err
	}

	target := filepath.Join(p.cfg.OutputRoot, filepath.FromSlash(renderedRel))
	if back, err := filepath.Rel(p.cfg.OutputRoot, target); err != nil || back == "." || back == ".." ||
		strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return operations.Operation{}, pathInvalid(rel, "rendered path %q leaves the output root", renderedRel)
	}
	exists, err := p.exists(target)
	if err != nil {
		return operations.Operation{}, err
	}

	switch {
	case info.IsDir():
		return operations.Operation{Type: operations.CreateDirectory, Target: target, TargetExists: exists}, nil
	case isTemplate:
		raw, err := p.fs.ReadFile(path)
		if err != nil {
			return operations.Operation{}, errors.Wrapf(err, errors.ErrFileRead, "failed to read template %s", rel)
		}
		content, err := p.renderer.Render(string(raw), p.context)
		if err != nil {
			return operations.Operation{}, errors.Wrapf(err, errors.ErrTemplateRender, "failed to render %s", rel).
				WithDetail("path", rel)
		}
		return operations.Operation{
			Type:         operations.Write,
			Source:       path,
			Target:       target,
			Content:      []byte(content),
			Mode:         info.Mode().Perm(),
			TargetExists: exists,
		}, nil
	default:
		return operations.Operation{
			Type:         operations.Copy,
			Source:       path,
			Target:       target,
			Mode:         info.Mode().Perm(),
			TargetExists: exists,
		}, nil
	}
}

// targetRel renders rel segment by segment, rejects collapsed segments and
// strips the template suffix from file names
func (p *Processor) targetRel(rel string, isDir bool) (string, bool, error) {
	source, rendered, err := render.PathSegments(p.renderer, rel, p.context)
	if err != nil {
		return "", false, err
	}

	for i := range source {
		if strings.TrimSpace(source[i]) != "" && strings.TrimSpace(rendered[i]) == "" {
			return "", false, pathInvalid(rel, "segment %q rendered empty", source[i])
		}
	}

	renderedRel := strings.Join(rendered, "/")
	parts := strings.Split(renderedRel, "/")
	for _, part := range parts {
		switch strings.TrimSpace(part) {
		case "":
			return "", false, pathInvalid(rel, "rendered path %q has an empty segment", renderedRel)
		case ".", "..":
			return "", false, pathInvalid(rel, "rendered path %q contains %q", renderedRel, part)
		}
	}

	isTemplate := false
	last := parts[len(parts)-1]
	if !isDir && p.cfg.Suffix != "" && strings.HasSuffix(last, p.cfg.Suffix) {
		if last == p.cfg.Suffix {
			return "", false, pathInvalid(rel, "file name %q is only the template suffix", last)
		}
		parts[len(parts)-1] = strings.TrimSuffix(last, p.cfg.Suffix)
		isTemplate = true
	}

	return strings.Join(parts, "/"), isTemplate, nil
}

// exists reports whether path is present. Errors other than not-exist
// surface as FILE_ACCESS.
func (p *Processor) exists(path string) (bool, error) {
	_, err := p.fs.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path).
			WithDetail("path", path)
	}
}

func pathInvalid(rel, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrPathInvalid, "invalid path %s: %s", rel, fmt.Sprintf(format, args...)).
		WithDetail("path", rel)
}
