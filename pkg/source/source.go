// Package source resolves the template argument into a local directory.
// Local paths are used in place; git URLs are shallow-cloned into kiln's
// cache directory with the git CLI.
package source

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/internal/hashutil"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/operations"
	"github.com/arthur-debert/kiln/pkg/types"
	"github.com/rs/zerolog"
)

var scpLike = regexp.MustCompile(`^[\w.-]+@[\w.-]+:[\w./~-]+$`)

// IsGitURL reports whether src names a remote repository rather than a path
func IsGitURL(src string) bool {
	for _, prefix := range []string{"https://", "http://", "git://", "ssh://", "file://"} {
		if strings.HasPrefix(src, prefix) {
			return true
		}
	}
	return scpLike.MatchString(src)
}

// Options configures a Resolver
type Options struct {
	// CacheDir holds cloned templates
	CacheDir string
	// GitCommand is the git executable, "git" when empty
	GitCommand string
	// ReuseCached skips the confirmation before reusing an existing clone
	ReuseCached bool
}

// Resolver turns template arguments into local directories
type Resolver struct {
	fs        types.FS
	confirmer operations.Confirmer
	opts      Options
	logger    zerolog.Logger
}

// NewResolver creates a resolver. confirmer decides whether an existing
// clone is reused; a nil confirmer means always re-clone unless
// opts.ReuseCached is set.
func NewResolver(fsys types.FS, confirmer operations.Confirmer, opts Options) *Resolver {
	if opts.GitCommand == "" {
		opts.GitCommand = "git"
	}
	return &Resolver{fs: fsys, confirmer: confirmer, opts: opts, logger: logging.GetLogger("source")}
}

// Resolve returns the absolute local directory for src
func (r *Resolver) Resolve(ctx context.Context, src string) (string, error) {
	if IsGitURL(src) {
		return r.clone(ctx, src)
	}
	return r.local(src)
}

func (r *Resolver) local(src string) (string, error) {
	path, err := filepath.Abs(src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateNotFound, "invalid template path %s", src)
	}

	info, err := r.fs.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateNotFound, "template %s not found", src).
			WithDetail("template", src)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrTemplateNotFound, "template %s is not a directory", src).
			WithDetail("template", src)
	}

	r.logger.Debug().Str("path", path).Msg("Using local template")
	return path, nil
}

// CachePath returns where a repository is cloned
func (r *Resolver) CachePath(url string) string {
	return filepath.Join(r.opts.CacheDir, "templates", hashutil.ShortKey(url, 16))
}

func (r *Resolver) clone(ctx context.Context, url string) (string, error) {
	dest := r.CachePath(url)

	if _, err := r.fs.Stat(dest); err == nil {
		reuse := r.opts.ReuseCached
		if !reuse && r.confirmer != nil {
			reuse = r.confirmer.RequestConfirmation(
				dest,
				"Reuse previously downloaded template?",
				url+" was cloned before into "+dest,
			)
		}
		if reuse {
			r.logger.Info().Str("url", url).Str("path", dest).Msg("Reusing cached template")
			return dest, nil
		}
		if err := r.fs.RemoveAll(dest); err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to remove cached template %s", dest)
		}
	}

	if err := r.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create cache directory %s", filepath.Dir(dest))
	}

	r.logger.Info().Str("url", url).Str("path", dest).Msg("Cloning template")
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.opts.GitCommand, "clone", "--depth", "1", "--quiet", url, dest)
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateNotFound, "failed to clone %s", url).
			WithDetail("template", url).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}
	return dest, nil
}
