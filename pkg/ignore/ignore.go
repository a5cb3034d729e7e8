// Package ignore compiles template ignore patterns into a path predicate.
//
// Patterns use doublestar glob syntax and are matched against paths relative
// to the template root, always slash separated. A built-in set covering
// version control metadata, OS clutter and kiln's own control files is
// always active and cannot be overridden. User patterns follow gitignore
// conventions: a pattern without a slash matches at any depth, and a pattern
// matching a directory also matches everything beneath it.
package ignore

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kiln/pkg/constants"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns returns the built-in patterns that are always applied
func DefaultPatterns() []string {
	patterns := []string{
		".git", ".git/**",
		".hg", ".hg/**",
		".svn", ".svn/**",
		"**/.DS_Store",
		constants.IgnoreFile,
		constants.HooksDir, constants.HooksDir + "/**",
	}
	return append(patterns, constants.QuestionFiles...)
}

// Matcher is a compiled set of ignore patterns
type Matcher struct {
	defaults []string
	user     []string
}

// New compiles the built-in patterns plus the given user patterns
func New(userPatterns ...string) (*Matcher, error) {
	m := &Matcher{defaults: DefaultPatterns()}
	for _, p := range userPatterns {
		expanded, err := expand(p)
		if err != nil {
			return nil, err
		}
		m.user = append(m.user, expanded...)
	}
	return m, nil
}

func expand(pattern string) ([]string, error) {
	p := strings.TrimSpace(pattern)
	rooted := strings.HasPrefix(p, "/")
	p = strings.Trim(p, "/")
	if p == "" {
		return nil, nil
	}
	if !doublestar.ValidatePattern(p) {
		return nil, errors.Newf(errors.ErrIgnoreInvalid, "invalid ignore pattern %q", pattern).
			WithDetail("pattern", pattern)
	}

	if !rooted && !strings.Contains(p, "/") {
		p = "**/" + p
	}
	return []string{p, p + "/**"}, nil
}

// Parse reads newline-delimited patterns, skipping blank lines and comments
func Parse(data []byte) []string {
	var patterns []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// Load builds the matcher for a template root. A missing ignore file is not
// an error.
func Load(fsys types.FS, templateRoot string) (*Matcher, error) {
	logger := logging.GetLogger("ignore")
	ignorePath := filepath.Join(templateRoot, constants.IgnoreFile)

	data, err := fsys.ReadFile(ignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", ignorePath).Msg("No ignore file, using built-in patterns")
			return New()
		}
		return nil, errors.Wrapf(err, errors.ErrIgnoreInvalid, "failed to read %s", ignorePath)
	}

	patterns := Parse(data)
	logger.Debug().
		Str("path", ignorePath).
		Strs("patterns", patterns).
		Msg("Loaded ignore patterns")
	return New(patterns...)
}

// Match reports whether a template-relative path is ignored
func (m *Matcher) Match(rel string) bool {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." || rel == "" {
		return false
	}
	return matchAny(m.defaults, rel) || matchAny(m.user, rel)
}

// MatchesDefault reports whether rel is excluded by a built-in pattern
func (m *Matcher) MatchesDefault(rel string) bool {
	return matchAny(m.defaults, path.Clean(filepath.ToSlash(rel)))
}

// Patterns returns every compiled pattern, built-ins first
func (m *Matcher) Patterns() []string {
	out := make([]string, 0, len(m.defaults)+len(m.user))
	out = append(out, m.defaults...)
	return append(out, m.user...)
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
