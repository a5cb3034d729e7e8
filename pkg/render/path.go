package render

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kiln/pkg/errors"
)

// PathSegments renders each segment of a slash or OS separated relative
// path. The returned slice is positionally aligned with the source
// segments so callers can check for segments that collapsed to nothing.
func PathSegments(r Renderer, rel string, ctx map[string]interface{}) (source, rendered []string, err error) {
	rel = filepath.ToSlash(rel)
	if rel == "" || rel == "." {
		return nil, nil, nil
	}

	source = strings.Split(rel, "/")
	rendered = make([]string, len(source))
	for i, seg := range source {
		out, err := r.Render(seg, ctx)
		if err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrTemplateRender, "failed to render path segment %q of %s", seg, rel)
		}
		rendered[i] = out
	}
	return source, rendered, nil
}
