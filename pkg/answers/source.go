package answers

import (
	"bytes"
	"encoding/json"

	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/tidwall/jsonc"
)

// Source names
const (
	SourceExplicit = "explicit"
	SourcePreHook  = "pre-hook"
)

// Source is a ranked supply of pre-determined answers. A source may hold
// only some keys; missing keys fall through to the next source.
type Source interface {
	Name() string
	Lookup(key string) (interface{}, bool)
}

// MapSource is a Source backed by a decoded JSON object
type MapSource struct {
	name   string
	values map[string]interface{}
}

// NewMapSource wraps values as a named source
func NewMapSource(name string, values map[string]interface{}) *MapSource {
	if values == nil {
		values = map[string]interface{}{}
	}
	return &MapSource{name: name, values: values}
}

// Name implements Source
func (s *MapSource) Name() string {
	return s.name
}

// Lookup implements Source. A JSON null counts as absent.
func (s *MapSource) Lookup(key string) (interface{}, bool) {
	v, ok := s.values[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Len returns the number of keys the source holds
func (s *MapSource) Len() int {
	return len(s.values)
}

// ParseJSON decodes a JSON object into a source. Blank input yields an
// empty source. Comments and trailing commas are accepted.
func ParseJSON(name string, data []byte) (*MapSource, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return NewMapSource(name, nil), nil
	}

	var values interface{}
	if err := json.Unmarshal(jsonc.ToJSON(trimmed), &values); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "%s answers are not valid JSON", name).
			WithDetail("source", name)
	}

	switch v := values.(type) {
	case nil:
		return NewMapSource(name, nil), nil
	case map[string]interface{}:
		return NewMapSource(name, v), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "%s answers must be a JSON object", name).
			WithDetail("source", name)
	}
}
