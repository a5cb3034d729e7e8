package answers

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/kiln/pkg/render"
	"github.com/arthur-debert/kiln/pkg/types"
)

// Default is the type-specific default of a question in the shape its
// prompt takes
type Default struct {
	Text     string
	Index    int
	Selected []bool
	Bool     bool
}

// ResolveDefault computes the default of q against the visible answers.
// Malformed defaults degrade to the zero value of the question's kind.
func ResolveDefault(r render.Renderer, q types.Question, visible map[string]interface{}) Default {
	switch q.Kind() {
	case types.KindSingleChoice:
		return Default{Index: choiceIndex(q)}
	case types.KindMultipleChoice:
		return Default{Selected: selectedChoices(q)}
	case types.KindBoolean:
		return Default{Bool: CoerceBool(q.Default)}
	default:
		s, ok := q.Default.(string)
		if !ok {
			return Default{}
		}
		out, err := r.Render(s, visible)
		if err != nil {
			return Default{}
		}
		return Default{Text: out}
	}
}

// Value is the default in its resolved shape: the index for a single
// choice, one bool per choice for a multiple choice. Questions skipped by
// ask_if store this value.
func (d Default) Value(q types.Question) interface{} {
	switch q.Kind() {
	case types.KindSingleChoice:
		return d.Index
	case types.KindMultipleChoice:
		selected := make([]bool, len(q.Choices))
		copy(selected, d.Selected)
		return selected
	case types.KindBoolean:
		return d.Bool
	default:
		return d.Text
	}
}

// Answer converts the default to the value stored in the answer context:
// the label for a single choice, the selected labels for a multiple choice
func (d Default) Answer(q types.Question) interface{} {
	switch q.Kind() {
	case types.KindSingleChoice:
		if d.Index >= 0 && d.Index < len(q.Choices) {
			return q.Choices[d.Index]
		}
		return ""
	case types.KindMultipleChoice:
		labels := []string{}
		for i, on := range d.Selected {
			if on && i < len(q.Choices) {
				labels = append(labels, q.Choices[i])
			}
		}
		return labels
	case types.KindBoolean:
		return d.Bool
	default:
		return d.Text
	}
}

func choiceIndex(q types.Question) int {
	s, ok := q.Default.(string)
	if !ok {
		return 0
	}
	for i, c := range q.Choices {
		if c == s {
			return i
		}
	}
	return 0
}

func selectedChoices(q types.Question) []bool {
	chosen := map[string]bool{}
	switch v := q.Default.(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				chosen[s] = true
			}
		}
	case []string:
		for _, s := range v {
			chosen[s] = true
		}
	case map[string]interface{}:
		for k := range v {
			chosen[k] = true
		}
	}

	selected := make([]bool, len(q.Choices))
	for i, c := range q.Choices {
		selected[i] = chosen[c]
	}
	return selected
}

// CoerceBool interprets a JSON-like value as a boolean
func CoerceBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "1", "on":
			return true
		}
		return false
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(b) != "0"
	case float32:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}
