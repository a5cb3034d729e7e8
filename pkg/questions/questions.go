// Package questions loads a template's question-set file into an ordered
// types.QuestionSet. The file is a single object whose properties are the
// questions; property order is evaluation order.
package questions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kiln/pkg/constants"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/render"
	"github.com/arthur-debert/kiln/pkg/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

type rawSecret struct {
	Confirm     bool   `yaml:"confirm" json:"confirm"`
	MismatchErr string `yaml:"mismatch_err" json:"mismatch_err"`
	// Spelling accepted for templates written for older tools.
	MistmatchErr string `yaml:"mistmatch_err" json:"mistmatch_err"`
}

type rawValidation struct {
	Condition    string `yaml:"condition" json:"condition"`
	ErrorMessage string `yaml:"error_message" json:"error_message"`
}

type rawQuestion struct {
	Help        string         `yaml:"help" json:"help"`
	Type        string         `yaml:"type" json:"type"`
	Default     interface{}    `yaml:"default" json:"default"`
	Choices     []string       `yaml:"choices" json:"choices"`
	Multiselect bool           `yaml:"multiselect" json:"multiselect"`
	Secret      *rawSecret     `yaml:"secret" json:"secret"`
	AskIf       string         `yaml:"ask_if" json:"ask_if"`
	Validation  *rawValidation `yaml:"validation" json:"validation"`
}

// Find returns the path of the first question-set file present in root
func Find(fsys types.FS, root string) (string, error) {
	for _, name := range constants.QuestionFiles {
		candidate := filepath.Join(root, name)
		if _, err := fsys.Stat(candidate); err == nil {
			return candidate, nil
		} else if !os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to access %s", candidate)
		}
	}
	return "", errors.Newf(errors.ErrConfigLoad,
		"no question file found in %s (tried: %s)", root, strings.Join(constants.QuestionFiles, ", ")).
		WithDetail("template_dir", root)
}

// Load finds and parses the question set of a template root
func Load(fsys types.FS, root string) (types.QuestionSet, error) {
	logger := logging.GetLogger("questions")

	path, err := Find(fsys, root)
	if err != nil {
		return nil, err
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}

	set, err := Parse(data, filepath.Ext(path))
	if err != nil {
		if kerr, ok := err.(*errors.KilnError); ok {
			return nil, kerr.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Strs("keys", set.Keys()).
		Msg("Loaded question set")
	return set, nil
}

// Parse decodes a question set. ext selects the format: ".json" for JSON
// (comments and trailing commas allowed), anything else for YAML.
func Parse(data []byte, ext string) (types.QuestionSet, error) {
	var (
		keys []string
		raws []rawQuestion
		err  error
	)
	if strings.EqualFold(ext, ".json") {
		keys, raws, err = parseJSON(data)
	} else {
		keys, raws, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	set := make(types.QuestionSet, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for i, key := range keys {
		if seen[key] {
			return nil, errors.Newf(errors.ErrConfigParse, "duplicate question %q", key).
				WithDetail("key", key)
		}
		seen[key] = true

		q, err := convert(key, raws[i])
		if err != nil {
			return nil, err
		}
		set = append(set, q)
	}
	return set, nil
}

func parseJSON(data []byte) ([]string, []rawQuestion, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrConfigParse, "invalid JSON question file")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New(errors.ErrConfigParse, "question file must contain a JSON object")
	}

	var (
		keys []string
		raws []rawQuestion
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrConfigParse, "invalid JSON question file")
		}
		key := tok.(string)

		var raw rawQuestion
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid question %q", key)
		}
		keys = append(keys, key)
		raws = append(raws, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrConfigParse, "invalid JSON question file")
	}
	return keys, raws, nil
}

func parseYAML(data []byte) ([]string, []rawQuestion, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrConfigParse, "invalid YAML question file")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, errors.New(errors.ErrConfigParse, "question file must contain a mapping")
	}

	var (
		keys []string
		raws []rawQuestion
	)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		var raw rawQuestion
		if err := valueNode.Decode(&raw); err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid question %q (line %d)", keyNode.Value, keyNode.Line)
		}
		keys = append(keys, keyNode.Value)
		raws = append(raws, raw)
	}
	return keys, raws, nil
}

func convert(key string, raw rawQuestion) (types.Question, error) {
	if strings.TrimSpace(key) == "" {
		return types.Question{}, errors.New(errors.ErrConfigInvalid, "question key must not be empty")
	}
	if !render.IsIdentifier(key) {
		return types.Question{}, errors.Newf(errors.ErrConfigInvalid,
			"question key %q must be letters, digits and underscores, not starting with a digit", key).
			WithDetail("key", key)
	}

	qtype, err := parseType(raw.Type)
	if err != nil {
		return types.Question{}, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid question %q", key).
			WithDetail("key", key)
	}

	q := types.Question{
		Key:         key,
		Help:        raw.Help,
		Type:        qtype,
		Choices:     raw.Choices,
		Multiselect: raw.Multiselect,
		Default:     raw.Default,
		AskIf:       raw.AskIf,
	}

	if raw.Secret != nil {
		if q.Kind() != types.KindText {
			return types.Question{}, errors.Newf(errors.ErrConfigInvalid, "question %q: secret is only valid for free text questions", key)
		}
		mismatch := raw.Secret.MismatchErr
		if mismatch == "" {
			mismatch = raw.Secret.MistmatchErr
		}
		q.Secret = &types.Secret{Confirm: raw.Secret.Confirm, MismatchError: mismatch}
	}

	if raw.Validation != nil && strings.TrimSpace(raw.Validation.Condition) != "" {
		q.Validation = &types.Validation{
			Condition:    raw.Validation.Condition,
			ErrorMessage: raw.Validation.ErrorMessage,
		}
	}

	return q, nil
}

func parseType(value string) (types.QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "str", "string", "text":
		return types.QuestionTypeText, nil
	case "bool", "boolean":
		return types.QuestionTypeBool, nil
	default:
		return "", fmt.Errorf("unknown question type %q", value)
	}
}
