// Package listquestions implements `kiln questions`, which shows a
// template's question set without generating anything.
package listquestions

import (
	"context"

	"github.com/arthur-debert/kiln/pkg/filesystem"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/operations"
	"github.com/arthur-debert/kiln/pkg/prompt"
	"github.com/arthur-debert/kiln/pkg/questions"
	"github.com/arthur-debert/kiln/pkg/source"
	"github.com/arthur-debert/kiln/pkg/types"
)

// Options defines the options for the questions command
type Options struct {
	Template   string
	CacheDir   string
	GitCommand string
	// ReuseCached reuses a cloned template without asking
	ReuseCached bool
	FileSystem  types.FS
	Confirmer   operations.Confirmer
}

// Entry is one question as shown to the user
type Entry struct {
	Key       string      `json:"key"`
	Kind      string      `json:"kind"`
	Help      string      `json:"help,omitempty"`
	Choices   []string    `json:"choices,omitempty"`
	Default   interface{} `json:"default,omitempty"`
	Secret    bool        `json:"secret,omitempty"`
	AskIf     string      `json:"ask_if,omitempty"`
	Validated bool        `json:"validated,omitempty"`
}

// Result lists a template's questions in evaluation order
type Result struct {
	TemplateDir  string  `json:"template_dir"`
	QuestionFile string  `json:"question_file"`
	Questions    []Entry `json:"questions"`
}

// ListQuestions resolves a template and loads its question set
func ListQuestions(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.listquestions")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	confirmer := opts.Confirmer
	if confirmer == nil {
		confirmer = prompt.Fixed(true)
	}

	resolver := source.NewResolver(fsys, confirmer, source.Options{
		CacheDir:    opts.CacheDir,
		GitCommand:  opts.GitCommand,
		ReuseCached: opts.ReuseCached,
	})
	templateDir, err := resolver.Resolve(ctx, opts.Template)
	if err != nil {
		return nil, err
	}

	file, err := questions.Find(fsys, templateDir)
	if err != nil {
		return nil, err
	}
	set, err := questions.Load(fsys, templateDir)
	if err != nil {
		return nil, err
	}

	result := &Result{TemplateDir: templateDir, QuestionFile: file, Questions: make([]Entry, 0, len(set))}
	for _, q := range set {
		result.Questions = append(result.Questions, Entry{
			Key:       q.Key,
			Kind:      q.Kind().String(),
			Help:      q.Help,
			Choices:   q.Choices,
			Default:   q.Default,
			Secret:    q.Secret != nil,
			AskIf:     q.AskIf,
			Validated: q.Validation != nil,
		})
	}

	log.Debug().Int("count", len(result.Questions)).Str("template", templateDir).Msg("Loaded questions")
	return result, nil
}
