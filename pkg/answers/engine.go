package answers

import (
	"github.com/arthur-debert/kiln/pkg/constants"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/render"
	"github.com/arthur-debert/kiln/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures an Engine
type Options struct {
	// Interactive enables prompting. When false every question that no
	// source answers takes its default.
	Interactive bool

	// MaxAttempts bounds how often a rejected value is asked again
	MaxAttempts int
}

// Engine resolves question sets into answer contexts
type Engine struct {
	renderer render.Renderer
	prompter Prompter
	opts     Options
	logger   zerolog.Logger
}

// NewEngine creates an engine. prompter may be nil when opts.Interactive
// is false.
func NewEngine(r render.Renderer, p Prompter, opts Options) *Engine {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = constants.DefaultMaxAttempts
	}
	return &Engine{
		renderer: r,
		prompter: p,
		opts:     opts,
		logger:   logging.GetLogger("answers"),
	}
}

// Resolve builds the answer context for set. Sources are consulted in the
// order given, highest precedence first. The returned answers are frozen.
func (e *Engine) Resolve(set types.QuestionSet, sources ...Source) (*types.Answers, error) {
	answers := types.NewAnswers()

	for _, q := range set {
		visible := answers.Map()

		value, origin, err := e.resolveOne(q, visible, sources)
		if err != nil {
			return nil, err
		}

		if err := answers.Set(q.Key, value); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to record answer")
		}
		e.logger.Debug().
			Str("key", q.Key).
			Str("kind", q.Kind().String()).
			Str("origin", origin).
			Msg("Resolved answer")
	}

	answers.Freeze()
	return answers, nil
}

func (e *Engine) resolveOne(q types.Question, visible map[string]interface{}, sources []Source) (interface{}, string, error) {
	ask, err := e.renderer.Evaluate(q.AskIf, visible)
	if err != nil {
		e.logger.Debug().Err(err).Str("key", q.Key).Msg("ask_if failed to evaluate, asking")
		ask = true
	}

	def := ResolveDefault(e.renderer, q, visible)
	if !ask {
		return def.Value(q), "skipped", nil
	}

	for _, src := range sources {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(q.Key); ok {
			if msg, ok := e.validate(q, v, visible); !ok {
				return nil, "", validationError(q, msg, src.Name())
			}
			return v, src.Name(), nil
		}
	}

	if !e.opts.Interactive || e.prompter == nil {
		v := def.Answer(q)
		if msg, ok := e.validate(q, v, visible); !ok {
			return nil, "", validationError(q, msg, "default")
		}
		return v, "default", nil
	}

	help := e.help(q, visible)
	var lastErr error
	for attempt := 1; attempt <= e.opts.MaxAttempts; attempt++ {
		v, err := e.ask(q, help, def)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrValidation) {
				lastErr = err
				msg, _ := errors.GetErrorDetails(err)["message"].(string)
				e.prompter.ShowError(msg)
				continue
			}
			return nil, "", err
		}

		if msg, ok := e.validate(q, v, visible); !ok {
			lastErr = validationError(q, msg, "prompt")
			e.prompter.ShowError(msg)
			continue
		}
		return v, "prompt", nil
	}

	return nil, "", errors.Wrapf(lastErr, errors.ErrValidation,
		"no valid answer for %q after %d attempts", q.Key, e.opts.MaxAttempts).
		WithDetail("key", q.Key)
}

func (e *Engine) help(q types.Question, visible map[string]interface{}) string {
	if q.Help == "" {
		return q.Key
	}
	out, err := e.renderer.Render(q.Help, visible)
	if err != nil {
		e.logger.Debug().Err(err).Str("key", q.Key).Msg("help failed to render, using raw text")
		return q.Help
	}
	if out == "" {
		return q.Key
	}
	return out
}

func (e *Engine) ask(q types.Question, help string, def Default) (interface{}, error) {
	var (
		v   interface{}
		err error
	)

	switch q.Kind() {
	case types.KindSingleChoice:
		v, err = e.prompter.Select(help, q.Choices, def.Index)
	case types.KindMultipleChoice:
		v, err = e.prompter.MultiSelect(help, q.Choices, def.Selected)
	case types.KindBoolean:
		v, err = e.prompter.Confirm(help, def.Bool)
	default:
		if q.Secret != nil {
			return e.askSecret(q, help)
		}
		v, err = e.prompter.Text(help, def.Text)
	}

	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPrompt, "failed to read answer for %q", q.Key)
	}
	return v, nil
}

func (e *Engine) askSecret(q types.Question, help string) (interface{}, error) {
	first, err := e.prompter.Secret(help)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPrompt, "failed to read answer for %q", q.Key)
	}
	if !q.Secret.Confirm {
		return first, nil
	}

	second, err := e.prompter.Secret(help + " (confirm)")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPrompt, "failed to read answer for %q", q.Key)
	}
	if first != second {
		return nil, validationError(q, q.Secret.MismatchMessage(), "prompt")
	}
	return first, nil
}

// validate checks the question's validation condition with the candidate
// visible under the question's own key
func (e *Engine) validate(q types.Question, v interface{}, visible map[string]interface{}) (string, bool) {
	if q.Validation == nil {
		return "", true
	}

	ctx := make(map[string]interface{}, len(visible)+1)
	for k, val := range visible {
		ctx[k] = val
	}
	ctx[q.Key] = v

	ok, err := e.renderer.Evaluate(q.Validation.Condition, ctx)
	if err != nil {
		e.logger.Warn().Err(err).Str("key", q.Key).Msg("validation condition failed to evaluate, accepting value")
		return "", true
	}
	if ok {
		return "", true
	}

	msg := q.Validation.ErrorMessage
	if msg == "" {
		msg = "Invalid value for " + q.Key
	}
	return msg, false
}

func validationError(q types.Question, msg, origin string) error {
	return errors.Newf(errors.ErrValidation, "invalid answer for %q: %s", q.Key, msg).
		WithDetail("key", q.Key).
		WithDetail("message", msg).
		WithDetail("origin", origin)
}
