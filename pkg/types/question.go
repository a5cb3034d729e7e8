package types

// QuestionType is the declared type of a question
type QuestionType string

const (
	// QuestionTypeText is a free text or choice question
	QuestionTypeText QuestionType = "text"
	// QuestionTypeBool is a yes/no question
	QuestionTypeBool QuestionType = "bool"
)

// QuestionKind is the prompt shape derived from type, choices and multiselect
type QuestionKind int

const (
	KindText QuestionKind = iota
	KindSingleChoice
	KindMultipleChoice
	KindBoolean
)

// String returns the kind name used in logs
func (k QuestionKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindSingleChoice:
		return "single_choice"
	case KindMultipleChoice:
		return "multiple_choice"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Secret marks a text question whose input is masked
type Secret struct {
	// Confirm asks for the value twice
	Confirm bool
	// MismatchError is shown when the two entries differ
	MismatchError string
}

// DefaultMismatchError is used when a secret declares no mismatch message
const DefaultMismatchError = "Values do not match"

// MismatchMessage returns the configured mismatch message or the default one
func (s *Secret) MismatchMessage() string {
	if s == nil || s.MismatchError == "" {
		return DefaultMismatchError
	}
	return s.MismatchError
}

// Validation is an expression an answer must satisfy. The candidate answer is
// visible under the question's own key while Condition is evaluated.
type Validation struct {
	Condition    string
	ErrorMessage string
}

// Question is a single entry of a template's question set
type Question struct {
	Key         string
	Help        string
	Type        QuestionType
	Choices     []string
	Multiselect bool
	// Default is any JSON-like value, nil when absent
	Default    interface{}
	Secret     *Secret
	AskIf      string
	Validation *Validation
}

// Kind derives the prompt shape of the question
func (q Question) Kind() QuestionKind {
	if q.Type == QuestionTypeBool {
		return KindBoolean
	}
	if len(q.Choices) == 0 {
		return KindText
	}
	if q.Multiselect {
		return KindMultipleChoice
	}
	return KindSingleChoice
}

// Prompt returns the text shown to the user when help is empty
func (q Question) Prompt() string {
	if q.Help != "" {
		return q.Help
	}
	return q.Key
}

// QuestionSet is an ordered list of questions. Order is evaluation order.
type QuestionSet []Question

// Keys returns the question keys in order
func (s QuestionSet) Keys() []string {
	keys := make([]string, len(s))
	for i, q := range s {
		keys[i] = q.Key
	}
	return keys
}

// Lookup returns the question with the given key
func (s QuestionSet) Lookup(key string) (Question, bool) {
	for _, q := range s {
		if q.Key == key {
			return q, true
		}
	}
	return Question{}, false
}
