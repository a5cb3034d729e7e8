package answers

// Prompter asks the user for a single value. Implementations block until
// the user answers; a returned error is a terminal failure, not a bad value.
type Prompter interface {
	Text(prompt, defaultValue string) (string, error)
	// Secret reads a masked value, without echo or default
	Secret(prompt string) (string, error)
	Select(prompt string, choices []string, defaultIndex int) (string, error)
	MultiSelect(prompt string, choices []string, defaults []bool) ([]string, error)
	Confirm(prompt string, defaultValue bool) (bool, error)
	// ShowError reports a rejected value before the question is asked again
	ShowError(message string)
}
