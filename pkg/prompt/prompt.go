// Package prompt provides the terminal implementations of the interactive
// seams: answers.Prompter for questions and the Confirmer used before
// overwriting files, running hooks or replacing cached templates.
package prompt

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// IsInteractive reports whether stdin is attached to a terminal
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Terminal prompts on the controlling terminal using pterm
type Terminal struct{}

// NewTerminal creates a terminal prompter
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Text asks for free text, prefilled with defaultValue
func (t *Terminal) Text(prompt, defaultValue string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultValue).
		Show(prompt)
}

// Secret asks for a masked value
func (t *Terminal) Secret(prompt string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithMask("*").
		Show(prompt)
}

// Select asks for one of choices
func (t *Terminal) Select(prompt string, choices []string, defaultIndex int) (string, error) {
	printer := pterm.DefaultInteractiveSelect.WithOptions(choices)
	if defaultIndex >= 0 && defaultIndex < len(choices) {
		printer = printer.WithDefaultOption(choices[defaultIndex])
	}
	return printer.Show(prompt)
}

// MultiSelect asks for any subset of choices
func (t *Terminal) MultiSelect(prompt string, choices []string, defaults []bool) ([]string, error) {
	var preselected []string
	for i, on := range defaults {
		if on && i < len(choices) {
			preselected = append(preselected, choices[i])
		}
	}
	selected, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(choices).
		WithDefaultOptions(preselected).
		Show(prompt)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		selected = []string{}
	}
	return selected, nil
}

// Confirm asks a yes/no question
func (t *Terminal) Confirm(prompt string, defaultValue bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultValue).
		Show(prompt)
}

// ShowError prints a rejected-value message
func (t *Terminal) ShowError(message string) {
	pterm.Error.Println(message)
}

// RequestConfirmation asks the user to approve a destructive step. Any
// terminal failure counts as a refusal.
func (t *Terminal) RequestConfirmation(id, title, description string, items ...string) bool {
	if description != "" {
		pterm.Warning.Println(description)
	}
	if len(items) > 0 {
		shown := items
		if len(shown) > 5 {
			shown = shown[:5]
		}
		pterm.Println("  " + strings.Join(shown, "\n  "))
		if len(items) > len(shown) {
			pterm.Printf("  and %d more\n", len(items)-len(shown))
		}
	}

	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(title)
	if err != nil {
		return false
	}
	return ok
}

// Fixed is a Confirmer that always gives the same answer, used for
// non-interactive runs
type Fixed bool

// RequestConfirmation implements the confirmer interface
func (f Fixed) RequestConfirmation(id, title, description string, items ...string) bool {
	return bool(f)
}
