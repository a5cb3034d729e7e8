package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockPrompter is a testify mock of answers.Prompter
type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Text(prompt, defaultValue string) (string, error) {
	args := m.Called(prompt, defaultValue)
	return args.String(0), args.Error(1)
}

func (m *MockPrompter) Secret(prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}

func (m *MockPrompter) Select(prompt string, choices []string, defaultIndex int) (string, error) {
	args := m.Called(prompt, choices, defaultIndex)
	return args.String(0), args.Error(1)
}

func (m *MockPrompter) MultiSelect(prompt string, choices []string, defaults []bool) ([]string, error) {
	args := m.Called(prompt, choices, defaults)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	args := m.Called(prompt, defaultValue)
	return args.Bool(0), args.Error(1)
}

func (m *MockPrompter) ShowError(message string) {
	m.Called(message)
}

// MockConfirmer is a testify mock of operations.Confirmer. Expectations
// match on the request id and title.
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) RequestConfirmation(id, title, description string, items ...string) bool {
	args := m.Called(id, title)
	return args.Bool(0)
}
