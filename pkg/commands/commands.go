// Package commands provides the high-level command implementations for kiln.
//
// This package is the orchestration layer between the CLI and the
// generation packages. Each command lives in its own subdirectory:
//   - generate/      - Generate, the main template materialization
//   - listquestions/ - ListQuestions, for `kiln questions`
//   - genconfig/     - GenConfig, for `kiln config`
//
// This file re-exports the command functions so callers import one package.
package commands

import (
	"context"

	"github.com/arthur-debert/kiln/pkg/commands/genconfig"
	"github.com/arthur-debert/kiln/pkg/commands/generate"
	"github.com/arthur-debert/kiln/pkg/commands/listquestions"
)

// GenerateOptions configures a generation run.
type GenerateOptions = generate.Options

// GenerateResult describes a finished generation run.
type GenerateResult = generate.Result

// Generate materializes a template into an output directory.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return generate.Generate(ctx, opts)
}

// ListQuestionsOptions configures the questions command.
type ListQuestionsOptions = listquestions.Options

// ListQuestionsResult lists a template's questions.
type ListQuestionsResult = listquestions.Result

// ListQuestions loads a template's question set in evaluation order.
func ListQuestions(ctx context.Context, opts ListQuestionsOptions) (*ListQuestionsResult, error) {
	return listquestions.ListQuestions(ctx, opts)
}

// GenConfigOptions configures the config command.
type GenConfigOptions = genconfig.Options

// GenConfig prints the effective configuration or writes a defaults file.
func GenConfig(opts GenConfigOptions) (*genconfig.Result, error) {
	return genconfig.GenConfig(opts)
}
