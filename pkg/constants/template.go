// Package constants provides shared constants used across the kiln codebase.
// This package has no dependencies to avoid circular imports.
package constants

// QuestionFiles are the question-set file names looked up in a template
// root, in lookup order. The first one found wins.
var QuestionFiles = []string{"kiln.json", "kiln.yml", "kiln.yaml"}

const (
	// IgnoreFile holds user ignore patterns, one per line
	IgnoreFile = ".kilnignore"

	// HooksDir is the template-relative directory holding lifecycle hooks
	HooksDir = "hooks"

	// PreHook runs before answers are resolved
	PreHook = "pre_gen_project"

	// PostHook runs after the output tree is materialized
	PostHook = "post_gen_project"

	// DefaultTemplateSuffix marks files whose content is rendered
	DefaultTemplateSuffix = ".tmpl"

	// DefaultMaxAttempts bounds re-prompting after a validation failure
	DefaultMaxAttempts = 3

	// EnvPrefix prefixes every environment variable kiln reads
	EnvPrefix = "KILN_"
)
