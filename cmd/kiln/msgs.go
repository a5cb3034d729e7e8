package kiln

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate a project from a template directory"
	MsgRootUse         = "kiln [flags] TEMPLATE OUTPUT_DIR"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose            = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagForce              = "Allow writing into an existing output directory"
	MsgFlagSkipHooksCheck     = "Run template hooks without asking"
	MsgFlagSkipOverwriteCheck = "Overwrite existing files and reuse cached templates without asking"
	MsgFlagKeepExisting       = "Never overwrite existing files"
	MsgFlagContext            = "JSON object of answers, skipping their prompts"
	MsgFlagStdin              = "Read a JSON object of answers from stdin"
	MsgFlagNoInput            = "Never prompt; unanswered questions take their defaults"
	MsgFlagDryRun             = "Show what would be written without writing anything"
	MsgFlagWorkers            = "Files processed in parallel (0 = one per CPU)"
	MsgFlagTemplateSuffix     = "Suffix of files whose content is rendered"
	MsgFlagColor              = "Color output: auto, always or never"

	// Error messages
	MsgErrArgs       = "expected TEMPLATE and OUTPUT_DIR, got %d argument(s)"
	MsgErrLoadConfig = "failed to load configuration"

	// Status messages
	MsgVersionFormat = "kiln %s (commit %s, built %s)\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
