package kiln

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	configcmd "github.com/arthur-debert/kiln/cmd/kiln/commands/config"
	"github.com/arthur-debert/kiln/cmd/kiln/commands/questions"
	"github.com/arthur-debert/kiln/internal/version"
	"github.com/arthur-debert/kiln/pkg/commands"
	"github.com/arthur-debert/kiln/pkg/config"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/output"
	"github.com/arthur-debert/kiln/pkg/prompt"
)

// generateFlags are the root command's own flags
type generateFlags struct {
	force              bool
	skipHooksCheck     bool
	skipOverwriteCheck bool
	keepExisting       bool
	context            string
	stdin              bool
	noInput            bool
	dryRun             bool
}

// configFlags maps flags that override configuration keys
var configFlags = map[string]string{
	"workers":         "workers",
	"template-suffix": "template_suffix",
	"color":           "output.color",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		flags     generateFlags
	)

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(2),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			cfg, err := config.Load(configOverrides(cmd.Flags()))
			if err != nil {
				return err
			}
			config.Initialize(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return cmd.Help()
			case 1:
				return errors.Newf(errors.ErrInvalidInput, MsgErrArgs, len(args))
			}
			return runGenerate(cmd, args[0], args[1], flags, verbosity)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(MsgVersionFormat, version.Version, version.Commit, version.Date))
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	pf.String("color", config.ColorAuto, MsgFlagColor)

	// Generation flags
	f := rootCmd.Flags()
	f.BoolVarP(&flags.force, "force", "f", false, MsgFlagForce)
	f.BoolVar(&flags.skipHooksCheck, "skip-hooks-check", false, MsgFlagSkipHooksCheck)
	f.BoolVar(&flags.skipOverwriteCheck, "skip-overwrite-check", false, MsgFlagSkipOverwriteCheck)
	f.BoolVar(&flags.keepExisting, "keep-existing", false, MsgFlagKeepExisting)
	f.StringVarP(&flags.context, "context", "c", "", MsgFlagContext)
	f.BoolVar(&flags.stdin, "stdin", false, MsgFlagStdin)
	f.BoolVar(&flags.noInput, "no-input", false, MsgFlagNoInput)
	f.BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	f.Int("workers", 0, MsgFlagWorkers)
	f.String("template-suffix", "", MsgFlagTemplateSuffix)

	rootCmd.AddCommand(questions.NewCommand())
	rootCmd.AddCommand(configcmd.NewCommand())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// configOverrides collects the configuration keys set on the command line
func configOverrides(fs *pflag.FlagSet) map[string]interface{} {
	overrides := map[string]interface{}{}
	for name, key := range configFlags {
		flag := fs.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		overrides[key] = flag.Value.String()
	}
	return overrides
}

func runGenerate(cmd *cobra.Command, template, outputDir string, flags generateFlags, verbosity int) error {
	logger := logging.GetLogger("cmd.generate")
	cfg := config.Get()

	var stdin io.Reader
	if flags.stdin {
		stdin = cmd.InOrStdin()
	}

	cacheDir := cfg.Source.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(xdg.CacheHome, "kiln")
	}

	logger.Info().
		Str("template", template).
		Str("output", outputDir).
		Bool("dryRun", flags.dryRun).
		Bool("force", flags.force).
		Msg("Starting generation")

	result, err := commands.Generate(cmd.Context(), commands.GenerateOptions{
		Template:           template,
		OutputDir:          outputDir,
		Force:              flags.force,
		SkipHooksCheck:     flags.skipHooksCheck,
		SkipOverwriteCheck: flags.skipOverwriteCheck,
		KeepExisting:       flags.keepExisting,
		DryRun:             flags.dryRun,
		Context:            flags.context,
		Stdin:              stdin,
		Interactive:        !flags.noInput && prompt.IsInteractive(),
		TemplateSuffix:     cfg.TemplateSuffix,
		Workers:            cfg.EffectiveWorkers(),
		MaxAttempts:        cfg.MaxAttempts,
		HookTimeout:        cfg.Hooks.Timeout,
		CacheDir:           cacheDir,
		GitCommand:         cfg.Source.GitCommand,
		HookStdout:         cmd.OutOrStdout(),
		HookStderr:         cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer, err := output.NewRenderer(out, output.ColorEnabled(cfg.Output.Color, out))
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create renderer")
	}
	summary := output.NewSummary(result.OutputDir, result.DryRun, result.Report)
	summary.Verbose = verbosity > 0
	return renderer.Render(summary)
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}
