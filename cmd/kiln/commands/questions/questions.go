package questions

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/kiln/pkg/commands"
	"github.com/arthur-debert/kiln/pkg/config"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/output"
)

// NewCommand creates the questions command
func NewCommand() *cobra.Command {
	var asJSON, details bool

	cmd := &cobra.Command{
		Use:     "questions TEMPLATE",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			cacheDir := cfg.Source.CacheDir
			if cacheDir == "" {
				cacheDir = filepath.Join(xdg.CacheHome, "kiln")
			}

			result, err := commands.ListQuestions(cmd.Context(), commands.ListQuestionsOptions{
				Template:    args[0],
				CacheDir:    cacheDir,
				GitCommand:  cfg.Source.GitCommand,
				ReuseCached: true,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return errors.Wrap(err, errors.ErrInternal, "failed to encode questions")
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			if len(result.Questions) == 0 {
				_, err := fmt.Fprintf(out, MsgNoQuestion, result.TemplateDir)
				return err
			}

			if details {
				color := output.ColorEnabled(cfg.Output.Color, out)
				_, err := fmt.Fprint(out, output.RenderMarkdown(detailsMarkdown(result), color, output.DefaultMarkdownWidth))
				return err
			}

			data := pterm.TableData{{"KEY", "KIND", "DEFAULT", "HELP"}}
			for _, q := range result.Questions {
				kind := q.Kind
				if q.Secret {
					kind += " (secret)"
				}
				if q.AskIf != "" {
					kind += " if " + q.AskIf
				}
				help := q.Help
				if len(q.Choices) > 0 {
					help = strings.TrimSpace(help + " [" + strings.Join(q.Choices, ", ") + "]")
				}
				data = append(data, []string{q.Key, kind, formatDefault(q.Default), help})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to render questions")
			}
			_, err = fmt.Fprintln(out, table)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	cmd.Flags().BoolVar(&details, "details", false, MsgFlagDetails)
	cmd.MarkFlagsMutuallyExclusive("json", "details")
	return cmd
}

func formatDefault(v interface{}) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Sprint(d)
		}
		return string(data)
	}
}

// detailsMarkdown lays out one section per question. Help text is kept as
// written so templates can use markdown in it.
func detailsMarkdown(result *commands.ListQuestionsResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Questions\n\nFrom `%s`.\n", result.QuestionFile)
	for _, q := range result.Questions {
		fmt.Fprintf(&b, "\n## %s\n\n", q.Key)
		if q.Help != "" {
			fmt.Fprintf(&b, "%s\n\n", q.Help)
		}
		kind := q.Kind
		if q.Secret {
			kind += ", secret"
		}
		fmt.Fprintf(&b, "- Kind: %s\n", kind)
		if len(q.Choices) > 0 {
			fmt.Fprintf(&b, "- Choices: %s\n", strings.Join(q.Choices, ", "))
		}
		if d := formatDefault(q.Default); d != "" {
			fmt.Fprintf(&b, "- Default: `%s`\n", d)
		}
		if q.AskIf != "" {
			fmt.Fprintf(&b, "- Asked when: `%s`\n", q.AskIf)
		}
		if q.Validated {
			b.WriteString("- Answer is validated\n")
		}
	}
	return b.String()
}
