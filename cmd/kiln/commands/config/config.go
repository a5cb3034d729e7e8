package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/kiln/pkg/commands"
	kilnconfig "github.com/arthur-debert/kiln/pkg/config"
)

// NewCommand creates the config command
func NewCommand() *cobra.Command {
	var (
		write    bool
		defaults bool
	)

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.GenConfigOptions{Write: write}
			if !defaults {
				opts.Config = kilnconfig.Get()
			}

			result, err := commands.GenConfig(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !write {
				_, err = fmt.Fprintln(out, strings.TrimRight(result.Content, "\n"))
				return err
			}
			if len(result.FilesWritten) == 0 {
				_, err = fmt.Fprintf(out, MsgExists, kilnconfig.UserConfigPath())
				return err
			}
			for _, path := range result.FilesWritten {
				if _, err := fmt.Fprintf(out, MsgWritten, path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}
