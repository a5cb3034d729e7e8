// Command kiln-completions writes shell completion scripts for kiln.
//
//	kiln-completions bash            print one script to stdout
//	kiln-completions --dir DIR       write every script into DIR
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/kiln/cmd/kiln"
)

type generator struct {
	file string
	gen  func(cmd *cobra.Command, w io.Writer) error
}

var generators = map[string]generator{
	"bash": {"kiln.bash", func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) }},
	"zsh":  {"_kiln", func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) }},
	"fish": {"kiln.fish", func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) }},
	"powershell": {"kiln.ps1", func(c *cobra.Command, w io.Writer) error {
		return c.GenPowerShellCompletionWithDesc(w)
	}},
}

func shells() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	switch {
	case len(args) == 2 && args[0] == "--dir":
		return writeAll(args[1])
	case len(args) == 1:
		g, ok := generators[args[0]]
		if !ok {
			return fmt.Errorf("unknown shell %q, supported: %v", args[0], shells())
		}
		return g.gen(kiln.NewRootCmd(), os.Stdout)
	default:
		return fmt.Errorf("usage: kiln-completions <%v> | --dir DIR", shells())
	}
}

func writeAll(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, name := range shells() {
		g := generators[name]
		f, err := os.Create(filepath.Join(dir, g.file))
		if err != nil {
			return err
		}
		genErr := g.gen(kiln.NewRootCmd(), f)
		closeErr := f.Close()
		if genErr != nil {
			return fmt.Errorf("generating %s completion: %w", name, genErr)
		}
		if closeErr != nil {
			return closeErr
		}
	}
	return nil
}
