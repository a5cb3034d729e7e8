package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/kiln/cmd/kiln"
	"github.com/arthur-debert/kiln/internal/version"
)

func main() {
	rootCmd := kiln.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "KILN",
		Section: "1",
		Source:  "kiln " + version.Version,
		Manual:  "kiln manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
