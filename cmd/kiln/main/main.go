package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/kiln/cmd/kiln"
	"github.com/arthur-debert/kiln/pkg/config"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := kiln.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logging.Close()
	if err == nil {
		return
	}

	renderer, rerr := output.NewRenderer(os.Stderr, output.ColorEnabled(config.Get().Output.Color, os.Stderr))
	if rerr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	} else {
		_ = renderer.RenderError(err)
	}
	if errors.GetErrorCode(err) == errors.ErrInvalidInput {
		fmt.Fprintln(os.Stderr)
		_ = rootCmd.Usage()
	}
	os.Exit(errors.ExitCode(err))
}
