package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/toolstrap/cmd/toolstrap"
	"github.com/arthur-debert/toolstrap/pkg/ui/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := toolstrap.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil && !toolstrap.IsReported(err) {
		// Print the error in red
		fmt.Fprintln(os.Stderr, styles.Default().Render("Error", fmt.Sprintf("Error: %v", err)))
	}
	os.Exit(toolstrap.ExitCode(err))
}
