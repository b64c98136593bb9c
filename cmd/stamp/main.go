package main

import (
	"context"
	"os"
	"os/exec"
	"os/signal"

	"github.com/stamp-build/stamp/cmd/stamp/pkg/commands/root"
	"github.com/stamp-build/stamp/pkg/build"
	"github.com/stamp-build/stamp/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Make sure the TypeScript compiler is installed on the host
	if _, err := exec.LookPath("tsc"); err != nil {
		log.Error(ctx, "tsc binary not found in your $PATH", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error(ctx, "run failed", err)
		os.Exit(build.ExitCode(err))
	}
}
