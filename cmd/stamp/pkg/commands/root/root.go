package root

import (
	"context"

	"github.com/spf13/cobra"
	buildcmd "github.com/stamp-build/stamp/cmd/stamp/pkg/commands/build"
	"github.com/stamp-build/stamp/cmd/stamp/pkg/commands/serve"
	"github.com/stamp-build/stamp/cmd/stamp/pkg/commands/watch"
	"github.com/stamp-build/stamp/pkg/log"
)

type rootCommand struct {
	cobra.Command

	verbose bool
}

func ExecuteContext(ctx context.Context) error {
	var (
		root rootCommand
		cmd  = &root.Command
	)

	root.Use = "stamp"
	root.Short = "Compile a TypeScript package and stamp license headers onto its artifacts"
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "emit debug logs")
	root.PersistentPreRun = func(*cobra.Command, []string) {
		if root.verbose {
			log.SetVerbose()
		}
	}

	root.setSubCommands()

	err := cmd.ExecuteContext(ctx)
	return err
}

func (root *rootCommand) setSubCommands() {
	for _, cmd := range subCommands() {
		root.AddCommand(cmd)
	}
}

func subCommands() []*cobra.Command {
	return []*cobra.Command{
		buildcmd.New().CobraCommand(),
		watch.New().CobraCommand(),
		serve.New().CobraCommand(),
	}
}
