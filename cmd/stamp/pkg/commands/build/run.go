package build

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stamp-build/stamp/pkg/build"
)

func (c *Cmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := c.validate(); err != nil {
		return fmt.Errorf("error validating build command: %w", err)
	}

	runner, err := build.NewRunner(build.Config{
		ProjectRoot:  c.project,
		TSConfigPath: c.tsconfig,
		LicensePath:  c.license,
		CompilerArgs: args,
		Assets:       c.assets,
		AssetDirs:    c.assetDirs,
	})
	if err != nil {
		return fmt.Errorf("error creating build runner: %w", err)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	output, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error marshaling build result: %w", err)
	}

	fmt.Println(string(output))

	return nil
}
