package build

import (
	"errors"

	"github.com/spf13/cobra"
)

type Cmd struct {
	cobraCommand *cobra.Command

	project   string
	tsconfig  string
	license   string
	assets    []string
	assetDirs []string
}

func New() *Cmd {
	return &Cmd{}
}

func (cmd *Cmd) CobraCommand() *cobra.Command {
	if cmd.cobraCommand != nil {
		return cmd.cobraCommand
	}

	cmd.cobraCommand = &cobra.Command{
		Use:   "build [-- compiler args]",
		Short: "Compile once and normalize the output tree",
	}
	cmd.cobraCommand.RunE = cmd.run

	flags := cmd.cobraCommand.Flags()
	flags.StringVarP(&cmd.project, "project", "p", ".", "project root directory")
	flags.StringVar(&cmd.tsconfig, "tsconfig", "", "path to the configuration document (defaults to <project>/tsconfig.json)")
	flags.StringVar(&cmd.license, "license", "", "path to the license header file (defaults to <project>/LICENSE)")
	flags.StringArrayVar(&cmd.assets, "asset", nil, "file to copy into the output root after normalization (repeatable)")
	flags.StringArrayVar(&cmd.assetDirs, "asset-dir", nil, "directory to source assets from (repeatable, defaults to the project root)")

	return cmd.cobraCommand
}

func (cmd *Cmd) validate() error {
	if cmd.cobraCommand == nil {
		return errors.New("cobraCommand is required")
	}
	return nil
}
