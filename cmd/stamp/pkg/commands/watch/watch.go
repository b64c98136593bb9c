package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stamp-build/stamp/pkg/build"
	"github.com/stamp-build/stamp/pkg/log"
	"github.com/stamp-build/stamp/pkg/tsconfig"
	"github.com/stamp-build/stamp/pkg/watch"
)

type Cmd struct {
	cobraCommand *cobra.Command

	project  string
	tsconfig string
	license  string
	srcDirs  []string
	quiet    time.Duration
}

func New() *Cmd {
	return &Cmd{}
}

func (cmd *Cmd) CobraCommand() *cobra.Command {
	if cmd.cobraCommand != nil {
		return cmd.cobraCommand
	}

	cmd.cobraCommand = &cobra.Command{
		Use:   "watch",
		Short: "Rebuild whenever source files change",
	}
	cmd.cobraCommand.RunE = cmd.run

	flags := cmd.cobraCommand.Flags()
	flags.StringVarP(&cmd.project, "project", "p", ".", "project root directory")
	flags.StringVar(&cmd.tsconfig, "tsconfig", "", "path to the configuration document (defaults to <project>/tsconfig.json)")
	flags.StringVar(&cmd.license, "license", "", "path to the license header file (defaults to <project>/LICENSE)")
	flags.StringArrayVar(&cmd.srcDirs, "src", nil, "source directory to watch (repeatable, defaults to compilerOptions.rootDir or <project>/src)")
	flags.DurationVar(&cmd.quiet, "quiet", 300*time.Millisecond, "quiet period before rebuilding")

	return cmd.cobraCommand
}

func (c *Cmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	runner, err := build.NewRunner(build.Config{
		ProjectRoot:  c.project,
		TSConfigPath: c.tsconfig,
		LicensePath:  c.license,
		CompilerArgs: args,
	})
	if err != nil {
		return fmt.Errorf("error creating build runner: %w", err)
	}

	dirs, err := c.watchDirs()
	if err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Dirs:  dirs,
		Quiet: c.quiet,
		OnChange: func(ctx context.Context) error {
			_, err := runner.Run(ctx)
			return err
		},
	})
	if err != nil {
		return err
	}

	log.Info(ctx, "watching for changes", "dirs", dirs)

	// A first build so the output tree exists before any change lands.
	if _, err := runner.Run(ctx); err != nil {
		log.Error(ctx, "initial build failed", err)
	}

	err = w.Watch(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchDirs prefers explicit --src flags, then the configuration
// document's rootDir, then <project>/src.
func (c *Cmd) watchDirs() ([]string, error) {
	if len(c.srcDirs) != 0 {
		return c.srcDirs, nil
	}

	path := c.tsconfig
	if path == "" {
		path = filepath.Join(c.project, tsconfig.FileName)
	}

	conf, err := tsconfig.Load(afero.NewOsFs(), path)
	if err != nil {
		return nil, err
	}
	if conf.RootDir != "" {
		return []string{conf.RootDir}, nil
	}

	return []string{filepath.Join(c.project, "src")}, nil
}
