package serve

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"
	"github.com/stamp-build/stamp/internal/server"
	"github.com/stamp-build/stamp/pkg/build"
	"github.com/stamp-build/stamp/pkg/log"
)

type Cmd struct {
	cobraCommand *cobra.Command

	project  string
	tsconfig string
	license  string
}

func New() *Cmd {
	return &Cmd{}
}

func (cmd *Cmd) CobraCommand() *cobra.Command {
	if cmd.cobraCommand != nil {
		return cmd.cobraCommand
	}

	cmd.cobraCommand = &cobra.Command{
		Use:   "serve",
		Short: "Serve built artifacts and a build trigger over HTTP",
		Long: "Serve exposes the output directory under /artifacts/, lets clients " +
			"trigger builds with POST /builds, and records build history. The port " +
			"and history database are configured with STAMP_PORT, STAMP_DBTYPE and " +
			"STAMP_DBCONNSTR.",
	}
	cmd.cobraCommand.RunE = cmd.run

	flags := cmd.cobraCommand.Flags()
	flags.StringVarP(&cmd.project, "project", "p", ".", "project root directory")
	flags.StringVar(&cmd.tsconfig, "tsconfig", "", "path to the configuration document (defaults to <project>/tsconfig.json)")
	flags.StringVar(&cmd.license, "license", "", "path to the license header file (defaults to <project>/LICENSE)")

	return cmd.cobraCommand
}

func (c *Cmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	conf := server.DefaultedConfig()

	runner, err := build.NewRunner(build.Config{
		ProjectRoot:  c.project,
		TSConfigPath: c.tsconfig,
		LicensePath:  c.license,
		CompilerArgs: args,
	})
	if err != nil {
		return fmt.Errorf("error creating build runner: %w", err)
	}

	outDir, err := runner.OutDir()
	if err != nil {
		return err
	}

	store, err := server.NewStore(conf.DbType, conf.DbConnStr)
	if err != nil {
		return err
	}

	s, err := server.NewServer(store, runner, outDir)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	log.Info(ctx, "listening for HTTP traffic", "port", conf.Port, "artifacts", outDir)

	return http.ListenAndServe(conf.Port,
		handlers.CORS(
			handlers.AllowedHeaders([]string{
				"X-Requested-With", "Content-Type", "Authorization", "Access-Control-Allow-Origin",
			}),
			handlers.AllowedMethods([]string{
				"GET", "POST", "HEAD", "OPTIONS",
			}),
			handlers.AllowedOrigins([]string{"*"}),
		)(s),
	)
}
