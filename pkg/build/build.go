package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/stamp-build/stamp/pkg/compiler"
	"github.com/stamp-build/stamp/pkg/compiler/tsc"
	"github.com/stamp-build/stamp/pkg/license"
	"github.com/stamp-build/stamp/pkg/log"
	"github.com/stamp-build/stamp/pkg/normalize"
	"github.com/stamp-build/stamp/pkg/tsconfig"
)

// ExitError carries the status the process should exit with: the
// compiler's own status when the compiler failed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("compiler exited with status %d", e.Code)
}

type Config struct {
	// ProjectRoot is the directory holding the configuration document
	// and license file. Defaults to the working directory.
	ProjectRoot string
	// TSConfigPath overrides the default <ProjectRoot>/tsconfig.json.
	TSConfigPath string
	// LicensePath overrides the default <ProjectRoot>/LICENSE.
	LicensePath string
	// TempRoot is where staging directories are created.
	// Defaults to the platform temp root.
	TempRoot string

	// CompilerArgs are passed through to the compiler after the output
	// directory argument.
	CompilerArgs []string

	// Assets are file names materialized into the output root after
	// normalization, sourced from AssetDirs (or ProjectRoot when none
	// are given).
	Assets    []string
	AssetDirs []string

	// FS defaults to the host filesystem.
	FS afero.Fs
	// Runner defaults to an ExecRunner.
	Runner ProcessRunner
	// Compiler defaults to tsc.
	Compiler compiler.Compiler
}

func (c *Config) validate() error {
	if c.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("error finding working directory: %w", err)
		}
		c.ProjectRoot = wd
	}

	if c.TSConfigPath == "" {
		c.TSConfigPath = filepath.Join(c.ProjectRoot, tsconfig.FileName)
	}

	if c.LicensePath == "" {
		c.LicensePath = filepath.Join(c.ProjectRoot, "LICENSE")
	}

	if c.TempRoot == "" {
		c.TempRoot = os.TempDir()
	}

	if c.FS == nil {
		c.FS = afero.NewOsFs()
	}

	if c.Runner == nil {
		c.Runner = &ExecRunner{}
	}

	if c.Compiler == nil {
		c.Compiler = tsc.Compiler
	}

	return nil
}

// Result describes one completed run.
type Result struct {
	OutDir    string        `json:"outDir"`
	FileCount int           `json:"fileCount"`
	Duration  time.Duration `json:"duration"`
}

// Runner performs one-shot builds: resolve the output directory from
// configuration, compile into a staging directory under the temp root,
// then normalize the staging tree into the output directory.
type Runner struct {
	cfg Config
}

func NewRunner(c Config) (*Runner, error) {
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid build config: %w", err)
	}

	return &Runner{cfg: c}, nil
}

// OutDir resolves the configured output directory without building.
func (r *Runner) OutDir() (string, error) {
	return tsconfig.ResolveOutDir(r.cfg.FS, r.cfg.TSConfigPath)
}

func (r *Runner) Run(ctx context.Context) (*Result, error) {
	var (
		cfg   = r.cfg
		start = time.Now()
	)

	// Configuration errors abort before the compiler is ever invoked.
	outDir, err := tsconfig.ResolveOutDir(cfg.FS, cfg.TSConfigPath)
	if err != nil {
		return nil, err
	}

	header, err := license.Load(cfg.FS, cfg.LicensePath)
	if err != nil {
		return nil, err
	}

	staging, err := afero.TempDir(cfg.FS, cfg.TempRoot, "stamp")
	if err != nil {
		return nil, fmt.Errorf("error creating staging directory: %w", err)
	}

	log.Debug(ctx, "compiling", "compiler", cfg.Compiler.Name(), "staging", staging)

	status, err := cfg.Runner.Run(ctx, cfg.ProjectRoot, cfg.Compiler.Name(), cfg.Compiler.Args(staging, cfg.CompilerArgs...))
	if err != nil {
		cfg.FS.RemoveAll(staging)
		return nil, err
	}
	if status != 0 {
		cfg.FS.RemoveAll(staging)
		return nil, &ExitError{Code: status}
	}

	n, err := normalize.New(normalize.Config{FS: cfg.FS, Header: header})
	if err != nil {
		cfg.FS.RemoveAll(staging)
		return nil, err
	}

	// The normalizer owns staging cleanup from here on.
	count, err := n.Run(staging, outDir)
	if err != nil {
		return nil, err
	}

	if err := r.sourceAssets(outDir); err != nil {
		return nil, err
	}

	result := Result{
		OutDir:    outDir,
		FileCount: count,
		Duration:  time.Since(start),
	}

	log.Info(ctx, "build finished",
		"outDir", result.OutDir,
		"files", result.FileCount,
		"duration", result.Duration,
	)

	return &result, nil
}

// ExitCode maps a run error to the status the process should exit
// with: the compiler's own status, or 1 for internal failures.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}
