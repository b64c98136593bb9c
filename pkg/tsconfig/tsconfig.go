package tsconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileName is the configuration document the resolver looks for at the
// project root.
const FileName = "tsconfig.json"

var (
	// ErrNotObject is returned when the document parses but its top
	// level is not a JSON object.
	ErrNotObject = errors.New("tsconfig must be a JSON object")
	// ErrExtendsUnsupported is returned when the document uses the
	// "extends" inheritance feature, which the resolver does not follow.
	ErrExtendsUnsupported = errors.New(`tsconfig "extends" is not supported`)
	// ErrMissingOutDir is returned when compilerOptions.outDir is absent
	// or empty.
	ErrMissingOutDir = errors.New("tsconfig is missing compilerOptions.outDir")
)

type compilerOptions struct {
	OutDir  string `json:"outDir"`
	RootDir string `json:"rootDir"`
}

type document struct {
	Extends         json.RawMessage `json:"extends"`
	CompilerOptions compilerOptions `json:"compilerOptions"`
}

// Config is the subset of a tsconfig document the tool cares about,
// with paths resolved to absolutes.
type Config struct {
	// OutDir is the resolved absolute output directory.
	OutDir string
	// RootDir is the resolved absolute source root, or "" if the
	// document does not declare one.
	RootDir string
}

// Load reads and validates the configuration document at path.
// All failure modes are configuration errors: a missing document,
// malformed JSON, a non-object top level, use of "extends", or a
// missing outDir.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if _, ok := top.(map[string]any); !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotObject)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	// A literal null does not inherit anything.
	if doc.Extends != nil && string(doc.Extends) != "null" {
		return nil, fmt.Errorf("%s: %w", path, ErrExtendsUnsupported)
	}

	if doc.CompilerOptions.OutDir == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingOutDir)
	}

	var (
		base = filepath.Dir(path)
		c    Config
	)

	c.OutDir, err = filepath.Abs(filepath.Join(base, doc.CompilerOptions.OutDir))
	if err != nil {
		return nil, fmt.Errorf("error resolving outDir: %w", err)
	}

	if rd := doc.CompilerOptions.RootDir; rd != "" {
		c.RootDir, err = filepath.Abs(filepath.Join(base, rd))
		if err != nil {
			return nil, fmt.Errorf("error resolving rootDir: %w", err)
		}
	}

	return &c, nil
}

// ResolveOutDir reads the configuration document at path and returns
// the absolute output directory it names.
func ResolveOutDir(fsys afero.Fs, path string) (string, error) {
	c, err := Load(fsys, path)
	if err != nil {
		return "", err
	}
	return c.OutDir, nil
}
