package tsconfig_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stamp-build/stamp/pkg/tsconfig"
)

func writeConfig(t *testing.T, fsys afero.Fs, content string) string {
	t.Helper()
	path := filepath.Join("/project", tsconfig.FileName)
	if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
		t.Fatalf("error writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeConfig(t, fsys, `{
		"compilerOptions": {
			"outDir": "dist",
			"rootDir": "src"
		}
	}`)

	c, err := tsconfig.Load(fsys, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := filepath.Join("/project", "dist"); c.OutDir != want {
		t.Fatalf("expected outDir %q, got %q", want, c.OutDir)
	}
	if want := filepath.Join("/project", "src"); c.RootDir != want {
		t.Fatalf("expected rootDir %q, got %q", want, c.RootDir)
	}
}

func TestLoad_MissingDocument(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := tsconfig.Load(fsys, filepath.Join("/project", tsconfig.FileName))
	if err == nil {
		t.Fatal("expected an error for a missing document")
	}
}

func TestLoad_Malformed(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeConfig(t, fsys, `{"compilerOptions": `)

	_, err := tsconfig.Load(fsys, path)
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestLoad_NotAnObject(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeConfig(t, fsys, `["compilerOptions"]`)

	_, err := tsconfig.Load(fsys, path)
	if !errors.Is(err, tsconfig.ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
}

func TestLoad_Extends(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeConfig(t, fsys, `{
		"extends": "./base.json",
		"compilerOptions": {"outDir": "dist"}
	}`)

	_, err := tsconfig.Load(fsys, path)
	if !errors.Is(err, tsconfig.ErrExtendsUnsupported) {
		t.Fatalf("expected ErrExtendsUnsupported, got %v", err)
	}
}

func TestLoad_NullExtends(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeConfig(t, fsys, `{
		"extends": null,
		"compilerOptions": {"outDir": "dist"}
	}`)

	c, err := tsconfig.Load(fsys, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join("/project", "dist"); c.OutDir != want {
		t.Fatalf("expected outDir %q, got %q", want, c.OutDir)
	}
}

func TestLoad_MissingOutDir(t *testing.T) {
	fsys := afero.NewMemMapFs()

	for name, content := range map[string]string{
		"no compilerOptions": `{}`,
		"empty outDir":       `{"compilerOptions": {"outDir": ""}}`,
	} {
		path := writeConfig(t, fsys, content)
		if _, err := tsconfig.Load(fsys, path); !errors.Is(err, tsconfig.ErrMissingOutDir) {
			t.Fatalf("%s: expected ErrMissingOutDir, got %v", name, err)
		}
	}
}
