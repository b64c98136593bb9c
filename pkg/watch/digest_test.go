package watch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDigestCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.ts")

	dc, err := newDigestCache(8)
	if err != nil {
		t.Fatalf("error creating digest cache: %v", err)
	}

	if err := os.WriteFile(path, []byte("const a = 1;\n"), 0644); err != nil {
		t.Fatalf("error writing test file: %v", err)
	}

	if !dc.Changed(path) {
		t.Fatal("expected an unseen file to count as changed")
	}
	if dc.Changed(path) {
		t.Fatal("expected an untouched file to count as unchanged")
	}

	if err := os.WriteFile(path, []byte("const a = 2;\n"), 0644); err != nil {
		t.Fatalf("error rewriting test file: %v", err)
	}
	if !dc.Changed(path) {
		t.Fatal("expected new content to count as changed")
	}

	if !dc.Changed(filepath.Join(dir, "missing.ts")) {
		t.Fatal("expected an unreadable file to count as changed")
	}
}
