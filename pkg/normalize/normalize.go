package normalize

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/afero"
)

// qualifyingSuffixes are the file name endings eligible for header
// insertion and copying. Everything else in the staging tree is
// discarded.
var qualifyingSuffixes = []string{".js", ".d.ts"}

// Qualifies reports whether a file name is eligible for normalization.
func Qualifies(name string) bool {
	for _, suffix := range qualifyingSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

type Config struct {
	// FS is the filesystem the normalizer operates on.
	// Defaults to the host filesystem.
	FS afero.Fs
	// Header is prepended verbatim to every qualifying file.
	Header []byte
}

func (c *Config) validate() error {
	if c.FS == nil {
		c.FS = afero.NewOsFs()
	}

	if len(c.Header) == 0 {
		return errors.New("header is required")
	}

	return nil
}

// Normalizer transforms a compiler's raw staging tree into the
// published artifact tree: qualifying files are copied to the same
// relative path under the destination with the header prepended, and
// the staging tree is removed afterward.
type Normalizer struct {
	fs     afero.Fs
	header []byte

	written atomic.Int32
}

func New(c Config) (*Normalizer, error) {
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid normalizer config: %w", err)
	}

	return &Normalizer{fs: c.FS, header: c.Header}, nil
}

// Run clears dstRoot, copies every qualifying file under srcRoot into
// it, and removes srcRoot. Sibling file writes are dispatched
// concurrently; Run returns only after all of them are acknowledged.
// Removal of the staging tree is best-effort and never fails the run.
// It returns the number of files written.
func (n *Normalizer) Run(srcRoot, dstRoot string) (int, error) {
	n.written.Store(0)

	// Cleanup happens whether or not the walk succeeded.
	defer n.fs.RemoveAll(srcRoot)

	if err := n.fs.RemoveAll(dstRoot); err != nil {
		return 0, fmt.Errorf("error clearing output directory: %w", err)
	}
	if err := n.fs.MkdirAll(dstRoot, 0755); err != nil {
		return 0, fmt.Errorf("error creating output directory: %w", err)
	}

	var (
		wg sync.WaitGroup

		mu   sync.Mutex
		werr error
	)

	record := func(e error) {
		mu.Lock()
		defer mu.Unlock()
		werr = errors.Join(werr, e)
	}

	walkErr := n.walk(srcRoot, dstRoot, &wg, record)
	wg.Wait()

	if err := errors.Join(walkErr, werr); err != nil {
		return int(n.written.Load()), err
	}

	return int(n.written.Load()), nil
}

func (n *Normalizer) walk(srcDir, dstDir string, wg *sync.WaitGroup, record func(error)) error {
	entries, err := afero.ReadDir(n.fs, srcDir)
	if err != nil {
		return fmt.Errorf("error reading directory %s: %w", srcDir, err)
	}

	for _, entry := range entries {
		var (
			src = filepath.Join(srcDir, entry.Name())
			dst = filepath.Join(dstDir, entry.Name())
		)

		if entry.IsDir() {
			if err := n.walk(src, dst, wg, record); err != nil {
				return err
			}
			continue
		}

		if !Qualifies(entry.Name()) {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := n.copyFile(src, dst); err != nil {
				record(err)
				return
			}
			n.written.Add(1)
		}()
	}

	return nil
}

func (n *Normalizer) copyFile(src, dst string) error {
	content, err := afero.ReadFile(n.fs, src)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", src, err)
	}

	if err := n.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", dst, err)
	}

	out := make([]byte, 0, len(n.header)+len(content))
	out = append(out, n.header...)
	out = append(out, content...)

	if err := afero.WriteFile(n.fs, dst, out, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", dst, err)
	}

	return nil
}
