package license

import (
	"fmt"

	"github.com/spf13/afero"
)

// Load reads the license header from path. The content is used as-is:
// it is expected to already be a valid comment block in the target
// language, and gets prepended verbatim to every qualifying file.
func Load(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("error reading license header %s: %w", path, err)
	}
	return data, nil
}
