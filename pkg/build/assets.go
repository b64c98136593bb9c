package build

import (
	"fmt"

	recon "github.com/raphaelreyna/go-recon"
	"github.com/raphaelreyna/go-recon/sources"
)

// sourceAssets materializes the configured asset files into the output
// root, looking through the asset directories in order.
func (r *Runner) sourceAssets(outDir string) error {
	if len(r.cfg.Assets) == 0 {
		return nil
	}

	dirs := r.cfg.AssetDirs
	if len(dirs) == 0 {
		dirs = []string{r.cfg.ProjectRoot}
	}

	sc := sources.NewDirSourceChain(sources.SoftLink, dirs...)

	for _, name := range r.cfg.Assets {
		f := recon.File{Name: name}
		if _, err := f.AddTo(outDir, 0644, sc); err != nil {
			return fmt.Errorf("error sourcing asset %s: %w", name, err)
		}
	}

	return nil
}
