package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirAssets serves template and stylesheet text from a directory,
// typically ./templates. Lookups are by base name only so a logical
// asset name can never escape the directory.
type DirAssets struct {
	dir string
}

func NewDirAssets(dir string) *DirAssets {
	return &DirAssets{dir: dir}
}

func (a *DirAssets) Load(name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(a.dir, filepath.Base(name)))
	if err != nil {
		return "", fmt.Errorf("load asset %s: %w", name, err)
	}
	return string(b), nil
}
