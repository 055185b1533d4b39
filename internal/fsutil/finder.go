// Package fsutil provides the file system helpers of the build tasks.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension walks root and returns the paths of files whose name
// ends with suffix, such as the ".spec.ts" suites of a project. Installed
// packages under node_modules are skipped. A missing root has no matches.
func FindFilesByExtension(root string, suffix string) ([]string, error) {
	if suffix == "" {
		panic("suffix must not be empty")
	}

	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir() && d.Name() == "node_modules":
			return filepath.SkipDir
		case !d.IsDir() && strings.HasSuffix(d.Name(), suffix):
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
