package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Directories never worth descending into.
var ignoredDirs = []string{".git", "target", "node_modules", "vendor"}

// CollectFiles expands a list of paths (files or directories) into the Rust
// source files to analyze, in deterministic order. Directory walks skip
// build output and VCS metadata.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("path does not exist: %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				for _, ign := range ignoredDirs {
					if d.Name() == ign {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), ".rs") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}
	return files, nil
}
