package taiga

import (
	"os"
	"path/filepath"
)

// resolveAttachmentPath locates the file an upload refers to. Absolute paths
// are tested directly. Relative paths are probed, in order, under the
// working directory, the home directory, home/Desktop, and home/Downloads;
// the first existing match wins. The ordered fallback exists because the
// calling environment's working directory is often not meaningful to the
// end user supplying a bare filename.
func resolveAttachmentPath(path string) (string, error) {
	if path == "" {
		return "", ErrFilePathRequired
	}

	if filepath.IsAbs(path) {
		if fileExists(path) {
			return path, nil
		}
		return "", &FileNotFoundError{Name: path, Tried: []string{path}}
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, path),
			filepath.Join(home, "Desktop", path),
			filepath.Join(home, "Downloads", path),
		)
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	return "", &FileNotFoundError{Name: path, Tried: candidates}
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
