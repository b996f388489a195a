//go:build !windows

package pathnorm

import "path/filepath"

// Canonicalize resolves symlinks in an absolute path.
func Canonicalize(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
