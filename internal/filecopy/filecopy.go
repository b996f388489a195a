// Package filecopy resolves a user-supplied path and hands it to a
// clipboard backend.
package filecopy

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"go.klb.dev/clipfile/internal/clip"
	"go.klb.dev/clipfile/internal/pathnorm"
)

var (
	// ErrNoPath is returned for an empty path argument.
	ErrNoPath = errors.New("no file path given")
	// ErrNotAFile is returned when the path names a directory or other
	// non-regular file. The clipboard is not touched.
	ErrNotAFile = errors.New("path is not a file")
)

// Copier copies single files to the clipboard.
type Copier struct {
	Backend clip.Backend
	// Normalize defaults to pathnorm.Normalize.
	Normalize func(string) (string, error)
	// Stat defaults to os.Stat.
	Stat func(string) (fs.FileInfo, error)
}

// Copy normalizes path, checks that it is a regular file and publishes it.
// A path that does not exist is still published (its absolutized form), since
// the file may be recreated before the user pastes. It returns the path that
// was published.
func (c *Copier) Copy(path string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}
	normalize := c.Normalize
	if normalize == nil {
		normalize = pathnorm.Normalize
	}
	stat := c.Stat
	if stat == nil {
		stat = os.Stat
	}

	canon, err := normalize(path)
	if err != nil {
		return "", err
	}

	fi, err := stat(canon)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("file does not exist, copying path anyway", "path", canon)
	case err != nil:
		return "", fmt.Errorf("stat %s: %w", canon, err)
	case !fi.Mode().IsRegular():
		return "", fmt.Errorf("%w: %s", ErrNotAFile, canon)
	}

	slog.Debug("copying file", "path", canon, "backend", c.Backend.Name())
	if err := c.Backend.CopyFile(canon); err != nil {
		return "", err
	}
	return canon, nil
}
