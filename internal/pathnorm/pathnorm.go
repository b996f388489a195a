// Package pathnorm turns a user-supplied path into the absolute, OS-native
// form that is embedded in clipboard payloads.
//
// Canonicalization on Windows yields the extended-length form (\\?\C:\...
// or \\?\UNC\server\share\...). Paste targets do not understand that form,
// so the prefix is always stripped before the path leaves this package.
package pathnorm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	extendedPrefix    = `\\?\`
	extendedUNCPrefix = `\\?\UNC\`
)

// Canonicalizer resolves symlinks and relative elements of an absolute path.
type Canonicalizer func(path string) (string, error)

// Normalizer canonicalizes paths with injectable collaborators.
type Normalizer struct {
	// Getwd returns the directory relative inputs are resolved against.
	Getwd func() (string, error)
	// Canonicalize is attempted on the absolute path; a failure falls back
	// to the merely absolutized path.
	Canonicalize Canonicalizer
}

// Default uses the process working directory and the platform canonicalizer.
var Default = Normalizer{
	Getwd:        os.Getwd,
	Canonicalize: Canonicalize,
}

// Normalize is Default.Normalize.
func Normalize(path string) (string, error) {
	return Default.Normalize(path)
}

// Normalize returns the canonical form of path. Canonicalization failures
// (a missing file, a permission error) are not fatal: the absolutized path
// is used instead so something is still copied. The only error is a
// failure to read the working directory for a relative input.
func (n Normalizer) Normalize(path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		getwd := n.Getwd
		if getwd == nil {
			getwd = os.Getwd
		}
		wd, err := getwd()
		if err != nil {
			return "", fmt.Errorf("resolve %q: working directory: %w", path, err)
		}
		abs = resolve(wd, abs)
	}
	abs = filepath.Clean(abs)

	out := abs
	if n.Canonicalize != nil {
		canon, err := n.Canonicalize(abs)
		if err != nil {
			slog.Debug("canonicalize failed, using absolute path", "path", abs, "err", err)
		} else {
			out = canon
		}
	}
	return StripExtendedPrefix(out), nil
}

// resolve makes the non-absolute p absolute against wd. On Windows a rooted
// path (\x) takes the drive of wd, and a drive-relative path (D:x) is joined
// with wd only when wd is on the same drive. Otherwise it is taken from the
// root of its drive, because the per-drive working directory is not known.
func resolve(wd, p string) string {
	vol := filepath.VolumeName(p)
	rest := p[len(vol):]
	rooted := rest != "" && os.IsPathSeparator(rest[0])
	switch {
	case vol == "" && rooted:
		return filepath.VolumeName(wd) + rest
	case vol != "" && !rooted:
		if strings.EqualFold(vol, filepath.VolumeName(wd)) {
			return filepath.Join(wd, rest)
		}
		return vol + string(filepath.Separator) + rest
	}
	return filepath.Join(wd, p)
}

// HasExtendedPrefix reports whether p starts with \\?\.
func HasExtendedPrefix(p string) bool {
	return strings.HasPrefix(p, extendedPrefix)
}

// StripExtendedPrefix rewrites \\?\UNC\<rest> to \\<rest> and \\?\<rest> to
// <rest>. Any other input is returned unchanged.
func StripExtendedPrefix(p string) string {
	if rest, ok := strings.CutPrefix(p, extendedUNCPrefix); ok {
		return `\\` + rest
	}
	if rest, ok := strings.CutPrefix(p, extendedPrefix); ok {
		return rest
	}
	return p
}
