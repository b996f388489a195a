package digest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TempPattern names digest files created by WriteTemp.
const TempPattern = "repomix_search_*.md"

// WriteTemp writes content to a new file in dir (os.TempDir() when empty)
// and returns its absolute path. The file is synced and kept: paste targets
// read it after this process has exited.
func WriteTemp(dir, content string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	f, err := os.CreateTemp(dir, TempPattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if err := writeAndClose(f, content); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return filepath.Abs(f.Name())
}

// WriteFile writes content to path, creating parent directories, and returns
// the absolute path.
func WriteFile(path, content string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	f, err := os.OpenFile(abs, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", abs, err)
	}
	if err := writeAndClose(f, content); err != nil {
		return "", err
	}
	return abs, nil
}

func writeAndClose(f *os.File, content string) error {
	_, werr := f.WriteString(content)
	if werr == nil {
		werr = f.Sync()
	}
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return fmt.Errorf("write %s: %w", f.Name(), err)
	}
	return nil
}
