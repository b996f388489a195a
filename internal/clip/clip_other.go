//go:build !windows

package clip

import (
	"log/slog"

	"golang.design/x/clipboard"
)

type textBackend struct{}

// New returns the text clipboard backend, or the OSC 52 backend if no
// display is available (SSH sessions, containers). Only the path is copied;
// the native file formats of macOS and X11 are not written.
func New(opts Options) Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, using OSC 52", "err", err)
		return newHeadless(opts.OSC52)
	}
	return &textBackend{}
}

func (b *textBackend) Name() string { return "system clipboard (text)" }

func (b *textBackend) CopyFile(path string) error {
	clipboard.Write(clipboard.FmtText, []byte(path))
	return nil
}
