// Package clip puts a file onto the system clipboard. Build constraints
// select the implementation:
//
//	clip_windows.go   CF_HDROP drop list + CF_UNICODETEXT via user32
//	clip_other.go     path as text via golang.design/x/clipboard
//	clip_headless.go  OSC 52 escape sequence when no display is available
package clip

import (
	"errors"
	"io"
	"time"
)

// ErrWrite is returned by non-Windows backends when the clipboard rejects
// a write. The Windows backend returns droplist.ErrWrite and
// droplist.ErrAcquire instead.
var ErrWrite = errors.New("clipboard write failed")

// Backend is the interface that all platform clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// CopyFile publishes path, which must already be absolute and
	// canonical, so that pasting yields the file (where the platform
	// supports it) or its path as text.
	CopyFile(path string) error
}

// Options configures New.
type Options struct {
	// OpenAttempts bounds clipboard acquisition on Windows.
	OpenAttempts int
	// OpenRetryDelay is the fixed pause between acquisition attempts.
	OpenRetryDelay time.Duration
	// OSC52 receives the escape sequence when the headless backend is
	// used. Nil means os.Stderr.
	OSC52 io.Writer
}
