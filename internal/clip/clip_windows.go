//go:build windows

package clip

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"

	"go.klb.dev/clipfile/internal/droplist"
)

const gmemMoveable = 0x0002

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard    = user32.NewProc("OpenClipboard")
	procCloseClipboard   = user32.NewProc("CloseClipboard")
	procEmptyClipboard   = user32.NewProc("EmptyClipboard")
	procSetClipboardData = user32.NewProc("SetClipboardData")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
)

type windowsBackend struct {
	pub *droplist.Publisher
}

// New returns the Windows backend, which publishes a CF_HDROP drop list so
// Explorer pastes the file itself.
func New(opts Options) Backend {
	return &windowsBackend{
		pub: &droplist.Publisher{
			Opener:   win32Opener{},
			Attempts: opts.OpenAttempts,
			Delay:    opts.OpenRetryDelay,
		},
	}
}

func (b *windowsBackend) Name() string { return "Windows Clipboard (CF_HDROP)" }

func (b *windowsBackend) CopyFile(path string) error {
	return b.pub.Publish(path)
}

// win32Opener opens the clipboard for the calling goroutine's OS thread.
// The clipboard is bound to the thread that opened it, so the goroutine is
// locked to its thread until Close.
type win32Opener struct{}

func (win32Opener) Open() (droplist.Session, error) {
	runtime.LockOSThread()
	r, _, err := procOpenClipboard.Call(0)
	if r == 0 {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("OpenClipboard: %w", err)
	}
	return &win32Session{}, nil
}

type win32Session struct {
	closed bool
}

func (s *win32Session) Empty() error {
	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		return fmt.Errorf("EmptyClipboard: %w", err)
	}
	return nil
}

// Set copies data into movable global memory and hands it to the clipboard.
// On success the OS owns the memory and it must not be freed here.
func (s *win32Session) Set(f droplist.Format, data []byte) error {
	h, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(len(data)))
	if h == 0 {
		return fmt.Errorf("GlobalAlloc(%d): %w", len(data), err)
	}
	p, _, err := procGlobalLock.Call(h)
	if p == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("GlobalLock: %w", err)
	}
	fillLocked(p, data)
	procGlobalUnlock.Call(h)

	if r, _, err := procSetClipboardData.Call(uintptr(f), h); r == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("SetClipboardData(%s): %w", f, err)
	}
	return nil
}

// fillLocked copies data to p, the address GlobalLock returned for a block of
// at least len(data) bytes.
func fillLocked(p uintptr, data []byte) {
	// The block lives in the OS global heap, outside the Go heap, and a
	// locked GMEM_MOVEABLE block does not move until GlobalUnlock. The GC
	// never sees or relocates it, so turning the uintptr into a pointer is
	// sound here even though go vet's unsafeptr check cannot prove it.
	copy(unsafe.Slice((*byte)(unsafe.Pointer(p)), len(data)), data) //nolint:govet // GlobalLock address, see above
}

func (s *win32Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	defer runtime.UnlockOSThread()
	if r, _, err := procCloseClipboard.Call(); r == 0 {
		return fmt.Errorf("CloseClipboard: %w", err)
	}
	return nil
}
