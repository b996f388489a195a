package droplist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultOpenAttempts bounds how often the clipboard is opened before giving
// up. Another process may briefly hold the clipboard open.
const DefaultOpenAttempts = 10

// DefaultOpenRetryDelay is the fixed pause between open attempts.
const DefaultOpenRetryDelay = 20 * time.Millisecond

var (
	// ErrAcquire is returned when the clipboard could not be opened.
	ErrAcquire = errors.New("clipboard acquisition failed")
	// ErrWrite is returned when clearing or writing a format failed.
	ErrWrite = errors.New("clipboard write failed")
)

// Opener opens a clipboard session. The OS clipboard is a system-wide
// singleton; it is always reached through an Opener so tests can substitute
// one that records payloads.
type Opener interface {
	Open() (Session, error)
}

// Session is an open clipboard. Set hands data to the clipboard; the caller
// keeps ownership of the slice.
type Session interface {
	Empty() error
	Set(f Format, data []byte) error
	Close() error
}

// Publisher writes a path to the clipboard as CF_HDROP plus CF_UNICODETEXT
// within a single session.
type Publisher struct {
	Opener Opener
	// Attempts is the number of Open calls before ErrAcquire; <= 0 means
	// DefaultOpenAttempts.
	Attempts int
	// Delay is slept between failed Open calls.
	Delay time.Duration
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Publish encodes path and writes both payloads. The clipboard is emptied
// first, so a failure part-way through may leave it empty.
func (p *Publisher) Publish(path string) (err error) {
	drop, err := Encode(path)
	if err != nil {
		return err
	}
	text, err := EncodeText(path)
	if err != nil {
		return err
	}

	s, err := p.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close: %v", ErrWrite, cerr)
		}
	}()

	if err := s.Empty(); err != nil {
		return fmt.Errorf("%w: empty: %v", ErrWrite, err)
	}
	for _, w := range []struct {
		f    Format
		data []byte
	}{
		{FormatHDROP, drop},
		{FormatUnicodeText, text},
	} {
		if err := s.Set(w.f, w.data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWrite, w.f, err)
		}
	}

	logPayload(path, drop, text)
	return nil
}

func (p *Publisher) open() (Session, error) {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = DefaultOpenAttempts
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for i := range attempts {
		if i > 0 && p.Delay > 0 {
			sleep(p.Delay)
		}
		s, err := p.Opener.Open()
		if err == nil {
			if i > 0 {
				slog.Debug("clipboard opened after retry", "attempt", i+1)
			}
			return s, nil
		}
		lastErr = err
		slog.Debug("clipboard open failed", "attempt", i+1, "of", attempts, "err", err)
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", ErrAcquire, attempts, lastErr)
}

// logPayload logs the published formats at DEBUG, decoding the drop list
// back so the log shows what paste targets will see.
func logPayload(path string, drop, text []byte) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	files, err := Decode(drop)
	slog.Debug("clipboard published",
		"path", path,
		FormatHDROP.String(), len(drop),
		FormatUnicodeText.String(), len(text),
		"files", files,
		"decode_err", err,
	)
}
