// Package droplist builds and publishes the Windows file-drop clipboard
// payload (a DROPFILES structure registered as CF_HDROP) together with a
// CF_UNICODETEXT copy of the same path.
//
// Layout of an encoded drop list:
//
//	offset  size  field
//	0       4     pFiles  u32 LE, offset of the file list (always 20)
//	4       4     pt.x    i32 LE, 0
//	8       4     pt.y    i32 LE, 0
//	12      4     fNC     i32 LE, 0
//	16      4     fWide   i32 LE, 1 (UTF-16 file list)
//	20      ...   path UTF-16LE, NUL, ... , NUL (list terminator)
//
// The encoding is plain byte serialization and builds on every platform;
// only the session that hands it to the OS is Windows-specific.
package droplist

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// HeaderSize is the size of the DROPFILES header in bytes.
const HeaderSize = 20

// Format is a clipboard format identifier.
type Format uint32

const (
	FormatUnicodeText Format = 13 // CF_UNICODETEXT
	FormatHDROP       Format = 15 // CF_HDROP
)

func (f Format) String() string {
	switch f {
	case FormatUnicodeText:
		return "CF_UNICODETEXT"
	case FormatHDROP:
		return "CF_HDROP"
	default:
		return fmt.Sprintf("format(%d)", uint32(f))
	}
}

var (
	ErrShortBuffer  = errors.New("droplist: buffer shorter than header")
	ErrBadOffset    = errors.New("droplist: file list offset out of range")
	ErrNotWide      = errors.New("droplist: file list is not UTF-16")
	ErrUnterminated = errors.New("droplist: file list not double-NUL terminated")
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Encode returns the DROPFILES buffer for a single path. Its length is
// HeaderSize + 2*(UTF-16 code units of path + 2).
func Encode(path string) ([]byte, error) {
	return EncodeList([]string{path})
}

// EncodeList returns the DROPFILES buffer for paths. Each path is NUL
// terminated and the list ends with one extra NUL code unit.
func EncodeList(paths []string) ([]byte, error) {
	units := make([][]byte, len(paths))
	size := HeaderSize + 2
	for i, p := range paths {
		u, err := encodeUTF16(p)
		if err != nil {
			return nil, err
		}
		units[i] = u
		size += len(u) + 2
	}
	if len(paths) == 0 {
		// An empty list is still double-NUL terminated.
		size += 2
	}

	buf := make([]byte, size)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], HeaderSize)
	le.PutUint32(buf[4:8], 0)   // pt.x
	le.PutUint32(buf[8:12], 0)  // pt.y
	le.PutUint32(buf[12:16], 0) // fNC
	le.PutUint32(buf[16:20], 1) // fWide

	off := HeaderSize
	for _, u := range units {
		off += copy(buf[off:], u)
		off += 2 // NUL, already zero
	}
	return buf, nil
}

// EncodeText returns s as UTF-16LE followed by one NUL code unit, the
// CF_UNICODETEXT payload.
func EncodeText(s string) ([]byte, error) {
	u, err := encodeUTF16(s)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(u)+2)
	copy(out, u)
	return out, nil
}

// DecodeText reverses EncodeText, stopping at the first NUL code unit.
func DecodeText(b []byte) (string, error) {
	end := len(b) &^ 1
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			end = i
			break
		}
	}
	return decodeUTF16(b[:end])
}

// Decode parses a DROPFILES buffer and returns its file list.
func Decode(buf []byte) ([]string, error) {
	if len(buf) < HeaderSize {
		return nil, ErrShortBuffer
	}
	le := binary.LittleEndian
	off := le.Uint32(buf[0:4])
	if off < HeaderSize || uint64(off) > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %d", ErrBadOffset, off)
	}
	if le.Uint32(buf[16:20]) == 0 {
		return nil, ErrNotWide
	}

	var paths []string
	start := int(off)
	for i := start; i+1 < len(buf); i += 2 {
		if buf[i] != 0 || buf[i+1] != 0 {
			continue
		}
		if i == start {
			// Empty entry: end of list.
			return paths, nil
		}
		p, err := decodeUTF16(buf[start:i])
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
		start = i + 2
	}
	return nil, ErrUnterminated
}

// encodeUTF16 transcodes s without a terminator. Invalid UTF-8 becomes
// U+FFFD.
func encodeUTF16(s string) ([]byte, error) {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("droplist: utf-16 encode: %w", err)
	}
	return b, nil
}

func decodeUTF16(b []byte) (string, error) {
	s, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("droplist: utf-16 decode: %w", err)
	}
	return string(s), nil
}
