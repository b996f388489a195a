// Package digest renders a set of repository files into one markdown
// document, each file under its own heading in a fenced block.
package digest

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MinFence is the shortest fence emitted.
const MinFence = 3

// Skipped records an input that was left out of the digest.
type Skipped struct {
	Path   string
	Reason string
}

// Dedupe trims each entry, drops empty ones and removes duplicates while
// keeping the first occurrence.
func Dedupe(rel []string) []string {
	seen := make(map[string]struct{}, len(rel))
	out := make([]string, 0, len(rel))
	for _, r := range rel {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// ChooseFence returns the shortest run of at least MinFence backticks that
// does not occur in content.
func ChooseFence(content string) string {
	n := MinFence
	for strings.Contains(content, strings.Repeat("`", n)) {
		n++
	}
	return strings.Repeat("`", n)
}

// Build renders the files named by rel, relative to root, in order. Files
// that cannot be stat'ed or read, and directories, are skipped and reported
// rather than failing the whole digest.
func Build(root string, rel []string) (string, []Skipped) {
	var (
		b       strings.Builder
		skipped []Skipped
	)
	skip := func(path, reason string) {
		slog.Warn("skipping file", "path", path, "reason", reason)
		skipped = append(skipped, Skipped{Path: path, Reason: reason})
	}

	for _, r := range rel {
		abs := filepath.Join(root, r)

		fi, err := os.Stat(abs)
		if err != nil {
			skip(r, "cannot read metadata")
			continue
		}
		if fi.IsDir() {
			skip(r, "directory")
			continue
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			skip(r, "cannot read")
			continue
		}

		writeSection(&b, r, lossyUTF8(data))
	}
	return b.String(), skipped
}

func writeSection(b *strings.Builder, rel, content string) {
	fence := ChooseFence(content)

	b.WriteString("## ")
	b.WriteString(rel)
	b.WriteString("\n\n")

	b.WriteString(fence)
	b.WriteString("text\n")

	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}

	b.WriteString(fence)
	b.WriteString("\n\n---\n\n")
}

// lossyUTF8 decodes b, replacing each maximal invalid subpart (the longest
// prefix of a well-formed sequence, or else a single byte) with one U+FFFD.
func lossyUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[:size])
			b = b[size:]
			continue
		}
		sb.WriteRune(utf8.RuneError)
		b = b[invalidLen(b):]
	}
	return sb.String()
}

// invalidLen returns the length of the maximal invalid subpart at the start
// of b, which does not begin with a complete valid sequence.
func invalidLen(b []byte) int {
	need := 0
	lo, hi := byte(0x80), byte(0xBF)
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}
	n := 1
	for n <= need && n < len(b) && b[n] >= lo && b[n] <= hi {
		n++
		lo, hi = 0x80, 0xBF
	}
	return n
}
