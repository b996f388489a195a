package digest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	t.Parallel()

	got := Dedupe([]string{" a.go", "b.go", "", "a.go", "  ", "c.go", "b.go "})
	assert.Equal(t, []string{"a.go", "b.go", "c.go"}, got)
	assert.Empty(t, Dedupe(nil))
}

func TestChooseFence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "```", ChooseFence("plain"))
	assert.Equal(t, "````", ChooseFence("has ``` inside"))
	assert.Equal(t, "`````", ChooseFence("has ```` inside"))
	assert.Equal(t, "```", ChooseFence("only `` two"))
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

func TestBuild(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"src/main.go": "package main\n",
		"README.md":   "no newline",
	})
	md, skipped := Build(root, []string{"src/main.go", "README.md"})
	assert.Empty(t, skipped)

	want := "## src/main.go\n\n```text\npackage main\n```\n\n---\n\n" +
		"## README.md\n\n```text\nno newline\n```\n\n---\n\n"
	assert.Equal(t, want, md)
}

func TestBuildWidensFence(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"doc.md": "```go\nx := 1\n```\n",
	})
	md, _ := Build(root, []string{"doc.md"})
	assert.True(t, strings.HasPrefix(md, "## doc.md\n\n````text\n```go\n"), md)
	assert.True(t, strings.HasSuffix(md, "```\n````\n\n---\n\n"), md)
}

func TestBuildSkips(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"keep.txt":    "ok\n",
		"dir/sub.txt": "x",
	})
	md, skipped := Build(root, []string{"missing.txt", "dir", "keep.txt"})
	assert.Equal(t, []Skipped{
		{Path: "missing.txt", Reason: "cannot read metadata"},
		{Path: "dir", Reason: "directory"},
	}, skipped)
	assert.Equal(t, "## keep.txt\n\n```text\nok\n```\n\n---\n\n", md)
}

func TestBuildLossyUTF8(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"bin.dat": "a\xffb\n",
	})
	md, _ := Build(root, []string{"bin.dat"})
	assert.Contains(t, md, "a\uFFFDb\n")
}

func TestLossyUTF8MaximalSubparts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, want string
	}{
		{"valid", "héllo 😀", "héllo 😀"},
		{"truncated three byte", "a\xe2\x82b", "a\uFFFDb"},
		{"two stray bytes", "a\xff\xfeb", "a\uFFFD\uFFFDb"},
		{"surrogate", "\xed\xa0\x80", "\uFFFD\uFFFD\uFFFD"},
		{"truncated four byte at end", "x\xf0\x9f\x98", "x\uFFFD"},
		{"overlong", "\xc0\xaf", "\uFFFD\uFFFD"},
		{"lone continuation", "\x80a", "\uFFFDa"},
		{"above U+10FFFF", "\xf4\x90\x80\x80", "\uFFFD\uFFFD\uFFFD\uFFFD"},
		{"encoded replacement kept", "\xef\xbf\xbd", "\uFFFD"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lossyUTF8([]byte(tt.in)), tt.name)
	}
}

func TestBuildLossyUTF8Truncated(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"cut.txt": "a\xe2\x82b\n",
	})
	md, _ := Build(root, []string{"cut.txt"})
	assert.Contains(t, md, "a\uFFFDb\n")
	assert.NotContains(t, md, "\uFFFD\uFFFD")
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	md, skipped := Build(t.TempDir(), nil)
	assert.Empty(t, md)
	assert.Empty(t, skipped)
}
