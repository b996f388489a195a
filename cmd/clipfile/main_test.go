package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipfile/internal/clip"
	"go.klb.dev/clipfile/internal/pathnorm"
)

type fakeBackend struct {
	opts   clip.Options
	copied []string
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) CopyFile(path string) error {
	b.copied = append(b.copied, path)
	return nil
}

// run executes the CLI against a fake clipboard and an empty config file.
func run(t *testing.T, args ...string) (*fakeBackend, string, string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "clipfile.toml")
	require.NoError(t, os.WriteFile(cfg, nil, 0o600))

	fb := &fakeBackend{}
	cmd := newRootCmd(func(o clip.Options) clip.Backend {
		fb.opts = o
		return fb
	})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return fb, stdout.String(), stderr.String(), err
}

func canonical(t *testing.T, p string) string {
	t.Helper()
	c, err := pathnorm.Normalize(p)
	require.NoError(t, err)
	return c
}

func TestCopyFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("hi"), 0o600))

	fb, stdout, _, err := run(t, file)
	require.NoError(t, err)
	assert.Equal(t, "File copied to clipboard successfully.\n", stdout)
	assert.Equal(t, []string{canonical(t, file)}, fb.copied)
}

func TestCopyDirectoryFails(t *testing.T) {
	fb, stdout, stderr, err := run(t, t.TempDir())
	require.ErrorIs(t, err, errReported)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Failed to copy to clipboard: path is not a file")
	assert.Empty(t, fb.copied)
}

func TestCopyMissingFileCopiesPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "later.txt")

	fb, stdout, _, err := run(t, missing)
	require.NoError(t, err)
	assert.Equal(t, "File copied to clipboard successfully.\n", stdout)
	assert.Equal(t, []string{missing}, fb.copied)
}

func TestMissingArgument(t *testing.T) {
	_, _, _, err := run(t)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}

func TestClipboardFlags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("hi"), 0o600))

	fb, _, _, err := run(t, "--open-attempts", "3", "--open-retry-delay", "5ms", file)
	require.NoError(t, err)
	assert.Equal(t, 3, fb.opts.OpenAttempts)
	assert.Equal(t, "5ms", fb.opts.OpenRetryDelay.String())
}

func TestGenerateMarkdown(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("b"), 0o600))
	tmp := t.TempDir()

	fb, stdout, _, err := run(t, "--generate-md", "--cwd", root, "--temp-dir", tmp, "a.go", "b.txt", "a.go", "missing.go")
	require.NoError(t, err)
	assert.Equal(t, "Markdown file generated and copied to clipboard successfully.\n", stdout)

	require.Len(t, fb.copied, 1)
	base := filepath.Base(fb.copied[0])
	assert.True(t, strings.HasPrefix(base, "repomix_search_"), base)

	data, err := os.ReadFile(fb.copied[0])
	require.NoError(t, err)
	assert.Equal(t,
		"## a.go\n\n```text\npackage a\n```\n\n---\n\n## b.txt\n\n```text\nb\n```\n\n---\n\n",
		string(data))
}

func TestGenerateMarkdownOutput(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\n"), 0o600))
	out := filepath.Join(t.TempDir(), "digest.md")

	fb, _, _, err := run(t, "--generate-md", "--cwd", root, "--output", out, "a.go")
	require.NoError(t, err)
	assert.Equal(t, []string{canonical(t, out)}, fb.copied)
	assert.FileExists(t, out)
}

func TestGenerateMarkdownRequiresCwd(t *testing.T) {
	fb, _, stderr, err := run(t, "--generate-md", "a.go")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "Failed to generate markdown and copy to clipboard: --cwd is required")
	assert.Empty(t, fb.copied)
}

func TestGenerateMarkdownRelativeCwd(t *testing.T) {
	_, _, stderr, err := run(t, "--generate-md", "--cwd", "relative/root", "a.go")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "--cwd must be an absolute path")
}

func TestGenerateMarkdownBlankFiles(t *testing.T) {
	_, _, stderr, err := run(t, "--generate-md", "--cwd", t.TempDir(), " ", "")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "no files provided")
}

func TestVersion(t *testing.T) {
	cmd := newRootCmd(func(clip.Options) clip.Backend {
		t.Fatal("version must not open the clipboard")
		return nil
	})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "clipfile dev\n", stdout.String())
}

func TestHelpStatesTextOnlyOffWindows(t *testing.T) {
	cmd := newRootCmd(func(clip.Options) clip.Backend {
		t.Fatal("help must not open the clipboard")
		return nil
	})
	long := cmd.Long
	assert.Contains(t, long, "On macOS and Linux only the absolute path is copied, as plain text.")
	assert.Contains(t, long, "No file\nobject is placed on the clipboard")
	assert.NotContains(t, strings.SplitN(long, "\n\n", 2)[0], "pastes the file itself")
}
