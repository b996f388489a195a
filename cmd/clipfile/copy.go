package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipfile/internal/clip"
	"go.klb.dev/clipfile/internal/digest"
	"go.klb.dev/clipfile/internal/filecopy"
)

func runCopy(cmd *cobra.Command, v *viper.Viper, newBackend func(clip.Options) clip.Backend, path string) error {
	c := &filecopy.Copier{Backend: newBackend(clipOptions(v))}
	if _, err := c.Copy(path); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to copy to clipboard: %v\n", err)
		return errReported
	}
	fmt.Fprintln(cmd.OutOrStdout(), "File copied to clipboard successfully.")
	return nil
}

func runMarkdown(cmd *cobra.Command, v *viper.Viper, newBackend func(clip.Options) clip.Backend, rel []string) error {
	if err := generateMarkdown(v, newBackend, rel); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to generate markdown and copy to clipboard: %v\n", err)
		return errReported
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Markdown file generated and copied to clipboard successfully.")
	return nil
}

func generateMarkdown(v *viper.Viper, newBackend func(clip.Options) clip.Backend, rel []string) error {
	root := v.GetString("cwd")
	if root == "" {
		return errors.New("--cwd is required in --generate-md mode")
	}
	if !filepath.IsAbs(root) {
		return fmt.Errorf("--cwd must be an absolute path: %s", root)
	}

	files := digest.Dedupe(rel)
	if len(files) == 0 {
		return errors.New("no files provided for --generate-md mode")
	}
	slog.Info("generating markdown", "files", len(files), "root", root)

	md, skipped := digest.Build(root, files)

	var (
		path string
		err  error
	)
	if out := v.GetString("output"); out != "" {
		path, err = digest.WriteFile(out, md)
	} else {
		path, err = digest.WriteTemp(v.GetString("temp-dir"), md)
	}
	if err != nil {
		return err
	}
	slog.Info("wrote temp markdown file", "path", path, "skipped", len(skipped))

	// The digest is left on disk: paste targets read it after we exit.
	c := &filecopy.Copier{Backend: newBackend(clipOptions(v))}
	_, err = c.Copy(path)
	return err
}
