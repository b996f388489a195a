// clipfile: copy a file to the system clipboard as a file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipfile/internal/clip"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

// errReported means the failure was already printed to stderr.
var errReported = errors.New("reported")

func main() {
	if err := newRootCmd(clip.New).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. newBackend is called only once a
// clipboard is actually needed.
func newRootCmd(newBackend func(clip.Options) clip.Backend) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "clipfile [flags] <file_path>",
		Short: "Copy a file to the system clipboard",
		Long: `clipfile copies a file to the system clipboard.

On Windows the file is published as CF_HDROP together with CF_UNICODETEXT,
so pasting into Explorer pastes the file itself and pasting into a text
field pastes its path.

On macOS and Linux only the absolute path is copied, as plain text. No file
object is placed on the clipboard, so a file manager will not paste the file.
Without a display the text is sent through OSC 52.

With --generate-md the named files, relative to --cwd, are rendered into one
markdown document which is written to a temp file (or --output) and copied
the same way:

  clipfile --generate-md --cwd /abs/repo src/main.go README.md

Config file search order (first found wins):
  /etc/clipfile/clipfile.toml
  $HOME/.config/clipfile/clipfile.toml
  path supplied via --config

All flags can be set via CLIPFILE_<FLAG> env vars or config-file keys.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if md, _ := cmd.Flags().GetBool("generate-md"); md {
				return cobra.MinimumNArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindViper(cmd, v); err != nil {
				return err
			}
			setupLogging(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.GetBool("generate-md") {
				return runMarkdown(cmd, v, newBackend, args)
			}
			return runCopy(cmd, v, newBackend, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.Flags()
	f.Bool("generate-md", false, "render the given files into a markdown digest and copy that")
	f.String("cwd", "", "absolute repository root the --generate-md files are relative to")
	f.String("output", "", "write the digest here instead of a temp file")
	f.String("temp-dir", "", "directory for digest temp files (default: OS temp dir)")
	addClipboardFlags(root)
	addLoggingFlags(root)
	addConfigFlag(root)

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clipfile %s\n", Version)
		},
	}
}
