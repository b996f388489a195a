package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipfile/internal/clip"
	"go.klb.dev/clipfile/internal/droplist"
	"go.klb.dev/clipfile/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPFILE_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPFILE_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipfile")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/clipfile/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "clipfile"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose", "v", false, "log debug detail to stderr")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: warn)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addClipboardFlags adds the clipboard acquisition flags to a command.
func addClipboardFlags(cmd *cobra.Command) {
	cmd.Flags().Int("open-attempts", droplist.DefaultOpenAttempts, "attempts to open the clipboard before giving up (Windows)")
	cmd.Flags().Duration("open-retry-delay", droplist.DefaultOpenRetryDelay, "pause between clipboard open attempts (Windows)")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	level := logging.ParseLevel(v.GetString("log-level"))
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logging.Setup(logging.ParseFormat(v.GetString("log-format")), level)
}

// clipOptions builds backend options from viper.
func clipOptions(v *viper.Viper) clip.Options {
	return clip.Options{
		OpenAttempts:   v.GetInt("open-attempts"),
		OpenRetryDelay: v.GetDuration("open-retry-delay"),
	}
}
