package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/snipcopy/internal/clip"
	"go.klb.dev/snipcopy/internal/logging"
	"go.klb.dev/snipcopy/internal/widget"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and SNIPCOPY_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → SNIPCOPY_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("snipcopy")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/snipcopy/")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("SNIPCOPY")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// configDir returns $HOME/.config/snipcopy, or "" if there is no home.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "snipcopy")
}

func defaultSnippetsPath() string {
	if dir := configDir(); dir != "" {
		return filepath.Join(dir, "snippets.yaml")
	}
	return "snippets.yaml"
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info for service, debug for interactive)")
}

// addSnippetFlags adds the flags shared by commands that copy snippets.
func addSnippetFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("snippets", defaultSnippetsPath(), "path to the snippets YAML file")
	f.String("clipboard", clip.NameAuto, clipboardHelp(nameDaemon))
	f.Duration("hide-after", widget.DefaultHideAfter, "how long the copied confirmation stays visible")
	f.String("source", defaultSource(), "name reported to the clipboard daemon")
}

// clipboardHelp lists the backends clip.Open accepts plus extra names the
// command layer resolves itself.
func clipboardHelp(extra ...string) string {
	names := append(clip.Names(), extra...)
	return "clipboard backend: " + strings.Join(names, "|")
}

// setupLogging reads logging flags from viper and configures slog on stderr.
func setupLogging(v *viper.Viper) {
	interactive := v.GetBool("no-background") || logging.IsTTY(os.Stderr)
	resolveLogging(interactive, v.GetString("log-format"), v.GetString("log-level"))
}

// setupFileLogging is setupLogging for commands that own the terminal. Logs
// go to path, or nowhere if path is empty. The returned func closes the file.
func setupFileLogging(v *viper.Viper, path string) (func() error, error) {
	level := logging.ParseLevel(v.GetString("log-level"))
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	logging.SetupWriter(f, logging.ParseFormat(v.GetString("log-format")), level)
	return f.Close, nil
}
