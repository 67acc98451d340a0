// snipcopy: copy named snippets to the clipboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go.klb.dev/snipcopy/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "snipcopy",
		Short: "Copy named snippets to the clipboard",
		Long: `snipcopy copies the text of a named snippet to the system clipboard and
shows a short "copied" confirmation.

Snippets live in a YAML file (default $HOME/.config/snipcopy/snippets.yaml):

  snippets:
    - id: snippet
      text: hello world
      message: Copied!          # optional
      message_id: snippet-done  # optional, default <id>-message

Run "snipcopy daemon" to keep clipboard contents alive after "snipcopy copy"
exits (X11 and Wayland drop a selection when its owner quits).

Config file search order (first found wins):
  /etc/snipcopy/snipcopy.toml
  $HOME/.config/snipcopy/snipcopy.toml
  path supplied via --config

All flags can be set via SNIPCOPY_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCopyCmd(),
		newBrowseCmd(),
		newListCmd(),
		newPasteCmd(),
		newDaemonCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "snipcopy %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(format, level)
}
