package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/snipcopy/internal/clip"
	"go.klb.dev/snipcopy/internal/clock"
	"go.klb.dev/snipcopy/internal/daemon"
	"go.klb.dev/snipcopy/internal/ipc"
)

func newDaemonCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Hold the clipboard on behalf of copy/paste",
		Long: `Runs in the foreground, owning a clipboard backend and serving copy, paste
and status requests on the local IPC socket ($SNIPCOPY_SOCKET,
$XDG_RUNTIME_DIR/snipcopy.sock or $TMPDIR/snipcopy.sock).

Config file search order:
  /etc/snipcopy/snipcopy.toml
  $HOME/.config/snipcopy/snipcopy.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → SNIPCOPY_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runDaemon(cmd, v) },
	}

	f := cmd.Flags()
	f.String("clipboard", clip.NameSystem, clipboardHelp())
	f.String("source", defaultSource(), "name for this host in status output")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(cmd *cobra.Command, v *viper.Viper) error {
	setupLogging(v)

	name := v.GetString("clipboard")
	if name == nameDaemon {
		return fmt.Errorf("daemon cannot use the daemon backend")
	}
	backend, err := clip.Open(name, clip.Options{})
	if err != nil {
		return err
	}
	defer backend.Close()

	if ipc.IsRunning() {
		return fmt.Errorf("a daemon is already listening on %s", ipc.SocketPath())
	}
	ln, err := ipc.Listen()
	if err != nil {
		return fmt.Errorf("listen %s: %w", ipc.SocketPath(), err)
	}

	source := v.GetString("source")
	slog.Info("snipcopy daemon starting",
		"version", Version,
		"socket", ipc.SocketPath(),
		"backend", backend.Name(),
		"source", source,
	)

	srv := daemon.NewServer(backend, clock.Real(), source)
	if err := srv.Serve(cmd.Context(), ln); err != nil {
		return err
	}
	slog.Info("snipcopy daemon stopped")
	return nil
}
