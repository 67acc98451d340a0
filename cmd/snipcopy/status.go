package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/snipcopy/internal/daemon"
	"go.klb.dev/snipcopy/internal/ipc"
	"go.klb.dev/snipcopy/internal/message"
)

const statusTimeout = 2 * time.Second

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show the clipboard daemon's state",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runStatus(cmd, v) },
	}

	f := cmd.Flags()
	f.String("source", defaultSource(), "source identifier")
	f.Bool("json", false, "output raw JSON")
	addConfigFlag(cmd)

	return cmd
}

func runStatus(cmd *cobra.Command, v *viper.Viper) error {
	out := cmd.OutOrStdout()
	if !ipc.IsRunning() {
		fmt.Fprintf(out, "No daemon listening on %s.\n", ipc.SocketPath())
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
	defer cancel()

	info, err := daemon.NewClient(ipc.Dial, v.GetString("source")).Status(ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	if v.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	return printStatus(out, info, time.Now())
}

func printStatus(out io.Writer, info *message.DaemonInfo, now time.Time) error {
	w := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Socket:\t%s\n", ipc.SocketPath())
	fmt.Fprintf(w, "Source:\t%s\n", info.Source)
	fmt.Fprintf(w, "Backend:\t%s\n", info.Backend)
	fmt.Fprintf(w, "PID:\t%d\n", info.PID)
	fmt.Fprintf(w, "Started:\t%s (%s)\n", info.StartedAt.UTC().Format(time.RFC3339), fmtAge(info.StartedAt, now))
	fmt.Fprintf(w, "Copies:\t%d\n", info.Copies)
	if !info.LastCopy.IsZero() {
		fmt.Fprintf(w, "Last copy:\t%s\n", fmtAge(info.LastCopy, now))
	}
	return w.Flush()
}

func fmtAge(t, now time.Time) string {
	age := now.Sub(t).Round(time.Second)
	if age < time.Minute {
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	}
	if age < time.Hour {
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	}
	return t.Format("15:04:05")
}
