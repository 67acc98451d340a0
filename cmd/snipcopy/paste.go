package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/snipcopy/internal/clip"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Print the clipboard text to stdout (like pbpaste)",
		Long: `Reads the clipboard through the selected backend and writes it to stdout.

With --clipboard auto a running daemon is asked first. The osc52 backend
cannot read and always fails.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runPaste(cmd, v) },
	}

	f := cmd.Flags()
	f.String("clipboard", clip.NameAuto, clipboardHelp(nameDaemon))
	f.String("source", defaultSource(), "name reported to the clipboard daemon")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runPaste(cmd *cobra.Command, v *viper.Viper) error {
	setupLogging(v)

	backend, err := openBackend(v.GetString("clipboard"), v.GetString("source"))
	if err != nil {
		return err
	}
	defer backend.Close()

	text, err := backend.Read(cmd.Context())
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
