package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/snipcopy/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse snippets interactively and copy with enter",
		Long: `Opens a full-screen list of snippets. Move with ↑/↓ (or j/k), press enter
to copy the selected snippet; its confirmation appears beside it for the
configured --hide-after.

The terminal belongs to the browser, so logs go to --log-file (default:
discarded).`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runBrowse(cmd, v) },
	}

	f := cmd.Flags()
	f.String("log-file", "", "write logs to this file")
	f.String("log-format", "auto", "log format: auto|text|json")
	f.String("log-level", "info", "log level: debug|info|warn|error")
	addSnippetFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runBrowse(cmd *cobra.Command, v *viper.Viper) error {
	closeLog, err := setupFileLogging(v, v.GetString("log-file"))
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := openSession(v)
	if err != nil {
		return err
	}
	defer s.Close()

	return tui.Run(cmd.Context(), s.doc, s.widget, s.backend.Name())
}
