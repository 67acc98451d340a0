package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/snipcopy/internal/page"
)

// errNotCopied is returned when the clipboard write failed. The widget has
// already logged the cause.
var errNotCopied = errors.New("nothing copied: clipboard write failed")

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a snippet to the clipboard",
		Long: `Copies the trimmed text of snippet <id> to the clipboard and shows its
confirmation message on stderr until it hides (2s by default).

If a snipcopy daemon is running the clipboard write goes through it, so the
copied text survives this process exiting.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, args []string) error { return runCopy(cmd, v, args[0]) },
	}

	cmd.Flags().Bool("wait", true, "stay until the confirmation hides")
	addSnippetFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runCopy(cmd *cobra.Command, v *viper.Viper, id string) error {
	setupLogging(v)
	ctx := cmd.Context()

	s, err := openSession(v)
	if err != nil {
		return err
	}
	defer s.Close()

	changes, stop := s.doc.Watch()
	defer stop()

	if err := s.widget.CopyToClipboard(ctx, id); err != nil {
		return err
	}

	// The reveal is delivered before CopyToClipboard returns; the hide may
	// already be queued behind it when hide-after is very short.
	messageID := s.widget.MessageID(id)
	revealed, hidden := drainChanges(changes, messageID)
	if !revealed {
		return errNotCopied
	}

	text, _ := s.doc.ElementText(messageID)
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ %s\n", text)

	if hidden || !v.GetBool("wait") {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-changes:
			if c.ID == messageID && !c.Visible {
				return nil
			}
		}
	}
}

// drainChanges consumes the changes already queued and reports whether id
// was shown and whether it was hidden again after that.
func drainChanges(changes <-chan page.Change, id string) (revealed, hidden bool) {
	for {
		select {
		case c := <-changes:
			if c.ID != id {
				continue
			}
			if c.Visible {
				revealed, hidden = true, false
			} else if revealed {
				hidden = true
			}
		default:
			return revealed, hidden
		}
	}
}
