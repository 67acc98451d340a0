package clip

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// osc52Backend asks the terminal emulator to set the clipboard with the OSC 52
// escape sequence. It works over SSH; it cannot read the clipboard back.
type osc52Backend struct {
	term io.Writer
}

// NewOSC52 returns a backend writing OSC 52 sequences to term. A nil term
// opens /dev/tty for every write, bypassing whatever owns stdout.
func NewOSC52(term io.Writer) Backend {
	return &osc52Backend{term: term}
}

func (b *osc52Backend) Name() string { return "osc52" }

func (b *osc52Backend) Read(context.Context) (string, error) {
	return "", fmt.Errorf("osc52 read: %w", ErrUnsupported)
}

func (b *osc52Backend) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w := b.term
	if w == nil {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer tty.Close()
		w = tty
	}

	seq := osc52.New(text)
	switch {
	case inTmux():
		seq = seq.Tmux()
	case inScreen():
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(w); err != nil {
		return fmt.Errorf("osc52 write: %w", err)
	}
	return nil
}

func (b *osc52Backend) Close() error { return nil }

// inTmux detects tmux locally ($TMUX) or forwarded through SSH ($TERM).
func inTmux() bool {
	return os.Getenv("TMUX") != "" || strings.HasPrefix(os.Getenv("TERM"), "tmux")
}

func inScreen() bool {
	return os.Getenv("STY") != "" || strings.HasPrefix(os.Getenv("TERM"), "screen")
}
