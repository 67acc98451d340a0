package clip

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// execBackend shells out to the platform clipboard helpers (xclip, xsel,
// wl-copy, pbcopy, clip.exe) through github.com/atotto/clipboard.
type execBackend struct{}

// NewExec returns the helper-binary backend, or ErrUnavailable if no helper
// was found on PATH.
func NewExec() (Backend, error) {
	if clipboard.Unsupported {
		return nil, fmt.Errorf("%w: no clipboard helper (xclip, xsel, wl-copy) on PATH", ErrUnavailable)
	}
	return execBackend{}, nil
}

func (execBackend) Name() string { return "exec" }

func (execBackend) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard read: %w", err)
	}
	return text, nil
}

func (execBackend) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

func (execBackend) Close() error { return nil }
