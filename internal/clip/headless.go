package clip

import (
	"context"
	"fmt"
)

// headlessBackend stands in when no clipboard is reachable (containers, CI).
// Every operation fails with ErrUnavailable so callers surface the problem
// instead of silently losing the copy.
type headlessBackend struct{}

// NewHeadless returns the no-clipboard backend.
func NewHeadless() Backend { return headlessBackend{} }

func (headlessBackend) Name() string { return "headless (no clipboard)" }

func (headlessBackend) Read(context.Context) (string, error) {
	return "", fmt.Errorf("read: %w", ErrUnavailable)
}

func (headlessBackend) Write(context.Context, string) error {
	return fmt.Errorf("write: %w", ErrUnavailable)
}

func (headlessBackend) Close() error { return nil }
