//go:build linux || darwin || windows

package clip

import (
	"context"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

type systemBackend struct{}

// NewSystem returns the native clipboard backend. clipboard.Init is called
// here rather than in init() so that commands that never touch the native
// clipboard don't fail or warn on headless systems.
func NewSystem() (Backend, error) {
	initOnce.Do(func() { initErr = clipboard.Init() })
	if initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, initErr)
	}
	return systemBackend{}, nil
}

func (systemBackend) Name() string { return "system" }

func (systemBackend) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}

func (systemBackend) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// The returned channel fires when another program takes ownership;
	// snipcopy doesn't track that.
	_ = clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (systemBackend) Close() error { return nil }
