// Package clip provides text clipboard backends. Build constraints select
// the native implementation:
//
//	system.go        — golang.design/x/clipboard (linux, darwin, windows)
//	system_other.go  — everything else; always unavailable
//
// The exec, osc52, memory and headless backends are platform independent.
package clip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"go.klb.dev/snipcopy/internal/logging"
)

var (
	// ErrUnavailable means the backend cannot reach a clipboard in this
	// environment (no display server, no helper binary, no terminal).
	ErrUnavailable = errors.New("clipboard unavailable")

	// ErrUnsupported means the backend cannot perform the operation at all.
	ErrUnsupported = errors.New("operation not supported by clipboard backend")

	// ErrUnknownBackend is returned by Open for names it doesn't recognise.
	ErrUnknownBackend = errors.New("unknown clipboard backend")
)

// Backend is the interface all clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current clipboard text.
	Read(ctx context.Context) (string, error)

	// Write replaces the clipboard contents with text.
	Write(ctx context.Context, text string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Backend names accepted by Open.
const (
	NameAuto     = "auto"
	NameSystem   = "system"
	NameExec     = "exec"
	NameOSC52    = "osc52"
	NameMemory   = "memory"
	NameHeadless = "headless"
)

// Options tunes backend construction.
type Options struct {
	// Terminal receives OSC 52 sequences. Nil opens /dev/tty on each write.
	Terminal io.Writer
}

// Names returns the backend names Open understands, sorted. Flag help text
// is built from it.
func Names() []string {
	n := []string{NameAuto, NameSystem, NameExec, NameOSC52, NameMemory, NameHeadless}
	sort.Strings(n)
	return n
}

// Open returns the named backend. NameAuto picks the first backend usable in
// this environment: system, then OSC 52 when stdout is a terminal, then the
// exec helpers, falling back to headless.
func Open(name string, opts Options) (Backend, error) {
	switch name {
	case NameAuto, "":
		return Auto(opts), nil
	case NameSystem:
		return NewSystem()
	case NameExec:
		return NewExec()
	case NameOSC52:
		return NewOSC52(opts.Terminal), nil
	case NameMemory:
		return NewMemory(), nil
	case NameHeadless:
		return NewHeadless(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// Auto resolves NameAuto. It never fails; the last resort is headless, whose
// writes report ErrUnavailable.
func Auto(opts Options) Backend {
	b, err := NewSystem()
	if err == nil {
		return b
	}
	slog.Debug("system clipboard unavailable", "err", err)

	if opts.Terminal != nil || logging.IsTTY(os.Stdout) {
		return NewOSC52(opts.Terminal)
	}

	b, err = NewExec()
	if err == nil {
		return b
	}
	slog.Debug("clipboard helpers unavailable", "err", err)

	slog.Warn("no clipboard available, running headless")
	return NewHeadless()
}
