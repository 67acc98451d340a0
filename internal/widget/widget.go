// Package widget implements the copy-to-clipboard action: read an element's
// text, write it trimmed to the clipboard, and briefly reveal the element's
// confirmation message.
//
// The widget owns no UI, clipboard or timer of its own. Hosts (the CLI, the
// terminal UI) inject them, so the same action runs unchanged in tests
// against a fake clock and an in-memory clipboard.
package widget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.klb.dev/snipcopy/internal/clock"
	"go.klb.dev/snipcopy/internal/page"
)

// DefaultHideAfter is how long the confirmation message stays visible.
const DefaultHideAfter = 2 * time.Second

// UI is the element access the widget needs from its host.
type UI interface {
	ElementText(id string) (string, error)
	SetVisible(id string, visible bool) error
}

// Clipboard is the host clipboard-write capability. Write blocks until the
// host reports success or failure.
type Clipboard interface {
	Write(ctx context.Context, text string) error
}

// Options configures a Widget. Zero values select the defaults.
type Options struct {
	// HideAfter is the confirmation display time. Defaults to DefaultHideAfter.
	HideAfter time.Duration

	// MessageIDs maps a source element id to its message element id. Ids
	// not present fall back to page.MessageIDFor.
	MessageIDs map[string]string

	// Clock schedules the auto-hide. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives clipboard failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// Widget copies element text to the clipboard. It is safe for concurrent use.
type Widget struct {
	ui        UI
	clipboard Clipboard
	clock     clock.Clock
	hideAfter time.Duration
	messages  map[string]string
	log       *slog.Logger

	// mu orders reveal/hide pairs per message element. reveals counts the
	// reveals of each message element; a hide only applies if no reveal
	// happened after the one that scheduled it.
	mu      sync.Mutex
	reveals map[string]uint64
}

// New returns a Widget bound to ui and cb.
func New(ui UI, cb Clipboard, opts Options) *Widget {
	w := &Widget{
		ui:        ui,
		clipboard: cb,
		clock:     opts.Clock,
		hideAfter: opts.HideAfter,
		messages:  make(map[string]string, len(opts.MessageIDs)),
		log:       opts.Logger,
		reveals:   make(map[string]uint64),
	}
	for src, msg := range opts.MessageIDs {
		w.messages[src] = msg
	}
	if w.clock == nil {
		w.clock = clock.Real()
	}
	if w.hideAfter <= 0 {
		w.hideAfter = DefaultHideAfter
	}
	if w.log == nil {
		w.log = slog.Default()
	}
	return w
}

// HideAfter returns the confirmation display time.
func (w *Widget) HideAfter() time.Duration { return w.hideAfter }

// MessageID returns the id of the message element paired with sourceID.
func (w *Widget) MessageID(sourceID string) string {
	if id, ok := w.messages[sourceID]; ok {
		return id
	}
	return page.MessageIDFor(sourceID)
}

// CopyToClipboard copies the trimmed text of sourceID to the clipboard and,
// once the write succeeds, shows the paired message element for HideAfter.
//
// A missing source or message element is returned as an error wrapping
// page.ErrElementNotFound. A failed clipboard write is logged and otherwise
// ignored: the message stays hidden and CopyToClipboard returns nil.
func (w *Widget) CopyToClipboard(ctx context.Context, sourceID string) error {
	text, err := w.ui.ElementText(sourceID)
	if err != nil {
		return fmt.Errorf("copy %s: %w", sourceID, err)
	}
	text = strings.TrimSpace(text)

	if err := w.clipboard.Write(ctx, text); err != nil {
		w.log.Error("clipboard write failed", "element", sourceID, "err", err)
		return nil
	}
	w.log.Debug("copied to clipboard", "element", sourceID, "bytes", len(text))

	messageID := w.MessageID(sourceID)

	w.mu.Lock()
	if err := w.ui.SetVisible(messageID, true); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("copy %s: message: %w", sourceID, err)
	}
	w.reveals[messageID]++
	seq := w.reveals[messageID]
	w.mu.Unlock()

	w.clock.AfterFunc(w.hideAfter, func() { w.hide(messageID, seq) })
	return nil
}

func (w *Widget) hide(messageID string, seq uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.reveals[messageID] != seq {
		// A later copy re-revealed the message; its own timer hides it.
		return
	}
	if err := w.ui.SetVisible(messageID, false); err != nil {
		w.log.Warn("hide message failed", "element", messageID, "err", err)
	}
}
