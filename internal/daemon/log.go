package daemon

import (
	"context"
	"log/slog"
)

const previewLimit = 120

// logCopy logs a copy at INFO (source, size) and, at DEBUG, a text preview
// of up to 120 bytes.
func logCopy(source, text string) {
	slog.Info("clipboard updated", "source", source, "bytes", len(text))

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	slog.Debug("clipboard text", "preview", preview(text))
}

func preview(text string) string {
	if len(text) <= previewLimit {
		return text
	}
	cut := previewLimit
	// Don't split a UTF-8 sequence.
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return text[:cut] + "…"
}
