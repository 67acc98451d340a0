package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"go.klb.dev/snipcopy/internal/page"
	"go.klb.dev/snipcopy/internal/widget"
)

// Run shows the browser full-screen until the user quits or ctx is done.
func Run(ctx context.Context, doc *page.Document, w *widget.Widget, backend string, opts ...tea.ProgramOption) error {
	changes, stop := doc.Watch()
	defer stop()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, doc, w, changes, backend), opts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
