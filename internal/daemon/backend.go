package daemon

import (
	"context"

	"go.klb.dev/snipcopy/internal/clip"
)

// Backend is a clip.Backend that forwards to a running daemon.
type Backend struct {
	client *Client
}

var _ clip.Backend = (*Backend)(nil)

// NewBackend wraps client as a clipboard backend.
func NewBackend(client *Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) Name() string { return "daemon" }

func (b *Backend) Read(ctx context.Context) (string, error) {
	return b.client.Paste(ctx)
}

func (b *Backend) Write(ctx context.Context, text string) error {
	return b.client.Copy(ctx, text)
}

func (b *Backend) Close() error { return nil }
