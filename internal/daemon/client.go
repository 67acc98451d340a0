package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.klb.dev/snipcopy/internal/ipc"
	"go.klb.dev/snipcopy/internal/message"
	"go.klb.dev/snipcopy/internal/wire"
)

// ErrDaemon wraps errors reported by the daemon itself, as opposed to
// failures reaching it.
var ErrDaemon = errors.New("daemon")

// Client sends one request per connection to a daemon.
type Client struct {
	dial   func() (net.Conn, error)
	source string
}

// NewClient returns a Client that reaches the daemon through dial. A nil dial
// uses ipc.Dial.
func NewClient(dial func() (net.Conn, error), source string) *Client {
	if dial == nil {
		dial = ipc.Dial
	}
	return &Client{dial: dial, source: source}
}

// Copy asks the daemon to put text on its clipboard.
func (c *Client) Copy(ctx context.Context, text string) error {
	_, err := c.roundTrip(ctx, &message.Message{
		Type:   message.TypeCopy,
		Source: c.source,
		Items:  []message.Item{message.NewTextItem(text)},
	}, message.TypeAck)
	return err
}

// Paste returns the daemon's clipboard text.
func (c *Client) Paste(ctx context.Context) (string, error) {
	resp, err := c.roundTrip(ctx, &message.Message{
		Type:   message.TypePaste,
		Source: c.source,
	}, message.TypeClipboard)
	if err != nil {
		return "", err
	}
	text, _ := resp.Text()
	return text, nil
}

// Status returns the daemon's self-description.
func (c *Client) Status(ctx context.Context) (*message.DaemonInfo, error) {
	resp, err := c.roundTrip(ctx, &message.Message{
		Type:   message.TypeStatus,
		Source: c.source,
	}, message.TypeStatusResponse)
	if err != nil {
		return nil, err
	}
	if resp.Daemon == nil {
		return nil, fmt.Errorf("%w: empty status response", ErrDaemon)
	}
	return resp.Daemon, nil
}

func (c *Client) roundTrip(ctx context.Context, req *message.Message, want message.Type) (*message.Message, error) {
	conn, err := c.dial()
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}
	wc := wire.New(conn)
	defer wc.Close()
	defer wc.Bind(ctx)()

	if err := wc.WriteMsg(req); err != nil {
		return nil, fmt.Errorf("send %s: %w", req.Type, err)
	}
	resp, err := wc.ReadMsg()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("read %s response: %w", req.Type, err)
	}

	switch resp.Type {
	case want:
		return resp, nil
	case message.TypeError:
		return nil, fmt.Errorf("%w: %s", ErrDaemon, resp.Error)
	default:
		return nil, fmt.Errorf("%w: unexpected response %q to %s", ErrDaemon, resp.Type, req.Type)
	}
}
