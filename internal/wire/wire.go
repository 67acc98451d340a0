// Package wire handles reading and writing newline-delimited JSON messages
// over a net.Conn.
//
// Wire format:
//
//	<json>\n
package wire

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"go.klb.dev/snipcopy/internal/message"
)

const (
	// MaxMessageSize is the largest message we will read (16 MiB).
	MaxMessageSize = 16 * 1024 * 1024

	writeTimeout = 5 * time.Second
)

// Conn wraps a net.Conn with buffered newline-delimited JSON framing.
type Conn struct {
	conn net.Conn
	br   *bufio.Reader

	// deadline is the one installed by Bind; zero means none.
	deadline time.Time
}

// New wraps conn.
func New(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		br:   bufio.NewReaderSize(conn, 64*1024),
	}
}

// Bind applies ctx's deadline to the connection and closes it if ctx is
// cancelled first. The returned func releases the binding.
func (c *Conn) Bind(ctx context.Context) func() {
	if dl, ok := ctx.Deadline(); ok {
		c.deadline = dl
		_ = c.conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() { _ = c.conn.Close() })
	return func() { stop() }
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.conn.Close() }

// RemoteAddr returns the remote network address.
func (c *Conn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

// WriteMsg serialises msg to JSON and writes it followed by a newline.
func (c *Conn) WriteMsg(msg *message.Message) error {
	raw, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	line := append(raw, '\n')

	_ = c.conn.SetWriteDeadline(c.writeDeadline(time.Now()))
	_, err = c.conn.Write(line)
	_ = c.conn.SetWriteDeadline(c.deadline)
	return err
}

// writeDeadline returns the deadline for a write starting at now: the
// per-write limit, or the bound deadline if that comes first.
func (c *Conn) writeDeadline(now time.Time) time.Time {
	dl := now.Add(writeTimeout)
	if !c.deadline.IsZero() && c.deadline.Before(dl) {
		return c.deadline
	}
	return dl
}

// ReadMsg reads one newline-terminated line and deserialises it.
func (c *Conn) ReadMsg() (*message.Message, error) {
	var buf bytes.Buffer
	for {
		chunk, err := c.br.ReadSlice('\n')
		if buf.Len()+len(chunk) > MaxMessageSize {
			return nil, fmt.Errorf("message too large (> %d bytes)", MaxMessageSize)
		}
		buf.Write(chunk)
		if err == nil {
			break
		}
		if err != bufio.ErrBufferFull {
			return nil, err
		}
	}

	line := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})
	return message.Decode(line)
}
