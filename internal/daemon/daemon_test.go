package daemon

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/snipcopy/internal/clip"
	"go.klb.dev/snipcopy/internal/clock"
	"go.klb.dev/snipcopy/internal/message"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// pipeDialer returns a dial func that serves each connection with s over an
// in-memory pipe.
func pipeDialer(s *Server) func() (net.Conn, error) {
	return func() (net.Conn, error) {
		client, server := net.Pipe()
		go s.handle(context.Background(), server)
		return client, nil
	}
}

func TestCopyAndPaste(t *testing.T) {
	mem := clip.NewMemory()
	clk := clock.Fake(epoch)
	s := NewServer(mem, clk, "host-a")
	c := NewClient(pipeDialer(s), "cli")
	ctx := context.Background()

	require.NoError(t, c.Copy(ctx, "hello world"))
	text, err := mem.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	pasted, err := c.Paste(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello world", pasted)

	clk.Advance(time.Minute)
	require.NoError(t, c.Copy(ctx, "second"))

	info, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "host-a", info.Source)
	assert.Equal(t, "memory", info.Backend)
	assert.Equal(t, int64(2), info.Copies)
	assert.Equal(t, epoch, info.StartedAt.UTC())
	assert.Equal(t, epoch.Add(time.Minute), info.LastCopy.UTC())
	assert.Equal(t, os.Getpid(), info.PID)
}

func TestWriteFailureReachesClient(t *testing.T) {
	s := NewServer(clip.NewHeadless(), nil, "host-a")
	b := NewBackend(NewClient(pipeDialer(s), "cli"))

	err := b.Write(context.Background(), "x")
	require.ErrorIs(t, err, ErrDaemon)
	assert.Contains(t, err.Error(), "clipboard unavailable")

	info, err := NewClient(pipeDialer(s), "cli").Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Copies)
}

func TestHandleRejects(t *testing.T) {
	s := NewServer(clip.NewMemory(), nil, "host-a")

	resp := s.Handle(context.Background(), &message.Message{Type: message.TypeCopy})
	assert.Equal(t, message.TypeError, resp.Type)

	resp = s.Handle(context.Background(), &message.Message{Type: "BOGUS"})
	assert.Equal(t, message.TypeError, resp.Type)
	assert.Contains(t, resp.Error, "BOGUS")
}

func TestDialFailure(t *testing.T) {
	c := NewClient(func() (net.Conn, error) {
		return nil, &net.OpError{Op: "dial", Err: os.ErrNotExist}
	}, "cli")
	err := c.Copy(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDaemon)
}

func TestClientHonoursContext(t *testing.T) {
	// A daemon that never answers.
	c := NewClient(func() (net.Conn, error) {
		client, server := net.Pipe()
		go func() {
			buf := make([]byte, 1024)
			for {
				if _, err := server.Read(buf); err != nil {
					return
				}
			}
		}()
		return client, nil
	}, "cli")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.Copy(ctx, "x")
	require.Error(t, err)
}

func TestServeOverUnixSocket(t *testing.T) {
	dir, err := os.MkdirTemp("", "sc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, "d.sock")

	ln, err := net.Listen("unix", path)
	require.NoError(t, err)

	mem := clip.NewMemory()
	s := NewServer(mem, nil, "host-a")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	c := NewClient(func() (net.Conn, error) { return net.Dial("unix", path) }, "cli")
	require.NoError(t, c.Copy(context.Background(), "over the socket"))
	assert.Equal(t, 1, mem.Writes())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))

	long := strings.Repeat("é", 100) // 200 bytes
	p := preview(long)
	assert.True(t, strings.HasSuffix(p, "…"))
	assert.LessOrEqual(t, len(p), previewLimit+len("…"))
	assert.True(t, strings.HasPrefix(long, strings.TrimSuffix(p, "…")))
}
