package wire

import (
	"context"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/snipcopy/internal/message"
)

func pipe(t *testing.T) (*Conn, *Conn) {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})
	return New(a), New(b)
}

func TestMessagesCrossTheWire(t *testing.T) {
	client, server := pipe(t)
	text := "line one\nline two\t\x00"

	go func() {
		_ = client.WriteMsg(&message.Message{
			Type:   message.TypeCopy,
			Source: "test",
			Items:  []message.Item{message.NewTextItem(text)},
		})
	}()

	msg, err := server.ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, message.TypeCopy, msg.Type)
	assert.Equal(t, "test", msg.Source)
	got, ok := msg.Text()
	require.True(t, ok)
	assert.Equal(t, text, got)
}

func TestReadsLinesLargerThanBuffer(t *testing.T) {
	client, server := pipe(t)
	big := strings.Repeat("x", 200*1024)

	go func() {
		_ = client.WriteMsg(&message.Message{
			Type:  message.TypeCopy,
			Items: []message.Item{message.NewTextItem(big)},
		})
	}()

	msg, err := server.ReadMsg()
	require.NoError(t, err)
	got, ok := msg.Text()
	require.True(t, ok)
	assert.Len(t, got, len(big))
}

func TestReadRejectsGarbage(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	go func() { _, _ = a.Write([]byte("not json\n")) }()

	_, err := New(b).ReadMsg()
	assert.Error(t, err)
}

func TestBindCancelClosesConn(t *testing.T) {
	_, server := pipe(t)
	ctx, cancel := context.WithCancel(context.Background())
	release := server.Bind(ctx)
	defer release()

	errc := make(chan error, 1)
	go func() {
		_, err := server.ReadMsg()
		errc <- err
	}()
	cancel()

	select {
	case err := <-errc:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("read not interrupted by cancel")
	}
}

func TestWriteDeadlineHonoursBind(t *testing.T) {
	_, server := pipe(t)
	now := time.Now()
	assert.Equal(t, now.Add(writeTimeout), server.writeDeadline(now))

	ctx, cancel := context.WithDeadline(context.Background(), now.Add(time.Second))
	defer cancel()
	defer server.Bind(ctx)()
	assert.Equal(t, now.Add(time.Second), server.writeDeadline(now))

	later, cancelLater := context.WithDeadline(context.Background(), now.Add(time.Minute))
	defer cancelLater()
	defer server.Bind(later)()
	assert.Equal(t, now.Add(writeTimeout), server.writeDeadline(now))
}

func TestWriteTimesOutAtBoundDeadline(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	// Deadline without cancellation: only the conn deadline can stop the write.
	c := New(a)
	c.deadline = time.Now().Add(50 * time.Millisecond)

	start := time.Now()
	err := c.WriteMsg(&message.Message{Type: message.TypeStatus})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
	assert.Less(t, time.Since(start), writeTimeout)
}

func TestRemoteAddr(t *testing.T) {
	client, _ := pipe(t)
	assert.Equal(t, "pipe", client.RemoteAddr().Network())
}
