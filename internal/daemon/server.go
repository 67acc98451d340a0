// Package daemon keeps a clipboard backend alive between CLI invocations.
//
// On X11 and Wayland the clipboard is owned by a process: when a short-lived
// "snipcopy copy" exits, its selection goes with it. The daemon owns the
// clipboard instead and CLI commands hand it text over the local IPC socket.
// Each connection carries exactly one request and one response.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.klb.dev/snipcopy/internal/clip"
	"go.klb.dev/snipcopy/internal/clock"
	"go.klb.dev/snipcopy/internal/message"
	"go.klb.dev/snipcopy/internal/wire"
)

const requestTimeout = 10 * time.Second

// Server answers COPY, PASTE and STATUS requests against one backend.
type Server struct {
	backend clip.Backend
	clock   clock.Clock
	source  string
	started time.Time

	copies   atomic.Int64
	mu       sync.Mutex
	lastCopy time.Time
}

// NewServer returns a Server writing to backend. source names this host in
// status output.
func NewServer(backend clip.Backend, clk clock.Clock, source string) *Server {
	if clk == nil {
		clk = clock.Real()
	}
	return &Server{
		backend: backend,
		clock:   clk,
		source:  source,
		started: clk.Now(),
	}
}

// Serve accepts connections on ln until ctx is cancelled or ln fails. It
// closes ln on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()
	defer ln.Close()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handle(ctx, conn)
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	wc := wire.New(conn)
	defer wc.Close()
	defer wc.Bind(ctx)()

	msg, err := wc.ReadMsg()
	if err != nil {
		slog.Debug("ipc: read failed", "remote", wc.RemoteAddr(), "err", err)
		return
	}

	resp := s.Handle(ctx, msg)
	if err := wc.WriteMsg(resp); err != nil {
		slog.Debug("ipc: write failed", "remote", wc.RemoteAddr(), "err", err)
	}
}

// Handle answers a single request.
func (s *Server) Handle(ctx context.Context, msg *message.Message) *message.Message {
	switch msg.Type {
	case message.TypeCopy:
		text, ok := msg.Text()
		if !ok {
			return errorMsg("copy request carries no text/plain item")
		}
		if err := s.backend.Write(ctx, text); err != nil {
			slog.Error("clipboard write failed", "source", msg.Source, "err", err)
			return errorMsg(err.Error())
		}
		s.copies.Add(1)
		s.mu.Lock()
		s.lastCopy = s.clock.Now()
		s.mu.Unlock()
		logCopy(msg.Source, text)
		return &message.Message{Type: message.TypeAck, Source: s.source}

	case message.TypePaste:
		text, err := s.backend.Read(ctx)
		if err != nil {
			return errorMsg(err.Error())
		}
		return &message.Message{
			Type:   message.TypeClipboard,
			Source: s.source,
			Items:  []message.Item{message.NewTextItem(text)},
		}

	case message.TypeStatus:
		return &message.Message{
			Type:   message.TypeStatusResponse,
			Source: s.source,
			Daemon: s.info(),
		}

	default:
		slog.Warn("ipc: unexpected message type", "type", msg.Type)
		return errorMsg(fmt.Sprintf("unexpected message type %q", msg.Type))
	}
}

func (s *Server) info() *message.DaemonInfo {
	s.mu.Lock()
	last := s.lastCopy
	s.mu.Unlock()
	return &message.DaemonInfo{
		Source:    s.source,
		Backend:   s.backend.Name(),
		PID:       os.Getpid(),
		StartedAt: s.started,
		Copies:    s.copies.Load(),
		LastCopy:  last,
	}
}

func errorMsg(text string) *message.Message {
	return &message.Message{Type: message.TypeError, Error: text}
}
