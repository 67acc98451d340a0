package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"go.klb.dev/snipcopy/internal/clip"
	"go.klb.dev/snipcopy/internal/daemon"
	"go.klb.dev/snipcopy/internal/ipc"
	"go.klb.dev/snipcopy/internal/page"
	"go.klb.dev/snipcopy/internal/widget"
)

const nameDaemon = "daemon"

var envKeyReplacer = strings.NewReplacer("-", "_")

// defaultSource returns a human-readable identifier for this host.
func defaultSource() string {
	if v := os.Getenv("SNIPCOPY_SOURCE"); v != "" {
		return v
	}
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}

// openBackend resolves the --clipboard setting. "auto" prefers a running
// daemon, then whatever clip.Auto finds.
func openBackend(name, source string) (clip.Backend, error) {
	switch name {
	case nameDaemon:
		return daemon.NewBackend(daemon.NewClient(ipc.Dial, source)), nil
	case clip.NameAuto, "":
		if ipc.IsRunning() {
			slog.Debug("using clipboard daemon", "socket", ipc.SocketPath())
			return daemon.NewBackend(daemon.NewClient(ipc.Dial, source)), nil
		}
	}
	b, err := clip.Open(name, clip.Options{})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// session is everything a copying command needs.
type session struct {
	doc     *page.Document
	backend clip.Backend
	widget  *widget.Widget
}

func openSession(v *viper.Viper) (*session, error) {
	doc, err := page.Load(v.GetString("snippets"))
	if err != nil {
		return nil, err
	}
	backend, err := openBackend(v.GetString("clipboard"), v.GetString("source"))
	if err != nil {
		return nil, err
	}
	slog.Debug("clipboard backend", "name", backend.Name())

	w := widget.New(doc, backend, widget.Options{
		HideAfter:  v.GetDuration("hide-after"),
		MessageIDs: doc.MessageIDs(),
	})
	return &session{doc: doc, backend: backend, widget: w}, nil
}

func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		slog.Debug("clipboard backend close", "err", err)
	}
}

// quote renders text for one-line display, cut to at most limit runes.
func quote(text string, limit int) string {
	q := []rune(strconv.Quote(text))
	if limit > 0 && len(q) > limit {
		q = append(q[:limit-1], '…')
	}
	return string(q)
}
