// Package ipc locates and opens the local socket used by CLI commands
// (copy, paste, status) to talk to a running snipcopy daemon.
//
// Unix platforms use a Unix domain socket; Windows uses a named pipe.
package ipc

import (
	"net"
	"os"
)

// SocketPath returns the platform-appropriate socket path.
//
//   - $SNIPCOPY_SOCKET if set
//   - Linux:   $XDG_RUNTIME_DIR/snipcopy.sock
//   - macOS:   $TMPDIR/snipcopy.sock
//   - Windows: \\.\pipe\snipcopy
func SocketPath() string {
	if s := os.Getenv("SNIPCOPY_SOCKET"); s != "" {
		return s
	}
	return socketPath()
}

// IsRunning reports whether a daemon appears to be listening on the socket.
// It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := Dial()
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates a listener on the socket path, removing any stale socket
// left by a crashed daemon first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	removeStale(path)
	return listenIPC(path)
}

// Dial connects to the daemon socket.
func Dial() (net.Conn, error) {
	return dialIPC(SocketPath())
}
