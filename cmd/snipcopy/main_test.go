package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/snipcopy/internal/clip"
	"go.klb.dev/snipcopy/internal/message"
	"go.klb.dev/snipcopy/internal/page"
)

const testSnippets = `snippets:
  - id: snippet
    text: "  hello world  \n"
  - id: greeting
    text: hi there
    message: Done
    message_id: greeting-ok
`

// run executes the root command with an isolated home and socket and returns
// stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SNIPCOPY_SOCKET", filepath.Join(home, "none.sock"))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSnippets(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snippets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSnippets), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "snipcopy dev\n", out)
}

func TestList(t *testing.T) {
	out, _, err := run(t, "list", "--snippets", writeSnippets(t))
	require.NoError(t, err)
	assert.Contains(t, out, "MESSAGE ID")
	assert.Contains(t, out, "snippet-message")
	assert.Contains(t, out, "greeting-ok")
	assert.Contains(t, out, `"hi there"`)
}

func TestListJSON(t *testing.T) {
	out, _, err := run(t, "list", "--json", "--snippets", writeSnippets(t))
	require.NoError(t, err)

	var got []page.Snippet
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, page.DefaultMessage, got[0].Message)
	assert.Equal(t, "greeting-ok", got[1].MessageID)
}

func TestCopyMemory(t *testing.T) {
	_, stderr, err := run(t, "copy", "greeting",
		"--snippets", writeSnippets(t),
		"--clipboard", "memory",
		"--wait=false",
		"--log-format", "json",
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Done")
}

func TestCopyWaitsForHide(t *testing.T) {
	start := time.Now()
	_, _, err := run(t, "copy", "snippet",
		"--snippets", writeSnippets(t),
		"--clipboard", "memory",
		"--hide-after", "50ms",
		"--log-format", "json",
	)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestCopyHeadlessFails(t *testing.T) {
	_, _, err := run(t, "copy", "snippet",
		"--snippets", writeSnippets(t),
		"--clipboard", "headless",
		"--log-format", "json",
	)
	assert.ErrorIs(t, err, errNotCopied)
}

func TestCopyUnknownSnippet(t *testing.T) {
	_, _, err := run(t, "copy", "nope",
		"--snippets", writeSnippets(t),
		"--clipboard", "memory",
		"--log-format", "json",
	)
	assert.ErrorIs(t, err, page.ErrElementNotFound)
}

func TestStatusWithoutDaemon(t *testing.T) {
	out, _, err := run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No daemon listening")
}

func TestPrintStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, &message.DaemonInfo{
		Source:    "laptop",
		Backend:   "system",
		PID:       42,
		StartedAt: now.Add(-90 * time.Second),
		Copies:    3,
		LastCopy:  now.Add(-5 * time.Second),
	}, now))

	out := buf.String()
	assert.Contains(t, out, "laptop")
	assert.Contains(t, out, "1m ago")
	assert.Contains(t, out, "5s ago")
	assert.Contains(t, out, "Copies:")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a\nb"`, quote("a\nb", 0))
	assert.Equal(t, `"héll…`, quote("héllo wörld", 6))
	assert.Equal(t, `"ok"`, quote("ok", 10))
}

func TestCopyTinyHideAfter(t *testing.T) {
	path := writeSnippets(t)
	for range 20 {
		_, stderr, err := run(t, "copy", "snippet",
			"--snippets", path,
			"--clipboard", "memory",
			"--hide-after", "1ns",
			"--log-format", "json",
		)
		require.NoError(t, err)
		assert.Contains(t, stderr, page.DefaultMessage)
	}
}

func TestDrainChanges(t *testing.T) {
	ch := make(chan page.Change, 4)
	ch <- page.Change{ID: "other", Visible: true}
	ch <- page.Change{ID: "snippet-message", Visible: true}
	ch <- page.Change{ID: "snippet-message", Visible: false}
	revealed, hidden := drainChanges(ch, "snippet-message")
	assert.True(t, revealed)
	assert.True(t, hidden)

	ch <- page.Change{ID: "snippet-message", Visible: false}
	revealed, _ = drainChanges(ch, "snippet-message")
	assert.False(t, revealed, "a hide alone is not a copy")
}

func TestClipboardHelp(t *testing.T) {
	help := clipboardHelp(nameDaemon)
	for _, name := range clip.Names() {
		assert.Contains(t, help, name)
	}
	assert.Contains(t, help, "|daemon")
	assert.NotContains(t, clipboardHelp(), nameDaemon)
}
