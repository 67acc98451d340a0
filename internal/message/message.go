// Package message defines the snipcopy local protocol spoken between CLI
// commands and the clipboard daemon.
//
// All messages are newline-delimited JSON. Payloads are base64-encoded so
// arbitrary text (including newlines and control characters) survives the
// line framing. Each message is exactly one line: <json>\n
package message

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies the kind of message.
type Type string

const (
	TypeCopy           Type = "COPY"
	TypePaste          Type = "PASTE"
	TypeClipboard      Type = "CLIPBOARD"
	TypeAck            Type = "ACK"
	TypeError          Type = "ERROR"
	TypeStatus         Type = "STATUS"
	TypeStatusResponse Type = "STATUS_RESPONSE"
)

// MIMEText is the only item type snipcopy produces.
const MIMEText = "text/plain"

// Item is a single clipboard representation with a MIME type.
// Data is always base64-encoded.
type Item struct {
	MIME string `json:"mime"`
	Data string `json:"data"`
}

// NewTextItem creates a text/plain Item from a plain string.
func NewTextItem(text string) Item {
	return Item{
		MIME: MIMEText,
		Data: base64.StdEncoding.EncodeToString([]byte(text)),
	}
}

// Decode returns the raw bytes of the item payload.
func (it Item) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(it.Data)
}

// DaemonInfo is the STATUS_RESPONSE payload.
type DaemonInfo struct {
	Source    string    `json:"source"`
	Backend   string    `json:"backend"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
	Copies    int64     `json:"copies"`
	LastCopy  time.Time `json:"last_copy,omitempty"`
}

// Message is the top-level wire envelope.
type Message struct {
	Type   Type   `json:"type"`
	Source string `json:"source,omitempty"`

	// COPY, CLIPBOARD
	Items []Item `json:"items,omitempty"`

	// STATUS_RESPONSE
	Daemon *DaemonInfo `json:"daemon,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}

// Text returns the decoded content of the first text/plain item. ok is false
// if there is none or it doesn't decode.
func (m *Message) Text() (text string, ok bool) {
	for _, it := range m.Items {
		if it.MIME != MIMEText {
			continue
		}
		b, err := it.Decode()
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	return "", false
}
