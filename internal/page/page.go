// Package page holds the snippet document: the set of addressable elements
// a copy widget reads text from and whose visibility it toggles.
//
// Each snippet contributes two elements. The source element carries the
// snippet text; the message element carries the confirmation shown after a
// copy. Elements are created when the document is loaded and are never
// added or removed afterwards, only shown or hidden.
package page

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// DefaultMessage is the confirmation text used when a snippet doesn't set one.
const DefaultMessage = "Copied!"

// MessageSuffix is appended to a snippet id to name its message element when
// no explicit message_id is given.
const MessageSuffix = "-message"

// ErrElementNotFound is returned for lookups of ids that aren't in the document.
var ErrElementNotFound = errors.New("element not found")

// Element is a single addressable node.
type Element struct {
	ID      string
	Text    string
	Visible bool
}

// Change reports a visibility transition of one element.
type Change struct {
	ID      string
	Visible bool
}

// watchBuffer is the per-watcher channel capacity. Changes beyond it are
// dropped for that watcher.
const watchBuffer = 64

// Document is a concurrency-safe element store.
type Document struct {
	mu       sync.RWMutex
	elements map[string]*Element
	snippets []Snippet

	watchMu  sync.Mutex
	watchers map[int]chan Change
	nextID   int
}

// New builds a document from snippets. Ids must be non-empty and unique
// across both source and message elements.
func New(snippets []Snippet) (*Document, error) {
	d := &Document{
		elements: make(map[string]*Element, 2*len(snippets)),
		watchers: make(map[int]chan Change),
	}
	for i, s := range snippets {
		s = s.withDefaults()
		if s.ID == "" {
			return nil, fmt.Errorf("snippet %d: empty id", i)
		}
		if s.MessageID == s.ID {
			return nil, fmt.Errorf("snippet %q: message_id must differ from id", s.ID)
		}
		for _, id := range []string{s.ID, s.MessageID} {
			if _, dup := d.elements[id]; dup {
				return nil, fmt.Errorf("snippet %q: duplicate element id %q", s.ID, id)
			}
		}
		d.elements[s.ID] = &Element{ID: s.ID, Text: s.Text}
		d.elements[s.MessageID] = &Element{ID: s.MessageID, Text: s.Message}
		d.snippets = append(d.snippets, s)
	}
	return d, nil
}

// ElementText returns the text content of the element with the given id.
func (d *Document) ElementText(id string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}
	return el.Text, nil
}

// SetVisible sets the display state of an element. Watchers are notified of
// every call, including ones that don't change the state.
func (d *Document) SetVisible(id string, visible bool) error {
	d.mu.Lock()
	el, ok := d.elements[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}
	el.Visible = visible
	d.mu.Unlock()

	slog.Debug("element visibility", "id", id, "visible", visible)
	d.notify(Change{ID: id, Visible: visible})
	return nil
}

// Visible reports whether the element is currently shown. Unknown ids
// report false.
func (d *Document) Visible(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[id]
	return ok && el.Visible
}

// Element returns a copy of the element with the given id.
func (d *Document) Element(id string) (Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[id]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// Snippets returns the snippets in document order.
func (d *Document) Snippets() []Snippet {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Snippet, len(d.snippets))
	copy(out, d.snippets)
	return out
}

// MessageIDs returns the source id → message id mapping for every snippet.
func (d *Document) MessageIDs() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m := make(map[string]string, len(d.snippets))
	for _, s := range d.snippets {
		m[s.ID] = s.MessageID
	}
	return m
}

// IDs returns all element ids, sorted.
func (d *Document) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.elements))
	for id := range d.elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Watch returns a channel of visibility changes and a func that stops the
// watch and closes the channel. Delivery never blocks SetVisible; a watcher
// that falls behind loses changes.
func (d *Document) Watch() (<-chan Change, func()) {
	ch := make(chan Change, watchBuffer)

	d.watchMu.Lock()
	id := d.nextID
	d.nextID++
	d.watchers[id] = ch
	d.watchMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.watchMu.Lock()
			delete(d.watchers, id)
			d.watchMu.Unlock()
			close(ch)
		})
	}
}

func (d *Document) notify(c Change) {
	d.watchMu.Lock()
	defer d.watchMu.Unlock()
	for _, ch := range d.watchers {
		select {
		case ch <- c:
		default:
			slog.Warn("page watcher full, dropping change", "id", c.ID)
		}
	}
}
