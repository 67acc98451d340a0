package page

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Snippet is one entry of a snippets file.
//
//	snippets:
//	  - id: snippet
//	    text: |
//	      hello world
//	    message: Copied!        # optional
//	    message_id: snippet-ok  # optional, defaults to <id>-message
type Snippet struct {
	ID        string `yaml:"id" json:"id"`
	Text      string `yaml:"text" json:"text"`
	Message   string `yaml:"message,omitempty" json:"message"`
	MessageID string `yaml:"message_id,omitempty" json:"message_id"`
}

func (s Snippet) withDefaults() Snippet {
	if s.Message == "" {
		s.Message = DefaultMessage
	}
	if s.MessageID == "" && s.ID != "" {
		s.MessageID = MessageIDFor(s.ID)
	}
	return s
}

// MessageIDFor returns the conventional message element id for a source id.
func MessageIDFor(sourceID string) string {
	return sourceID + MessageSuffix
}

type file struct {
	Snippets []Snippet `yaml:"snippets"`
}

// Parse reads a YAML snippets document from r.
func Parse(r io.Reader) (*Document, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse snippets: %w", err)
	}
	return New(f.Snippets)
}

// Load reads the snippets file at path.
func Load(path string) (*Document, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snippets: %w", err)
	}
	defer fh.Close()

	d, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
