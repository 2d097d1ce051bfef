// Package notes stores quick notes in a flat JSON file of the form
// {"notes": [{"id", "text", "timestamp"}]}. The file is rewritten in full
// on every change.
package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyNote is returned by Add for blank text.
	ErrEmptyNote = errors.New("note text is empty")
)

// Note is a single entry.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type document struct {
	Notes []Note `json:"notes"`
}

// Store reads and writes the notes file at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report file recovery.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a store for path. The file is created on first use.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store writes to.
func (s *Store) Path() string {
	return s.path
}

// Add appends a note with a fresh id and the current time.
func (s *Store) Add(text string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, ErrEmptyNote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return Note{}, err
	}

	note := Note{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: s.now().UTC(),
	}
	doc.Notes = append(doc.Notes, note)

	if err := s.write(doc); err != nil {
		return Note{}, err
	}
	return note, nil
}

// List returns all notes in insertion order.
func (s *Store) List() ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Notes, nil
}

// Clear removes every note.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(document{Notes: []Note{}})
}

// read loads the document, creating an empty file when it does not exist.
// A file that cannot be parsed is logged and replaced with an empty one.
func (s *Store) read() (document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		empty := document{Notes: []Note{}}
		if err := s.write(empty); err != nil {
			return document{}, fmt.Errorf("unable to create notes file: %w", err)
		}
		return empty, nil
	}
	if err != nil {
		return document{}, fmt.Errorf("unable to read notes file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("notes file is corrupted, creating a fresh file",
			"path", s.path,
			"error", err)

		empty := document{Notes: []Note{}}
		if err := s.write(empty); err != nil {
			return document{}, fmt.Errorf("unable to create new notes file: %w", err)
		}
		return empty, nil
	}

	if doc.Notes == nil {
		doc.Notes = []Note{}
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode notes: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("unable to save notes: %w", err)
	}
	return nil
}
