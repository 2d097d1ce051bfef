package notes

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "quick-notes.json"), opts...)
}

func TestListCreatesMissingFile(t *testing.T) {
	s := newTestStore(t)

	notes, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, notes)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err, "List should create the file")
	assert.JSONEq(t, `{"notes": []}`, string(data))
}

func TestAddAndList(t *testing.T) {
	s := newTestStore(t)
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first, err := s.Add("buy milk")
	require.NoError(t, err)
	second, err := s.Add("  call mum  ")
	require.NoError(t, err)

	_, err = uuid.Parse(first.ID)
	assert.NoError(t, err, "ids should be UUIDs")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "call mum", second.Text, "text is trimmed")
	assert.Equal(t, fixed, first.Timestamp)

	notes, err := s.List()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "buy milk", notes[0].Text)
	assert.Equal(t, "call mum", notes[1].Text)
}

func TestAddEmptyNote(t *testing.T) {
	s := newTestStore(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := s.Add(text)
		assert.ErrorIs(t, err, ErrEmptyNote)
	}

	notes, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestFileFormat(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("format check")
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var raw struct {
		Notes []map[string]any `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.Notes, 1)
	assert.Contains(t, raw.Notes[0], "id")
	assert.Equal(t, "format check", raw.Notes[0]["text"])
	assert.Contains(t, raw.Notes[0], "timestamp")
	assert.Contains(t, string(data), "\n  ", "file is indented")
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("one")
	require.NoError(t, err)
	_, err = s.Add("two")
	require.NoError(t, err)

	require.NoError(t, s.Clear())

	notes, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestCorruptedFileIsRecreated(t *testing.T) {
	var logs bytes.Buffer
	s := newTestStore(t, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	notes, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Contains(t, logs.String(), "notes file is corrupted")

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes": []}`, string(data))

	_, err = s.Add("after recovery")
	require.NoError(t, err)
	notes, err = s.List()
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestNullNotesField(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"notes": null}`), 0o644))

	notes, err := s.List()
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestUnwritableLocation(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing-dir", "notes.json"))

	_, err := s.Add("nowhere to go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to create notes file")
}
