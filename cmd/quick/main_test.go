package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/asynckit/notes"
)

func newStore(t *testing.T) *notes.Store {
	t.Helper()
	return notes.NewStore(filepath.Join(t.TempDir(), "notes.json"))
}

func TestRunAddListClear(t *testing.T) {
	store := newStore(t)
	var out bytes.Buffer

	require.NoError(t, run(store, []string{"list"}, &out))
	assert.Contains(t, out.String(), "No notes yet. Add one quickly!")

	out.Reset()
	require.NoError(t, run(store, []string{"add", "buy", "milk"}, &out))
	assert.Contains(t, out.String(), "Note added quickly!")
	require.NoError(t, run(store, []string{"ADD", "call mom"}, &out))

	all, err := store.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "buy milk", all[0].Text)
	assert.Equal(t, "call mom", all[1].Text)

	out.Reset()
	require.NoError(t, run(store, []string{"list"}, &out))
	assert.Contains(t, out.String(), "Your Quick Notes:")
	assert.Contains(t, out.String(), "buy milk")
	assert.Contains(t, out.String(), "call mom")

	out.Reset()
	require.NoError(t, run(store, []string{"clear"}, &out))
	assert.Contains(t, out.String(), "All notes cleared!")

	all, err = store.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunAddEmptyNote(t *testing.T) {
	store := newStore(t)
	var out bytes.Buffer

	assert.EqualError(t, run(store, []string{"add"}, &out), "please provide a note to add")
	assert.EqualError(t, run(store, []string{"add", "  "}, &out), "please provide a note to add")

	all, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run(newStore(t), []string{"delete"}, &out)
	assert.ErrorContains(t, err, "unknown command: delete")
	assert.ErrorContains(t, err, "add, list, or clear")
}
