package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotes() []notes.Note {
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []notes.Note{
		{
			ID:        "1",
			Content:   "Buy milk",
			Color:     "#ffeb3b",
			TextColor: "#000000",
			Font:      "Arial",
			Style:     notes.StyleGrid,
			Priority:  notes.PriorityLow,
			CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			Completed: true,
		},
		{
			ID:        "2",
			Content:   "Call Sam",
			Color:     "#ffffff",
			TextColor: "#000000",
			Font:      "Georgia",
			Style:     notes.StyleCommon,
			Priority:  notes.PriorityHigh,
			CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			DueDate:   &due,
		},
	}
}

func TestFile_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")

	f, err := NewFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())

	// missing file loads as an empty collection
	loaded, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, f.Save(ctx, testNotes()))
	loaded, err = f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testNotes(), loaded)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.json", entries[0].Name())

	require.NoError(t, f.Save(ctx, nil))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, err = f.Load(context.Background())
	require.ErrorIs(t, err, notes.ErrCorruptData)
}

func TestNewFile_Errors(t *testing.T) {
	_, err := NewFile("")
	require.Error(t, err)

	// parent is a file, not a dir
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))
	_, err = NewFile(filepath.Join(parent, "tasks.json"))
	require.Error(t, err)
}
