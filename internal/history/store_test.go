package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lifecell/internal/core"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoHistory)

	want := State{Size: 3, Cursor: 1, Snapshots: []core.Snapshot{snap(4), snap(5), snap(6)}}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, want.Size, got.Size)
	require.Equal(t, want.Cursor, got.Cursor)
	require.Len(t, got.Snapshots, 3)
	for k := range want.Snapshots {
		require.Equal(t, want.Snapshots[k].Generation, got.Snapshots[k].Generation)
		require.True(t, want.Snapshots[k].Equal(got.Snapshots[k]))
	}
}

func TestFileStoreRejectsSizeMismatch(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	require.Error(t, store.Save(State{Size: 4, Snapshots: []core.Snapshot{snap(0)}}))
}

func TestFileStoreCorrupt(t *testing.T) {
	valid := func() fileState {
		return fileState{
			Version: fileVersion,
			Size:    3,
			Cursor:  1,
			Snapshots: []fileSnapshot{
				{Generation: 1, Cells: snap(1).Pack()},
				{Generation: 2, Cells: snap(2).Pack()},
			},
		}
	}
	cases := map[string]func(*fileState){
		"version":    func(s *fileState) { s.Version = 9 },
		"size":       func(s *fileState) { s.Size = 0 },
		"cursor":     func(s *fileState) { s.Cursor = 2 },
		"order":      func(s *fileState) { s.Snapshots[1].Generation = 1 },
		"cell bytes": func(s *fileState) { s.Snapshots[0].Cells = []byte{0} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "history.json")
			doc := valid()
			mutate(&doc)
			data, err := json.Marshal(doc)
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(path, data, 0o644))
			_, err = NewFileStore(path).Load()
			require.ErrorIs(t, err, ErrCorrupt)
		})
	}

	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,2"), 0o644))
	_, err := NewFileStore(path).Load()
	require.ErrorIs(t, err, ErrCorrupt)
}
