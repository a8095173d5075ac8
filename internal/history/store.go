package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"lifecell/internal/core"
	"lifecell/internal/fileutil"
)

var (
	// ErrNoHistory is returned by Load when nothing was saved yet.
	ErrNoHistory = errors.New("no saved history")
	// ErrCorrupt is returned by Load for unreadable or inconsistent files.
	ErrCorrupt = errors.New("corrupt history file")
)

const fileVersion = 1

// State is the persisted form of a log: interior size, cursor, and the
// snapshots oldest first.
type State struct {
	Size      int
	Cursor    int
	Snapshots []core.Snapshot
}

type fileSnapshot struct {
	Generation uint64 `json:"generation"`
	Cells      []byte `json:"cells"`
}

type fileState struct {
	Version   int            `json:"version"`
	Size      int            `json:"size"`
	Cursor    int            `json:"cursor"`
	Snapshots []fileSnapshot `json:"snapshots"`
}

// FileStore saves history as JSON with bit-packed cells.
type FileStore struct {
	Path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

// Save writes st atomically.
func (s *FileStore) Save(st State) error {
	doc := fileState{Version: fileVersion, Size: st.Size, Cursor: st.Cursor}
	doc.Snapshots = make([]fileSnapshot, len(st.Snapshots))
	for k, snap := range st.Snapshots {
		if snap.N != st.Size {
			return fmt.Errorf("save history: snapshot %d is %dx%d, log is %dx%d", snap.Generation, snap.N, snap.N, st.Size, st.Size)
		}
		doc.Snapshots[k] = fileSnapshot{Generation: snap.Generation, Cells: snap.Pack()}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	if err := fileutil.WriteAtomic(s.Path, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Load reads the saved state. Missing files yield ErrNoHistory; anything
// that does not decode to a consistent log yields ErrCorrupt.
func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, ErrNoHistory
	}
	if err != nil {
		return State{}, fmt.Errorf("load history: %w", err)
	}
	var doc fileState
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Version != fileVersion {
		return State{}, fmt.Errorf("%w: version %d", ErrCorrupt, doc.Version)
	}
	if doc.Size <= 0 {
		return State{}, fmt.Errorf("%w: size %d", ErrCorrupt, doc.Size)
	}
	if len(doc.Snapshots) > 0 && (doc.Cursor < 0 || doc.Cursor >= len(doc.Snapshots)) {
		return State{}, fmt.Errorf("%w: cursor %d outside %d snapshots", ErrCorrupt, doc.Cursor, len(doc.Snapshots))
	}
	st := State{Size: doc.Size, Cursor: doc.Cursor, Snapshots: make([]core.Snapshot, len(doc.Snapshots))}
	for k, fsnap := range doc.Snapshots {
		if k > 0 && fsnap.Generation <= doc.Snapshots[k-1].Generation {
			return State{}, fmt.Errorf("%w: generation %d after %d", ErrCorrupt, fsnap.Generation, doc.Snapshots[k-1].Generation)
		}
		snap, err := core.UnpackSnapshot(fsnap.Generation, doc.Size, fsnap.Cells)
		if err != nil {
			return State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		st.Snapshots[k] = snap
	}
	return st, nil
}
