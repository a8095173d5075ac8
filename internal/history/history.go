// Package history keeps a bounded undo/redo log of grid snapshots and
// persists it between sessions.
package history

import (
	"fmt"
	"sync"

	"lifecell/internal/core"
)

// DefaultCapacity is the number of generations retained when none is given.
const DefaultCapacity = 100

// Log is a fixed-capacity ring of snapshots ordered by generation, with a
// cursor on the displayed entry. Appending while the cursor is behind the
// tip discards the entries after the cursor first.
type Log struct {
	mu     sync.Mutex
	buf    []core.Snapshot
	head   int
	size   int
	cursor int
}

// NewLog allocates a log holding at most capacity snapshots.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{buf: make([]core.Snapshot, capacity)}
}

func (l *Log) slot(k int) int { return (l.head + k) % len(l.buf) }

// Append records s as the newest entry and moves the cursor to it. A tip
// with the same generation is replaced rather than duplicated.
func (l *Log) Append(s core.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.size > 0 {
		for k := l.cursor + 1; k < l.size; k++ {
			l.buf[l.slot(k)] = core.Snapshot{}
		}
		l.size = l.cursor + 1
		if tip := l.slot(l.cursor); l.buf[tip].Generation == s.Generation {
			l.buf[tip] = s
			return
		}
	}
	if l.size == len(l.buf) {
		l.buf[l.head] = core.Snapshot{}
		l.head = l.slot(1)
		l.size--
	}
	l.buf[l.slot(l.size)] = s
	l.size++
	l.cursor = l.size - 1
}

// Undo moves the cursor back one entry and returns it.
func (l *Log) Undo() (core.Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.size == 0 || l.cursor == 0 {
		return core.Snapshot{}, false
	}
	l.cursor--
	return l.buf[l.slot(l.cursor)], true
}

// Redo moves the cursor forward one entry and returns it.
func (l *Log) Redo() (core.Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cursor >= l.size-1 {
		return core.Snapshot{}, false
	}
	l.cursor++
	return l.buf[l.slot(l.cursor)], true
}

// CanUndo reports whether Undo would move the cursor.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size > 0 && l.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor < l.size-1
}

// Current returns the entry under the cursor.
func (l *Log) Current() (core.Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.size == 0 {
		return core.Snapshot{}, false
	}
	return l.buf[l.slot(l.cursor)], true
}

// Len returns the number of retained snapshots.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Cursor returns the position of the displayed entry, 0 being the oldest.
func (l *Log) Cursor() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// Capacity returns the maximum number of retained snapshots.
func (l *Log) Capacity() int { return len(l.buf) }

// Entries returns the retained snapshots from oldest to newest.
func (l *Log) Entries() []core.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Snapshot, l.size)
	for k := range out {
		out[k] = l.buf[l.slot(k)]
	}
	return out
}

// Clear drops every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.buf)
	l.head, l.size, l.cursor = 0, 0, 0
}

// Load replaces the log with entries (oldest first) and a cursor into them.
// When entries exceed the capacity only the newest are kept.
func (l *Log) Load(entries []core.Snapshot, cursor int) error {
	if len(entries) > 0 && (cursor < 0 || cursor >= len(entries)) {
		return fmt.Errorf("cursor %d outside %d entries", cursor, len(entries))
	}
	if drop := len(entries) - len(l.buf); drop > 0 {
		entries = entries[drop:]
		cursor = max(cursor-drop, 0)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.buf)
	copy(l.buf, entries)
	l.head = 0
	l.size = len(entries)
	l.cursor = 0
	if l.size > 0 {
		l.cursor = cursor
	}
	return nil
}
