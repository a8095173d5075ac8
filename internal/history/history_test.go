package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lifecell/internal/core"
)

func snap(gen uint64) core.Snapshot {
	cells := make([]uint8, 9)
	cells[gen%9] = 1
	return core.Snapshot{Generation: gen, N: 3, Cells: cells}
}

func generations(l *Log) []uint64 {
	var out []uint64
	for _, s := range l.Entries() {
		out = append(out, s.Generation)
	}
	return out
}

func TestLogEvictsOldest(t *testing.T) {
	l := NewLog(DefaultCapacity)
	for g := uint64(0); g <= 150; g++ {
		l.Append(snap(g))
	}
	require.Equal(t, DefaultCapacity, l.Len())
	gens := generations(l)
	require.EqualValues(t, 51, gens[0])
	require.EqualValues(t, 150, gens[len(gens)-1])
	cur, ok := l.Current()
	require.True(t, ok)
	require.EqualValues(t, 150, cur.Generation)
}

func TestLogUndoRedo(t *testing.T) {
	l := NewLog(4)
	_, ok := l.Undo()
	require.False(t, ok)
	_, ok = l.Redo()
	require.False(t, ok)

	for g := uint64(0); g < 4; g++ {
		l.Append(snap(g))
	}
	for want := uint64(2); ; want-- {
		s, ok := l.Undo()
		require.True(t, ok)
		require.Equal(t, want, s.Generation)
		if want == 0 {
			break
		}
	}
	require.False(t, l.CanUndo())
	require.True(t, l.CanRedo())

	s, ok := l.Redo()
	require.True(t, ok)
	require.EqualValues(t, 1, s.Generation)
	require.Equal(t, 1, l.Cursor())
}

func TestLogAppendTruncatesRedoBranch(t *testing.T) {
	l := NewLog(10)
	for g := uint64(0); g < 5; g++ {
		l.Append(snap(g))
	}
	l.Undo()
	l.Undo()
	l.Append(snap(3))
	require.Equal(t, []uint64{0, 1, 2, 3}, generations(l))
	require.False(t, l.CanRedo())
}

func TestLogAppendReplacesSameGeneration(t *testing.T) {
	l := NewLog(3)
	l.Append(snap(0))
	edited := core.Snapshot{Generation: 0, N: 3, Cells: []uint8{1, 1, 1, 0, 0, 0, 0, 0, 0}}
	l.Append(edited)
	require.Equal(t, 1, l.Len())
	cur, _ := l.Current()
	require.True(t, cur.Equal(edited))
}

func TestLogWrapsAfterUndo(t *testing.T) {
	l := NewLog(3)
	for g := uint64(0); g < 5; g++ {
		l.Append(snap(g))
	}
	l.Undo()
	l.Append(snap(4))
	l.Append(snap(5))
	require.Equal(t, []uint64{3, 4, 5}, generations(l))
}

func TestLogLoad(t *testing.T) {
	l := NewLog(3)
	entries := []core.Snapshot{snap(0), snap(1), snap(2), snap(3), snap(4)}
	require.NoError(t, l.Load(entries, 3))
	require.Equal(t, []uint64{2, 3, 4}, generations(l))
	require.Equal(t, 1, l.Cursor())

	require.Error(t, l.Load(entries, 5))
	require.NoError(t, l.Load(nil, 0))
	require.Zero(t, l.Len())
	_, ok := l.Current()
	require.False(t, ok)
}
