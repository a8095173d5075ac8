package core

import "sort"

// Pattern is a named seed shape. Cells are (row, col) offsets from the
// pattern's top-left corner.
type Pattern struct {
	Name  string
	Cells [][2]int
}

// Bounds returns the pattern height and width.
func (p Pattern) Bounds() (int, int) {
	h, w := 0, 0
	for _, c := range p.Cells {
		h = max(h, c[0]+1)
		w = max(w, c[1]+1)
	}
	return h, w
}

var patterns = map[string]Pattern{}

// Register adds a pattern under its name.
func Register(p Pattern) {
	if p.Name == "" || len(p.Cells) == 0 {
		return
	}
	patterns[p.Name] = p
}

// Lookup returns the registered pattern with the given name.
func Lookup(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// PatternNames lists registered patterns in alphabetical order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
