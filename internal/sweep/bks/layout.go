package bks

// Canonical column names every reference table is normalized to.
const (
	NameColumn  = "graph"
	ValueColumn = "BKS"
)

// Layout describes how the summary table of a set of asset classes is
// written: its delimiter and the header aliases that map onto the canonical
// columns. A Layout with no Classes matches every class.
type Layout struct {
	Classes   map[string]bool
	Delimiter rune
	Aliases   map[string]string
}

func (l Layout) matches(class string) bool {
	return len(l.Classes) == 0 || l.Classes[class]
}

// canonical maps a raw header onto its canonical column name.
func (l Layout) canonical(header string) string {
	if c, ok := l.Aliases[header]; ok {
		return c
	}
	return header
}

// Layouts is an ordered list; the first matching layout wins.
type Layouts []Layout

func (ls Layouts) For(class string) (Layout, bool) {
	for _, l := range ls {
		if l.matches(class) {
			return l, true
		}
	}
	return Layout{}, false
}

// DefaultLayouts covers the Gset-style benchmark summaries, written
// space-separated with their own header names, and comma-separated tables
// already using the canonical names for every other class.
func DefaultLayouts() Layouts {
	return Layouts{
		{
			Classes:   map[string]bool{"set": true, "tiny": true, "small": true, "K_graphs": true},
			Delimiter: ' ',
			Aliases: map[string]string{
				"Gset": NameColumn,
				"GSET": NameColumn,
				"Cuts": ValueColumn,
				"CUT":  ValueColumn,
			},
		},
		{Delimiter: ','},
	}
}
