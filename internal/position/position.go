package position

import "fmt"

// LineOffset is the position of one character in the original source.
// Line is 1-based, Offset is the 0-based column counted in runes.
type LineOffset struct {
	Line   int `json:"line"`
	Offset int `json:"offset"`
}

// New returns the LineOffset for (line, offset).
func New(line, offset int) LineOffset {
	return LineOffset{Line: line, Offset: offset}
}

// Compare orders offsets by line, then by column.
func (o LineOffset) Compare(other LineOffset) int {
	switch {
	case o.Line < other.Line:
		return -1
	case o.Line > other.Line:
		return 1
	case o.Offset < other.Offset:
		return -1
	case o.Offset > other.Offset:
		return 1
	}
	return 0
}

// Before reports whether o sorts strictly before other.
func (o LineOffset) Before(other LineOffset) bool {
	return o.Compare(other) < 0
}

func (o LineOffset) String() string {
	return fmt.Sprintf("%d:%d", o.Line, o.Offset)
}

// OffsetMap holds one LineOffset per rune of an associated string.
type OffsetMap []LineOffset

// Line builds the offsets of a run of n characters that all sit on one
// physical line, starting at column start.
func Line(line, start, n int) OffsetMap {
	m := make(OffsetMap, n)
	for i := range m {
		m[i] = LineOffset{Line: line, Offset: start + i}
	}
	return m
}

// At returns the position of character i. Positions past the end are
// synthesized one column after the last recorded entry, which callers use
// for end-of-sentence markers. An empty map yields the zero LineOffset.
func (m OffsetMap) At(i int) LineOffset {
	if len(m) == 0 {
		return LineOffset{}
	}
	if i < 0 {
		i = 0
	}
	if i < len(m) {
		return m[i]
	}
	last := m[len(m)-1]
	return LineOffset{Line: last.Line, Offset: last.Offset + 1 + (i - len(m))}
}

// Slice returns a copy of the entries in [start, end), clamped to the map.
func (m OffsetMap) Slice(start, end int) OffsetMap {
	if start < 0 {
		start = 0
	}
	if end > len(m) {
		end = len(m)
	}
	if start >= end {
		return OffsetMap{}
	}
	out := make(OffsetMap, end-start)
	copy(out, m[start:end])
	return out
}

// Clone returns an independent copy.
func (m OffsetMap) Clone() OffsetMap {
	if m == nil {
		return nil
	}
	out := make(OffsetMap, len(m))
	copy(out, m)
	return out
}

// Lines returns the first and last line numbers covered by the map.
func (m OffsetMap) Lines() (first, last int) {
	if len(m) == 0 {
		return 0, 0
	}
	return m[0].Line, m[len(m)-1].Line
}
