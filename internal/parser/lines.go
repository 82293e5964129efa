package parser

import (
	"bytes"
	"sort"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/dgallion1/docproof/internal/position"
)

// lineIndex maps byte offsets of a source buffer to line and rune column.
type lineIndex struct {
	src    []byte
	starts []int // Byte offset of each line start
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

// pos returns the position of byte offset off.
func (x *lineIndex) pos(off int) position.LineOffset {
	if off > len(x.src) {
		off = len(x.src)
	}
	i := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > off }) - 1
	return position.New(i+1, utf8.RuneCount(x.src[x.starts[i]:off]))
}

// appendBytes adds src[start:stop] to p. A '\n' in the range starts a new
// line; a '\r' before it is dropped.
func (x *lineIndex) appendBytes(p *posText, start, stop int) {
	if start >= stop {
		return
	}
	at := x.pos(start)
	for off := start; off < stop; {
		r, size := utf8.DecodeRune(x.src[off:stop])
		switch r {
		case '\r':
		case '\n':
			p.appendRune('\n', at)
			at = position.New(at.Line+1, 0)
			off += size
			continue
		default:
			p.appendRune(r, at)
		}
		at.Offset++
		off += size
	}
}

// charRef decodes the character reference at the start of b ("&amp;",
// "&#233;") and returns its byte length, or 0 when b does not start with
// one.
func charRef(b []byte) (int, string) {
	if len(b) == 0 || b[0] != '&' {
		return 0, ""
	}
	j := bytes.IndexByte(b[:min(len(b), 12)], ';')
	if j <= 0 {
		return 0, ""
	}
	ref := string(b[:j+1])
	if dec := html.UnescapeString(ref); dec != ref {
		return j + 1, dec
	}
	return 0, ""
}
