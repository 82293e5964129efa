package parser

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docproof/internal/boundary"
	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/position"
)

// posText is paragraph text with one source position per rune. Line breaks
// inside the paragraph are kept as '\n' runes until the text is split.
type posText struct {
	runes []rune
	offs  position.OffsetMap
	links []linkSpan
}

// linkSpan marks the runes [start, end) as the label of a hyperlink.
type linkSpan struct {
	start, end int
	url        string
}

func (p *posText) appendRune(r rune, at position.LineOffset) {
	p.runes = append(p.runes, r)
	p.offs = append(p.offs, at)
}

// appendString adds s as it appears on line starting at column col.
func (p *posText) appendString(s string, line, col int) {
	for _, r := range s {
		p.appendRune(r, position.New(line, col))
		col++
	}
}

// addLink records a link over the runes appended since start.
func (p *posText) addLink(start int, url string) {
	if url == "" || start >= len(p.runes) {
		return
	}
	p.links = append(p.links, linkSpan{start: start, end: len(p.runes), url: url})
}

func (p *posText) len() int { return len(p.runes) }

func (p *posText) blank() bool {
	for _, r := range p.runes {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (p *posText) reset() {
	p.runes = p.runes[:0]
	p.offs = p.offs[:0]
	p.links = p.links[:0]
}

// splitter cuts paragraph text into sentences.
type splitter struct {
	det  *boundary.Detector
	sep  []rune
	lang string
}

// sentences splits p at every sentence end. A remainder without a
// terminal becomes the last sentence.
func (s *splitter) sentences(p *posText) ([]*doctree.Sentence, error) {
	text := string(p.runes)
	starts := runeStarts(text)
	runeAt := func(b int) int { return sort.SearchInts(starts, b) }

	var out []*doctree.Sentence
	for from := 0; from < len(text); {
		stop := len(text)
		if end := s.det.EndPosition(text, from); end >= 0 {
			_, size := utf8.DecodeRuneInString(text[end:])
			stop = end + size
		}
		sent, err := s.normalize(p, runeAt(from), runeAt(stop))
		if err != nil {
			return nil, err
		}
		if sent != nil {
			out = append(out, sent)
		}
		from = stop
	}
	return out, nil
}

// whole normalizes all of p as one sentence, or returns nil when p is blank.
func (s *splitter) whole(p *posText) (*doctree.Sentence, error) {
	return s.normalize(p, 0, p.len())
}

// normalize builds the sentence for runes [start, end) of p. Surrounding
// whitespace is dropped. A line break becomes the language's separator
// positioned at the first character of the next line, or disappears when
// the separator is empty.
func (s *splitter) normalize(p *posText, start, end int) (*doctree.Sentence, error) {
	for start < end && unicode.IsSpace(p.runes[start]) {
		start++
	}
	for end > start && unicode.IsSpace(p.runes[end-1]) {
		end--
	}
	if start >= end {
		return nil, nil
	}

	content := make([]rune, 0, end-start)
	offs := make(position.OffsetMap, 0, end-start)
	for i := start; i < end; i++ {
		r := p.runes[i]
		if r != '\n' {
			content = append(content, r)
			offs = append(offs, p.offs[i])
			continue
		}
		if len(s.sep) == 0 || (len(content) > 0 && unicode.IsSpace(content[len(content)-1])) {
			continue
		}
		// end was trimmed of whitespace, so a break always has a successor.
		at := p.offs[i+1]
		for _, sr := range s.sep {
			content = append(content, sr)
			offs = append(offs, at)
		}
	}

	var links []string
	for _, l := range p.links {
		if l.start < end && l.end > start {
			links = append(links, l.url)
		}
	}
	return doctree.NewSentence(string(content), offs, doctree.WithLinks(links...))
}

// runeStarts returns the byte offset of every rune in text followed by
// len(text).
func runeStarts(text string) []int {
	starts := make([]int, 0, len(text)+1)
	for i := range text {
		starts = append(starts, i)
	}
	return append(starts, len(text))
}
