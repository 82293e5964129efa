// Package boundary finds sentence end positions in paragraph text.
package boundary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/symbol"
)

// DefaultWhiteList holds English abbreviations whose periods never end a
// sentence.
var DefaultWhiteList = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Jr.", "Sr.", "St.", "vs.",
	"e.g.", "i.e.", "a.m.", "p.m.", "cf.", "al.", "Fig.", "Eq.", "No.",
	"U.S.", "U.S.A.", "U.K.", "Inc.", "Ltd.", "Co.", "Corp.",
}

// Detector finds sentence ends with one regex of the form
// [terminals][quotations]? plus an abbreviation white list. A Detector is
// immutable and safe for concurrent use.
type Detector struct {
	re        *regexp.Regexp
	spaced    map[rune]bool
	whiteList []string
}

// Option configures a Detector.
type Option func(*Detector)

// WithWhiteList replaces the abbreviation white list.
func WithWhiteList(words ...string) Option {
	return func(d *Detector) {
		d.whiteList = append([]string(nil), words...)
	}
}

// WithSpacedTerminals marks terminals that only end a sentence when
// followed by whitespace or the end of the text (half-width periods, so that
// "3.14" and "example.com" stay whole).
func WithSpacedTerminals(rs ...rune) Option {
	return func(d *Detector) {
		for _, r := range rs {
			d.spaced[r] = true
		}
	}
}

// New builds a Detector. An empty terminal set is a configuration error.
func New(terminals, quotations []rune, opts ...Option) (*Detector, error) {
	if len(terminals) == 0 {
		return nil, errs.Config("symbols", "terminal punctuation set is empty")
	}
	expr := "[" + charClass(terminals) + "]"
	if len(quotations) > 0 {
		expr += "[" + charClass(quotations) + "]?"
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errs.WrapConfig("symbols", err)
	}

	d := &Detector{re: re, spaced: make(map[rune]bool)}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// FromTable builds a Detector from a symbol table. Languages other than
// Japanese get DefaultWhiteList unless opts override it.
func FromTable(t symbol.Table, opts ...Option) (*Detector, error) {
	base := []Option{WithSpacedTerminals(t.SpacedTerminals()...)}
	if t.Language() != "ja" {
		base = append(base, WithWhiteList(DefaultWhiteList...))
	}
	return New(t.TerminalChars(), t.QuotationChars(), append(base, opts...)...)
}

// EndPosition returns the byte index of the last character of the first
// sentence end at or after from, or -1 when text has no further end.
func (d *Detector) EndPosition(text string, from int) int {
	if from < 0 {
		from = 0
	}
	pos := from
	for pos < len(text) {
		loc := d.re.FindStringIndex(text[pos:])
		if loc == nil {
			return -1
		}
		start, end := pos+loc[0], pos+loc[1]
		if d.accept(text, start, end) {
			_, size := utf8.DecodeLastRuneInString(text[:end])
			return end - size
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return -1
}

func (d *Detector) accept(text string, start, end int) bool {
	term, size := utf8.DecodeRuneInString(text[start:])
	if d.inAbbreviation(text, start, term, size) {
		return false
	}
	if !d.spaced[term] || end >= len(text) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end:])
	return unicode.IsSpace(next)
}

// inAbbreviation reports whether the terminal at idx is one of the
// terminals inside (or ending) a white-listed abbreviation.
func (d *Detector) inAbbreviation(text string, idx int, term rune, size int) bool {
	head, tail := text[:idx+size], text[idx+size:]
	for _, word := range d.whiteList {
		for k, r := range word {
			if r != term {
				continue
			}
			prefix, suffix := word[:k+size], word[k+size:]
			if !strings.HasSuffix(head, prefix) || !strings.HasPrefix(tail, suffix) {
				continue
			}
			begin := len(head) - len(prefix)
			if begin == 0 {
				return true
			}
			before, _ := utf8.DecodeLastRuneInString(text[:begin])
			if !unicode.IsLetter(before) && !unicode.IsDigit(before) {
				return true
			}
		}
	}
	return false
}

func charClass(rs []rune) string {
	var b strings.Builder
	for _, r := range rs {
		switch r {
		case '\\', ']', '[', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
