package doctree

import (
	"fmt"
	"unicode/utf8"

	"github.com/dgallion1/docproof/internal/position"
	"golang.org/x/text/cases"
)

// Token is one unit produced by a tokenizer. Its fields are read through
// accessors so a finalized document can be shared between goroutines.
type Token struct {
	surface string
	tags    []string
	reading string
	offsets position.OffsetMap
}

// NewToken creates a Token. Tags and offsets are copied; an empty reading
// defaults to the case-folded surface.
func NewToken(surface string, tags []string, reading string, offsets position.OffsetMap) Token {
	if reading == "" {
		reading = cases.Fold().String(surface)
	}
	var tagCopy []string
	if len(tags) > 0 {
		tagCopy = append([]string(nil), tags...)
	}
	return Token{
		surface: surface,
		tags:    tagCopy,
		reading: reading,
		offsets: offsets.Clone(),
	}
}

// Surface returns the literal text of the token.
func (t Token) Surface() string { return t.surface }

// Reading returns the phonetic or normalized form.
func (t Token) Reading() string { return t.reading }

// Tags returns a copy of the tag list (part of speech first).
func (t Token) Tags() []string {
	if len(t.tags) == 0 {
		return nil
	}
	return append([]string(nil), t.tags...)
}

// Tag returns tag i, or "" when the list is shorter.
func (t Token) Tag(i int) string {
	if i < 0 || i >= len(t.tags) {
		return ""
	}
	return t.tags[i]
}

// Offsets returns a copy of the token's positions.
func (t Token) Offsets() position.OffsetMap { return t.offsets.Clone() }

// Start returns the position of the token's first character.
func (t Token) Start() position.LineOffset { return t.offsets.At(0) }

// End returns the position just after the token's last character.
func (t Token) End() position.LineOffset { return t.offsets.At(len(t.offsets)) }

func (t Token) String() string {
	return fmt.Sprintf("%s%v", t.surface, t.tags)
}

// Sentence is normalized sentence text with one source position per rune.
type Sentence struct {
	content       string
	offsets       position.OffsetMap
	lineNumber    int
	startColumn   int
	firstSentence bool
	links         []string
	tokens        []Token
}

// SentenceOption configures a Sentence at construction.
type SentenceOption func(*Sentence)

// WithLinks attaches hyperlinks found in the sentence.
func WithLinks(links ...string) SentenceOption {
	return func(s *Sentence) {
		if len(links) > 0 {
			s.links = append([]string(nil), links...)
		}
	}
}

// NewSentence creates a Sentence. offsets must hold one entry per rune of
// content.
func NewSentence(content string, offsets position.OffsetMap, opts ...SentenceOption) (*Sentence, error) {
	if n := utf8.RuneCountInString(content); n != len(offsets) {
		return nil, fmt.Errorf("sentence %q has %d characters but %d offsets", content, n, len(offsets))
	}
	s := &Sentence{content: content, offsets: offsets.Clone()}
	if len(offsets) > 0 {
		s.lineNumber = offsets[0].Line
		s.startColumn = offsets[0].Offset
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewSentenceAt creates a Sentence whose text sits on one physical line
// starting at column.
func NewSentenceAt(content string, line, column int, opts ...SentenceOption) *Sentence {
	s := &Sentence{
		content:     content,
		offsets:     position.Line(line, column, utf8.RuneCountInString(content)),
		lineNumber:  line,
		startColumn: column,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Content returns the normalized text.
func (s *Sentence) Content() string { return s.content }

// Len returns the number of characters (runes) in the sentence.
func (s *Sentence) Len() int { return len(s.offsets) }

// LineNumber returns the line of the first character.
func (s *Sentence) LineNumber() int { return s.lineNumber }

// StartColumn returns the column of the first character.
func (s *Sentence) StartColumn() int { return s.startColumn }

// IsFirstSentence reports whether the sentence opens its paragraph.
func (s *Sentence) IsFirstSentence() bool { return s.firstSentence }

// Offsets returns a copy of the per-character positions.
func (s *Sentence) Offsets() position.OffsetMap { return s.offsets.Clone() }

// OffsetAt returns the source position of character i. Indexes past the
// end are synthesized after the last character.
func (s *Sentence) OffsetAt(i int) position.LineOffset {
	if len(s.offsets) == 0 {
		return position.New(s.lineNumber, s.startColumn+i)
	}
	return s.offsets.At(i)
}

// Links returns the hyperlinks attached to the sentence.
func (s *Sentence) Links() []string {
	if len(s.links) == 0 {
		return nil
	}
	return append([]string(nil), s.links...)
}

// Tokens returns the tokens set when the sentence was added to a document.
func (s *Sentence) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

func (s *Sentence) String() string {
	return fmt.Sprintf("%d:%d %q", s.lineNumber, s.startColumn, s.content)
}
