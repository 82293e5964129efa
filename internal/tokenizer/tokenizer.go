// Package tokenizer provides the sentence tokenizers used by the document
// builder: a whitespace tokenizer for Latin scripts and a script-class
// tokenizer for Japanese.
package tokenizer

import (
	"strings"
	"sync"
	"unicode"

	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/position"
)

// Tags assigned by the built-in tokenizers. The first tag is the coarse
// category; the Japanese tokenizer adds the script as a second tag.
const (
	TagWord   = "WORD"
	TagNumber = "NUMBER"
	TagPunct  = "PUNCT"
	TagSpace  = "SPACE"
)

// ForLanguage returns the tokenizer for a language code.
func ForLanguage(lang string) doctree.Tokenizer {
	if strings.EqualFold(lang, "ja") {
		return Japanese{}
	}
	return Whitespace{}
}

// Whitespace splits on whitespace and separates punctuation from words.
// Each whitespace run becomes a TagSpace token, so surfaces concatenate to
// the input.
type Whitespace struct{}

func (Whitespace) Tokenize(content string, offsets position.OffsetMap) ([]doctree.Token, error) {
	runes := []rune(content)
	var out []doctree.Token
	emit := func(start, end int, tag string) {
		out = append(out, doctree.NewToken(string(runes[start:end]), []string{tag}, "", offsets.Slice(start, end)))
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			emit(i, j, TagSpace)
			i = j
		case unicode.IsDigit(r):
			j := scanNumber(runes, i)
			emit(i, j, TagNumber)
			i = j
		case isWordRune(r):
			j := scanWord(runes, i)
			emit(i, j, TagWord)
			i = j
		default:
			emit(i, i+1, TagPunct)
			i++
		}
	}
	return out, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

// scanWord consumes letters, digits and inner apostrophes or hyphens
// ("don't", "well-known").
func scanWord(runes []rune, i int) int {
	j := i + 1
	for j < len(runes) {
		r := runes[j]
		if isWordRune(r) {
			j++
			continue
		}
		if (r == '\'' || r == '’' || r == '-') && j+1 < len(runes) && isWordRune(runes[j+1]) {
			j += 2
			continue
		}
		break
	}
	return j
}

// scanNumber consumes digits with inner separators ("3.14", "1,000").
func scanNumber(runes []rune, i int) int {
	j := i + 1
	for j < len(runes) {
		r := runes[j]
		if unicode.IsDigit(r) {
			j++
			continue
		}
		if (r == '.' || r == ',') && j+1 < len(runes) && unicode.IsDigit(runes[j+1]) {
			j += 2
			continue
		}
		break
	}
	return j
}

// WithoutSpace returns tokens minus the TagSpace ones, for matchers that
// treat adjacent words as adjacent tokens.
func WithoutSpace(tokens []doctree.Token) []doctree.Token {
	out := make([]doctree.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Tag(0) != TagSpace {
			out = append(out, t)
		}
	}
	return out
}

// Synchronized serializes calls into a tokenizer that is not safe for
// concurrent use.
func Synchronized(t doctree.Tokenizer) doctree.Tokenizer {
	if _, ok := t.(*syncTokenizer); ok {
		return t
	}
	return &syncTokenizer{inner: t}
}

type syncTokenizer struct {
	mu    sync.Mutex
	inner doctree.Tokenizer
}

func (s *syncTokenizer) Tokenize(content string, offsets position.OffsetMap) ([]doctree.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Tokenize(content, offsets)
}
