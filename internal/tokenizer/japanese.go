package tokenizer

import (
	"unicode"

	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/position"
)

type script int

const (
	scriptOther script = iota
	scriptKanji
	scriptHiragana
	scriptKatakana
	scriptLatin
	scriptDigit
	scriptSpace
	scriptPunct
)

var scriptNames = map[script]string{
	scriptKanji:    "KANJI",
	scriptHiragana: "HIRAGANA",
	scriptKatakana: "KATAKANA",
	scriptLatin:    "LATIN",
	scriptDigit:    "DIGIT",
	scriptSpace:    "SPACE",
	scriptPunct:    "PUNCT",
	scriptOther:    "OTHER",
}

// Japanese groups runs of characters of the same script. It is a stand-in
// for a morphological analyzer: a kanji compound followed by its kana
// ending becomes two tokens. Every rune lands in exactly one token, so
// surfaces concatenate to the input.
type Japanese struct{}

func (Japanese) Tokenize(content string, offsets position.OffsetMap) ([]doctree.Token, error) {
	runes := []rune(content)
	var out []doctree.Token
	for i := 0; i < len(runes); {
		cls := classify(runes[i])
		j := i + 1
		// Punctuation is never grouped.
		if cls != scriptPunct {
			for j < len(runes) && continues(cls, runes[j]) {
				j++
			}
		}
		surface := string(runes[i:j])
		tags := []string{coarseTag(cls), scriptNames[cls]}
		reading := ""
		if cls == scriptKatakana {
			reading = toHiragana(runes[i:j])
		}
		out = append(out, doctree.NewToken(surface, tags, reading, offsets.Slice(i, j)))
		i = j
	}
	return out, nil
}

func continues(cls script, r rune) bool {
	next := classify(r)
	if next == cls {
		return true
	}
	// The prolonged sound mark and iteration marks extend the run they follow.
	switch r {
	case 'ー':
		return cls == scriptKatakana || cls == scriptHiragana
	case '々':
		return cls == scriptKanji
	}
	return false
}

func classify(r rune) script {
	switch {
	case r == '々' || r == '〆' || unicode.Is(unicode.Han, r):
		return scriptKanji
	case unicode.Is(unicode.Hiragana, r):
		return scriptHiragana
	case r == 'ー' || unicode.Is(unicode.Katakana, r):
		return scriptKatakana
	case unicode.IsSpace(r):
		return scriptSpace
	case unicode.IsDigit(r):
		return scriptDigit
	case unicode.IsLetter(r):
		return scriptLatin
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return scriptPunct
	}
	return scriptOther
}

func coarseTag(cls script) string {
	switch cls {
	case scriptDigit:
		return TagNumber
	case scriptPunct:
		return TagPunct
	case scriptSpace:
		return TagSpace
	}
	return TagWord
}

// toHiragana maps katakana to hiragana, leaving other runes as they are.
func toHiragana(runes []rune) string {
	out := make([]rune, len(runes))
	for i, r := range runes {
		if r >= 'ァ' && r <= 'ヶ' {
			r -= 'ァ' - 'ぁ'
		}
		out[i] = r
	}
	return string(out)
}
