package doctree

import (
	"encoding/json"

	"github.com/dgallion1/docproof/internal/position"
	"github.com/dgallion1/docproof/internal/preprocess"
)

type tokenJSON struct {
	Surface string             `json:"surface"`
	Tags    []string           `json:"tags,omitempty"`
	Reading string             `json:"reading,omitempty"`
	Offsets position.OffsetMap `json:"offsets"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenJSON{
		Surface: t.surface,
		Tags:    t.tags,
		Reading: t.reading,
		Offsets: t.offsets,
	})
}

type sentenceJSON struct {
	Content       string             `json:"content"`
	LineNumber    int                `json:"line_number"`
	StartColumn   int                `json:"start_column"`
	FirstSentence bool               `json:"first_sentence,omitempty"`
	Links         []string           `json:"links,omitempty"`
	Offsets       position.OffsetMap `json:"offsets"`
	Tokens        []Token            `json:"tokens"`
}

func (s *Sentence) MarshalJSON() ([]byte, error) {
	return json.Marshal(sentenceJSON{
		Content:       s.content,
		LineNumber:    s.lineNumber,
		StartColumn:   s.startColumn,
		FirstSentence: s.firstSentence,
		Links:         s.links,
		Offsets:       s.offsets,
		Tokens:        s.tokens,
	})
}

func (p *Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Sentences []*Sentence `json:"sentences"`
	}{p.sentences})
}

func (e *ListElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Level     int         `json:"level"`
		Sentences []*Sentence `json:"sentences"`
	}{e.level, e.sentences})
}

func (l *ListBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Elements []*ListElement `json:"elements"`
	}{l.elements})
}

func (s *Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Level       int          `json:"level"`
		Headers     []*Sentence  `json:"headers,omitempty"`
		Paragraphs  []*Paragraph `json:"paragraphs,omitempty"`
		Lists       []*ListBlock `json:"lists,omitempty"`
		Subsections []*Section   `json:"subsections,omitempty"`
	}{s.level, s.headers, s.paragraphs, s.lists, s.subsections})
}

type ruleJSON struct {
	Kind      preprocess.Kind `json:"kind"`
	Line      int             `json:"line"`
	LineLimit int             `json:"line_limit,omitempty"`
	Params    []string        `json:"params,omitempty"`
}

func (d *Document) MarshalJSON() ([]byte, error) {
	rules := make([]ruleJSON, 0, len(d.rules))
	for _, r := range d.rules {
		rules = append(rules, ruleJSON{Kind: r.Kind, Line: r.Line, LineLimit: r.LineLimit, Params: r.Params()})
	}
	return json.Marshal(struct {
		FileName string     `json:"file_name"`
		Sections []*Section `json:"sections"`
		Rules    []ruleJSON `json:"rules,omitempty"`
	}{d.fileName, d.sections, rules})
}
