package doctree

import (
	"github.com/dgallion1/docproof/internal/position"
	"github.com/dgallion1/docproof/internal/preprocess"
)

// Tokenizer splits sentence content into tokens. offsets carries one source
// position per rune of content; returned tokens must slice it.
//
// Implementations may keep state between calls. A Builder calls its
// tokenizer from the goroutine that drives it; share a tokenizer between
// builders only when it is safe for concurrent use.
type Tokenizer interface {
	Tokenize(content string, offsets position.OffsetMap) ([]Token, error)
}

// Builder accumulates a document through imperative calls. It is not safe
// for concurrent use. Build hands the finished tree over and leaves the
// builder empty.
type Builder struct {
	fileName string
	tok      Tokenizer

	sections  []*Section // Top-level sections
	stack     []*Section // Open sections, outermost first
	paragraph *Paragraph
	list      *ListBlock
	rules     []preprocess.Rule
}

// NewBuilder creates a builder for fileName. A nil tokenizer leaves every
// sentence with an empty token list.
func NewBuilder(fileName string, tok Tokenizer) *Builder {
	return &Builder{fileName: fileName, tok: tok}
}

// AddSection opens a section at level. Sections at the same or a deeper
// level are closed first, so the new section nests under the nearest
// shallower one.
func (b *Builder) AddSection(level int, headers ...*Sentence) error {
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}

	sec := &Section{level: level}
	if len(b.stack) == 0 {
		b.sections = append(b.sections, sec)
	} else {
		parent := b.stack[len(b.stack)-1]
		parent.subsections = append(parent.subsections, sec)
	}
	b.stack = append(b.stack, sec)
	b.paragraph = nil
	b.list = nil

	for _, h := range headers {
		if err := b.AddSectionHeader(h); err != nil {
			return err
		}
	}
	return nil
}

// AddSectionHeader appends a header sentence to the current section.
func (b *Builder) AddSectionHeader(s *Sentence) error {
	sec := b.currentSection()
	if err := b.tokenize(s); err != nil {
		return err
	}
	sec.headers = append(sec.headers, s)
	return nil
}

// AddParagraph starts a new paragraph in the current section.
func (b *Builder) AddParagraph() {
	sec := b.currentSection()
	b.paragraph = &Paragraph{}
	b.list = nil
	sec.paragraphs = append(sec.paragraphs, b.paragraph)
}

// AddSentence appends s to the current paragraph, creating one when needed.
// The sentence is tokenized before AddSentence returns; a tokenizer error is
// returned as is and the sentence is not added.
func (b *Builder) AddSentence(s *Sentence) error {
	if b.paragraph == nil {
		b.AddParagraph()
	}
	if err := b.tokenize(s); err != nil {
		return err
	}
	s.firstSentence = len(b.paragraph.sentences) == 0
	b.paragraph.sentences = append(b.paragraph.sentences, s)
	return nil
}

// AddListBlock starts a new list in the current section.
func (b *Builder) AddListBlock() {
	sec := b.currentSection()
	b.list = &ListBlock{}
	b.paragraph = nil
	sec.lists = append(sec.lists, b.list)
}

// AddListElement appends an item at level to the current list, creating one
// when needed.
func (b *Builder) AddListElement(level int, sentences ...*Sentence) error {
	if b.list == nil {
		b.AddListBlock()
	}
	elem := &ListElement{level: level}
	for i, s := range sentences {
		if err := b.tokenize(s); err != nil {
			return err
		}
		s.firstSentence = i == 0
		elem.sentences = append(elem.sentences, s)
	}
	b.list.elements = append(b.list.elements, elem)
	return nil
}

// AddRule records a suppression directive.
func (b *Builder) AddRule(r preprocess.Rule) {
	b.rules = append(b.rules, r)
}

// SetRules replaces the recorded directives.
func (b *Builder) SetRules(rules []preprocess.Rule) {
	b.rules = append([]preprocess.Rule(nil), rules...)
}

// Build returns the finished document and resets the builder.
func (b *Builder) Build() *Document {
	doc := &Document{
		fileName: b.fileName,
		sections: b.sections,
		rules:    b.rules,
		parents:  make(map[*Section]*Section),
	}
	var link func(parent *Section, secs []*Section)
	link = func(parent *Section, secs []*Section) {
		for _, s := range secs {
			if parent != nil {
				doc.parents[s] = parent
			}
			link(s, s.subsections)
		}
	}
	link(nil, doc.sections)

	*b = Builder{fileName: b.fileName, tok: b.tok}
	return doc
}

// currentSection returns the innermost open section, creating an implicit
// level-0 section when the document is still empty.
func (b *Builder) currentSection() *Section {
	if len(b.stack) == 0 {
		sec := &Section{}
		b.sections = append(b.sections, sec)
		b.stack = append(b.stack, sec)
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) tokenize(s *Sentence) error {
	if b.tok == nil {
		s.tokens = []Token{}
		return nil
	}
	tokens, err := b.tok.Tokenize(s.content, s.offsets)
	if err != nil {
		return err
	}
	if tokens == nil {
		tokens = []Token{}
	}
	s.tokens = tokens
	return nil
}
