package doctree

import "github.com/dgallion1/docproof/internal/preprocess"

// Document is the root of a parsed document. It is produced by
// Builder.Build and has no mutators, so it can be read by several
// validators at once.
type Document struct {
	fileName string
	sections []*Section // Top-level sections
	rules    []preprocess.Rule
	parents  map[*Section]*Section
}

// FileName returns the name the document was parsed from.
func (d *Document) FileName() string { return d.fileName }

// Sections returns the top-level sections.
func (d *Document) Sections() []*Section {
	return append([]*Section(nil), d.sections...)
}

// AllSections returns every section, depth-first in document order.
func (d *Document) AllSections() []*Section {
	var out []*Section
	var walk func([]*Section)
	walk = func(secs []*Section) {
		for _, s := range secs {
			out = append(out, s)
			walk(s.subsections)
		}
	}
	walk(d.sections)
	return out
}

// Parent returns the enclosing section, or nil for a top-level section.
func (d *Document) Parent(s *Section) *Section {
	return d.parents[s]
}

// Sentences returns every sentence in document order.
func (d *Document) Sentences() []*Sentence {
	var out []*Sentence
	for _, s := range d.sections {
		out = append(out, s.Sentences(true)...)
	}
	return out
}

// Rules returns the suppression directives harvested while parsing.
func (d *Document) Rules() []preprocess.Rule {
	return append([]preprocess.Rule(nil), d.rules...)
}

// Section is a heading-delimited block of the document.
type Section struct {
	level       int
	headers     []*Sentence
	paragraphs  []*Paragraph
	lists       []*ListBlock
	subsections []*Section
}

// Level returns the heading level (0 for the implicit root section).
func (s *Section) Level() int { return s.level }

// Headers returns the header sentences.
func (s *Section) Headers() []*Sentence { return append([]*Sentence(nil), s.headers...) }

// Paragraphs returns the section's own paragraphs.
func (s *Section) Paragraphs() []*Paragraph { return append([]*Paragraph(nil), s.paragraphs...) }

// ListBlocks returns the section's own list blocks.
func (s *Section) ListBlocks() []*ListBlock { return append([]*ListBlock(nil), s.lists...) }

// Subsections returns the child sections.
func (s *Section) Subsections() []*Section { return append([]*Section(nil), s.subsections...) }

// HeaderContent joins the header sentences; a section without a header
// yields "".
func (s *Section) HeaderContent() string {
	var out string
	for i, h := range s.headers {
		if i > 0 {
			out += " "
		}
		out += h.content
	}
	return out
}

// Sentences returns header, paragraph and list sentences in that order.
// With recursive set, subsection sentences follow depth-first.
func (s *Section) Sentences(recursive bool) []*Sentence {
	var out []*Sentence
	out = append(out, s.headers...)
	for _, p := range s.paragraphs {
		out = append(out, p.sentences...)
	}
	for _, l := range s.lists {
		for _, e := range l.elements {
			out = append(out, e.sentences...)
		}
	}
	if recursive {
		for _, sub := range s.subsections {
			out = append(out, sub.Sentences(true)...)
		}
	}
	return out
}

// LineRange returns the smallest and largest line numbers of the section's
// own sentences. ok is false when the section has none.
func (s *Section) LineRange() (lo, hi int, ok bool) {
	for _, sent := range s.Sentences(false) {
		if !ok || sent.lineNumber < lo {
			lo = sent.lineNumber
		}
		if !ok || sent.lineNumber > hi {
			hi = sent.lineNumber
		}
		ok = true
	}
	return lo, hi, ok
}

// Paragraph is an ordered run of sentences.
type Paragraph struct {
	sentences []*Sentence
}

// Sentences returns the paragraph's sentences.
func (p *Paragraph) Sentences() []*Sentence { return append([]*Sentence(nil), p.sentences...) }

// ListBlock is a bulleted or numbered list.
type ListBlock struct {
	elements []*ListElement
}

// Elements returns the list items.
func (l *ListBlock) Elements() []*ListElement { return append([]*ListElement(nil), l.elements...) }

// ListElement is one list item with its indentation level.
type ListElement struct {
	level     int
	sentences []*Sentence
}

// Level returns the indentation level (1 for top-level items).
func (e *ListElement) Level() int { return e.level }

// Sentences returns the item's sentences.
func (e *ListElement) Sentences() []*Sentence { return append([]*Sentence(nil), e.sentences...) }
