// Package parser turns source documents into doctree documents. Every
// format feeds the same sentence splitter, so each sentence keeps the
// source line and column of every character.
package parser

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docproof/internal/boundary"
	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/symbol"
	"github.com/dgallion1/docproof/internal/tokenizer"
)

// Parser converts raw document bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// Options configure the parsers returned by ForFile.
type Options struct {
	// Symbols supplies the sentence terminals and the line-join separator.
	// The zero value selects the English table.
	Symbols symbol.Table
	// Tokenizer is applied to every sentence. Nil selects the tokenizer
	// for the symbol table's language.
	Tokenizer doctree.Tokenizer
	// FallbackPdftotext retries PDF extraction with the pdftotext binary.
	FallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename. An empty terminal
// set in opts.Symbols is reported as a configuration error.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !SupportedExtensions[ext] {
		return nil, errs.Unsupported("file extension " + ext)
	}
	sp, err := newSplitter(opts.Symbols)
	if err != nil {
		return nil, err
	}
	tok := opts.Tokenizer
	if tok == nil {
		tok = tokenizer.ForLanguage(sp.lang)
	}
	c := common{split: sp, tok: tok}

	switch ext {
	case ".md", ".markdown":
		return &MarkdownParser{common: c}, nil
	case ".csv":
		return &CSVParser{common: c}, nil
	case ".html", ".htm":
		return &HTMLParser{common: c}, nil
	case ".pdf":
		return &PDFParser{common: c, FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{common: c}, nil
	default:
		return &TextParser{common: c}, nil
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// common is the state every format parser shares.
type common struct {
	split *splitter
	tok   doctree.Tokenizer
}

func newSplitter(t symbol.Table) (*splitter, error) {
	if t.Language() == "" {
		t = symbol.Default("en", "")
	}
	det, err := boundary.FromTable(t)
	if err != nil {
		return nil, err
	}
	return &splitter{det: det, sep: []rune(t.BrokenLineSeparator()), lang: t.Language()}, nil
}

// addParagraph splits text and adds the sentences as a new paragraph.
// Blank text adds nothing.
func (c common) addParagraph(b *doctree.Builder, text *posText) error {
	sents, err := c.split.sentences(text)
	if err != nil || len(sents) == 0 {
		return err
	}
	b.AddParagraph()
	for _, s := range sents {
		if err := b.AddSentence(s); err != nil {
			return err
		}
	}
	return nil
}

// addListElement splits text into the sentences of one list item.
func (c common) addListElement(b *doctree.Builder, level int, text *posText) error {
	sents, err := c.split.sentences(text)
	if err != nil || len(sents) == 0 {
		return err
	}
	return b.AddListElement(level, sents...)
}

// addSection opens a section whose header is text taken as one sentence.
func (c common) addSection(b *doctree.Builder, level int, text *posText) error {
	header, err := c.split.whole(text)
	if err != nil {
		return err
	}
	if header == nil {
		return b.AddSection(level)
	}
	return b.AddSection(level, header)
}
