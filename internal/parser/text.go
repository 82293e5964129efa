package parser

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/position"
	"github.com/dgallion1/docproof/internal/preprocess"
)

// TextParser handles plain text files. Consecutive non-blank lines form a
// paragraph; blank lines separate paragraphs.
type TextParser struct {
	common
}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	return p.parseLines(r, filename, preprocess.SyntaxFor(filename))
}

// parseLines is the line-oriented pipeline shared with formats that are
// reduced to plain text first.
func (p *TextParser) parseLines(r io.Reader, filename string, syntax preprocess.Syntax) (*doctree.Document, error) {
	b := doctree.NewBuilder(filename, p.tok)
	reader := preprocess.NewReader(r, syntax)

	var para posText
	var prevLine, prevLen int
	flush := func() error {
		err := p.addParagraph(b, &para)
		para.reset()
		return err
	}

	for reader.Scan() {
		line := reader.Text()
		if reader.IsDirective() || strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if para.len() > 0 {
			para.appendRune('\n', position.New(prevLine, prevLen))
		}
		para.appendString(line, reader.Line(), 0)
		prevLine, prevLen = reader.Line(), utf8.RuneCountInString(line)
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	b.SetRules(reader.Rules())
	return b.Build(), nil
}
