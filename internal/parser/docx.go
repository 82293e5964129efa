package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. A .docx has no source lines, so each body
// paragraph counts as one line, numbered from 1 in document order.
type DOCXParser struct {
	common
}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docproof-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	b := doctree.NewBuilder(filename, p.tok)
	inList := false
	line := 0
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		line++

		var t posText
		docxParagraphText(doc, para, line, &t)
		if t.blank() {
			continue
		}

		if level := docxHeadingLevel(para); level > 0 {
			inList = false
			if err := p.addSection(b, level, &t); err != nil {
				return nil, err
			}
			continue
		}
		if level := docxListLevel(para); level > 0 {
			if !inList {
				b.AddListBlock()
				inList = true
			}
			if err := p.addListElement(b, level, &t); err != nil {
				return nil, err
			}
			continue
		}
		inList = false
		if err := p.addParagraph(b, &t); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if rest, ok := strings.CutPrefix(style, "heading"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 6 {
			return n
		}
	}
	if style == "title" {
		return 1
	}
	return 0
}

// docxListLevel returns the 1-based list level of a numbered or bulleted
// paragraph, or 0 for ordinary paragraphs.
func docxListLevel(para *docx.Paragraph) int {
	if para.Properties == nil {
		return 0
	}
	if num := para.Properties.NumProperties; num != nil {
		if num.Ilvl != nil {
			if n, err := strconv.Atoi(num.Ilvl.Val); err == nil {
				return n + 1
			}
		}
		return 1
	}
	if para.Properties.Style != nil && strings.EqualFold(para.Properties.Style.Val, "ListParagraph") {
		return 1
	}
	return 0
}

// docxParagraphText appends the paragraph's text to t as one line. Line
// breaks inside the paragraph stay on the same line number.
func docxParagraphText(doc *docx.Docx, para *docx.Paragraph, line int, t *posText) {
	col := 0
	appendRun := func(run *docx.Run) {
		for _, rc := range run.Children {
			switch x := rc.(type) {
			case *docx.Text:
				t.appendString(x.Text, line, col)
				col += len([]rune(x.Text))
			case *docx.Tab:
				t.appendString("\t", line, col)
				col++
			}
		}
	}
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			appendRun(c)
		case *docx.Hyperlink:
			start := t.len()
			appendRun(&c.Run)
			if target, err := doc.ReferTarget(c.ID); err == nil {
				t.addLink(start, target)
			}
		}
	}
}
