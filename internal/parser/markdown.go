package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/preprocess"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// MarkdownParser handles Markdown files using goldmark. Headings open
// sections, lists become list blocks, and <!-- @suppress --> comments are
// harvested as suppression rules.
type MarkdownParser struct {
	common
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	// Directives shown inside code blocks are examples, not rules.
	rules, err := harvestRules(maskCode(root, src), preprocess.MarkdownComments)
	if err != nil {
		return nil, err
	}

	w := &mdWalker{common: p.common, idx: newLineIndex(src), b: doctree.NewBuilder(filename, p.tok)}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if err := w.block(n); err != nil {
			return nil, err
		}
	}
	w.b.SetRules(rules)
	return w.b.Build(), nil
}

// harvestRules runs the preprocessing reader over src for its directives.
func harvestRules(src []byte, syntax preprocess.Syntax) ([]preprocess.Rule, error) {
	reader := preprocess.NewReader(bytes.NewReader(src), syntax)
	for reader.Scan() {
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return reader.Rules(), nil
}

// maskCode returns a copy of src with the content of every code block
// blanked out. Line breaks are kept so line numbers do not move.
func maskCode(root ast.Node, src []byte) []byte {
	masked := bytes.Clone(src)
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				for off := seg.Start; off < seg.Stop; off++ {
					if masked[off] != '\n' && masked[off] != '\r' {
						masked[off] = ' '
					}
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return masked
}

type mdWalker struct {
	common
	idx *lineIndex
	b   *doctree.Builder
	// cursor is the end of the last text segment, used to place autolinks.
	cursor int
}

func (w *mdWalker) block(n ast.Node) error {
	switch node := n.(type) {
	case *ast.Heading:
		var t posText
		w.inline(node, &t)
		return w.addSection(w.b, node.Level, &t)

	case *ast.Paragraph, *ast.TextBlock:
		var t posText
		w.inline(node, &t)
		return w.addParagraph(w.b, &t)

	case *ast.List:
		w.b.AddListBlock()
		return w.list(node, 1)

	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if err := w.block(c); err != nil {
				return err
			}
		}
	}
	// Code, HTML blocks and thematic breaks carry no prose.
	return nil
}

// list adds the items of l at level, recursing into nested lists.
func (w *mdWalker) list(l *ast.List, level int) error {
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		var t posText
		var nested []*ast.List
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch child := c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if t.len() > 0 {
					t.appendRune('\n', w.idx.pos(w.cursor))
				}
				w.inline(child, &t)
			case *ast.List:
				nested = append(nested, child)
			}
		}
		if err := w.addListElement(w.b, level, &t); err != nil {
			return err
		}
		for _, sub := range nested {
			if err := w.list(sub, level+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// inline appends the text of n's inline children to t.
func (w *mdWalker) inline(n ast.Node, t *posText) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			seg := node.Segment
			w.appendText(t, seg.Start, seg.Stop)
			w.cursor = seg.Stop
			if node.SoftLineBreak() || node.HardLineBreak() {
				t.appendRune('\n', w.idx.pos(seg.Stop))
			}

		case *ast.Link:
			start := t.len()
			w.inline(node, t)
			t.addLink(start, string(node.Destination))

		case *ast.AutoLink:
			label := node.Label(w.idx.src)
			start := t.len()
			if i := bytes.Index(w.idx.src[w.cursor:], label); i >= 0 {
				off := w.cursor + i
				w.idx.appendBytes(t, off, off+len(label))
				w.cursor = off + len(label)
			}
			t.addLink(start, string(node.URL(w.idx.src)))

		case *ast.CodeSpan:
			// Code keeps its backslashes and ampersands.
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					w.idx.appendBytes(t, txt.Segment.Start, txt.Segment.Stop)
					w.cursor = txt.Segment.Stop
				}
			}

		case *ast.Image, *ast.RawHTML:
			// Alt text and inline HTML are not prose.

		default:
			w.inline(node, t)
		}
	}
}

// appendText adds src[start:stop] to t as prose: a backslash before ASCII
// punctuation is dropped and character references are decoded. Each
// decoded character takes the position of the source text it came from.
func (w *mdWalker) appendText(t *posText, start, stop int) {
	src := w.idx.src
	for i := start; i < stop; {
		switch src[i] {
		case '\\':
			if i+1 < stop && util.IsPunct(src[i+1]) {
				t.appendRune(rune(src[i+1]), w.idx.pos(i+1))
				i += 2
				continue
			}
		case '&':
			if n, dec := charRef(src[i:stop]); n > 0 {
				at := w.idx.pos(i)
				for _, r := range dec {
					t.appendRune(r, at)
				}
				i += n
				continue
			}
		}
		next := i + 1
		for next < stop && src[next] != '\\' && src[next] != '&' {
			next++
		}
		w.idx.appendBytes(t, i, next)
		i = next
	}
}
