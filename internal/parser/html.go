package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/preprocess"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. It walks the token stream rather than
// the parsed tree so every text byte keeps its source position.
type HTMLParser struct {
	common
}

type htmlBlock int

const (
	htmlParagraph htmlBlock = iota
	htmlHeader
	htmlItem
)

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	rules, err := harvestRules(src, preprocess.MarkdownComments)
	if err != nil {
		return nil, err
	}

	w := &htmlWalker{common: p.common, idx: newLineIndex(src), b: doctree.NewBuilder(filename, p.tok)}
	if err := w.walk(src); err != nil {
		return nil, err
	}
	w.b.SetRules(rules)
	return w.b.Build(), nil
}

type htmlWalker struct {
	common
	idx *lineIndex
	b   *doctree.Builder

	text      posText
	kind      htmlBlock
	level     int // Heading level while kind is htmlHeader
	listDepth int
	inItem    int
	skip      int // Depth inside elements without prose
	linkStart int
	linkHref  string
}

func (w *htmlWalker) walk(src []byte) error {
	z := html.NewTokenizer(bytes.NewReader(src))
	offset := 0
	for {
		tt := z.Next()
		raw := z.Raw()
		start := offset
		offset += len(raw)

		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return w.flush()
			}
			return fmt.Errorf("parse html: %w", z.Err())

		case html.TextToken:
			if w.skip == 0 {
				w.appendText(raw, start)
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			var href string
			if string(name) == "a" {
				href = attr(z, "href")
			}
			if err := w.open(string(name), href, tt == html.SelfClosingTagToken); err != nil {
				return err
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if err := w.close(string(name)); err != nil {
				return err
			}
		}
	}
}

func (w *htmlWalker) open(name, href string, selfClosing bool) error {
	if skipElement(name) {
		if !selfClosing {
			w.skip++
		}
		return nil
	}
	if w.skip > 0 {
		return nil
	}

	if level := headingLevel(name); level > 0 {
		if err := w.flush(); err != nil {
			return err
		}
		w.kind, w.level = htmlHeader, level
		return nil
	}

	switch name {
	case "ul", "ol":
		if err := w.flush(); err != nil {
			return err
		}
		if w.listDepth == 0 {
			w.b.AddListBlock()
		}
		w.listDepth++
	case "li":
		if err := w.flush(); err != nil {
			return err
		}
		w.inItem++
		w.kind = htmlItem
	case "a":
		w.linkStart, w.linkHref = w.text.len(), href
	case "br":
		if w.text.len() > 0 {
			w.text.appendRune('\n', w.text.offs[len(w.text.offs)-1])
		}
	default:
		if blockElement(name) {
			return w.flush()
		}
	}
	return nil
}

func (w *htmlWalker) close(name string) error {
	if skipElement(name) {
		if w.skip > 0 {
			w.skip--
		}
		return nil
	}
	if w.skip > 0 {
		return nil
	}

	if headingLevel(name) > 0 {
		return w.flush()
	}

	switch name {
	case "ul", "ol":
		if err := w.flush(); err != nil {
			return err
		}
		if w.listDepth > 0 {
			w.listDepth--
		}
		if w.inItem > 0 {
			w.kind = htmlItem
		}
	case "li":
		if err := w.flush(); err != nil {
			return err
		}
		if w.inItem > 0 {
			w.inItem--
		}
		w.kind = htmlParagraph
		if w.inItem > 0 {
			w.kind = htmlItem
		}
	case "a":
		w.text.addLink(w.linkStart, w.linkHref)
		w.linkHref = ""
	default:
		if blockElement(name) {
			return w.flush()
		}
	}
	return nil
}

// flush emits the accumulated text as a header, list item or paragraph.
func (w *htmlWalker) flush() error {
	defer w.text.reset()
	switch w.kind {
	case htmlHeader:
		w.kind = htmlParagraph
		if w.inItem > 0 {
			w.kind = htmlItem
		}
		return w.addSection(w.b, w.level, &w.text)
	case htmlItem:
		if w.text.blank() {
			return nil
		}
		return w.addListElement(w.b, max(w.listDepth, 1), &w.text)
	}
	if w.text.blank() {
		return nil
	}
	return w.addParagraph(w.b, &w.text)
}

// appendText adds a raw text token that starts at byte offset start,
// decoding character references in place.
func (w *htmlWalker) appendText(raw []byte, start int) {
	for i := 0; i < len(raw); {
		if raw[i] == '&' {
			if n, dec := charRef(raw[i:]); n > 0 {
				at := w.idx.pos(start + i)
				for _, r := range dec {
					w.text.appendRune(r, at)
				}
				i += n
				continue
			}
		}
		next := i + 1
		for next < len(raw) && raw[next] != '&' {
			next++
		}
		w.idx.appendBytes(&w.text, start+i, start+next)
		i = next
	}
}

func attr(z *html.Tokenizer, key string) string {
	for {
		k, v, more := z.TagAttr()
		if string(k) == key {
			return string(v)
		}
		if !more {
			return ""
		}
	}
}

func skipElement(name string) bool {
	switch name {
	case "script", "style", "head", "nav", "footer", "noscript", "template", "pre":
		return true
	}
	return false
}

func blockElement(name string) bool {
	switch name {
	case "p", "div", "blockquote", "td", "th", "tr", "table", "section", "article", "main", "body", "dd", "dt", "figcaption":
		return true
	}
	return false
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}
