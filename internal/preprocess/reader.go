package preprocess

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docproof/internal/errs"
)

// Syntax recognizes a directive on one source line.
type Syntax interface {
	Directive(line string) (kind Kind, params []string, ok bool)
}

// CommentSyntax recognizes "@suppress a b" inside a line comment delimited
// by Open and Close (Close may be empty).
type CommentSyntax struct {
	Open  string
	Close string
}

var (
	// MarkdownComments matches <!-- @suppress ... --> (also used for HTML).
	MarkdownComments = CommentSyntax{Open: "<!--", Close: "-->"}
	AsciiDocComments = CommentSyntax{Open: "//"}
	LaTeXComments    = CommentSyntax{Open: "%"}
)

const suppressKeyword = "@suppress"

func (c CommentSyntax) Directive(line string) (Kind, []string, bool) {
	body := strings.TrimSpace(line)
	if !strings.HasPrefix(body, c.Open) {
		return "", nil, false
	}
	body = strings.TrimPrefix(body, c.Open)
	if c.Close != "" {
		if !strings.HasSuffix(body, c.Close) {
			return "", nil, false
		}
		body = strings.TrimSuffix(body, c.Close)
	}
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, suppressKeyword) {
		return "", nil, false
	}
	rest := strings.TrimPrefix(body, suppressKeyword)
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", nil, false
	}
	params := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	return Suppress, params, true
}

// SyntaxFor returns the directive syntax for a file extension, or nil for
// formats without comments (plain text).
func SyntaxFor(filename string) Syntax {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown", ".html", ".htm":
		return MarkdownComments
	case ".adoc", ".asciidoc":
		return AsciiDocComments
	case ".tex", ".latex":
		return LaTeXComments
	}
	return nil
}

// Reader reads source lines and harvests directives as it goes.
type Reader struct {
	scanner   *bufio.Scanner
	syntax    Syntax
	line      int
	text      string
	directive bool
	rules     Collector
}

// NewReader wraps r. A nil syntax disables directive recognition.
func NewReader(r io.Reader, syntax Syntax) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner, syntax: syntax}
}

// Scan advances to the next line.
func (r *Reader) Scan() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.line++
	r.text = strings.TrimSuffix(r.scanner.Text(), "\r")
	r.directive = false
	if r.syntax != nil {
		if kind, params, ok := r.syntax.Directive(r.text); ok {
			r.directive = true
			r.rules.Add(kind, r.line, params...)
		}
	}
	return true
}

// Text returns the current line without its line terminator.
func (r *Reader) Text() string { return r.text }

// Line returns the 1-based number of the current line.
func (r *Reader) Line() int { return r.line }

// IsDirective reports whether the current line held a directive.
func (r *Reader) IsDirective() bool { return r.directive }

// Err returns the read error, if any, as a configuration error: an
// unreadable input aborts the run.
func (r *Reader) Err() error {
	return errs.WrapConfig("input", r.scanner.Err())
}

// Rules returns the directives harvested so far.
func (r *Reader) Rules() []Rule { return r.rules.Rules() }
