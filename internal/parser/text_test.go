package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/position"
	"github.com/dgallion1/docproof/internal/symbol"
	"github.com/dgallion1/docproof/internal/tokenizer"
)

func parse(t *testing.T, filename, input string, opts Options) *doctree.Document {
	t.Helper()
	p, err := ForFile(filename, opts)
	if err != nil {
		t.Fatalf("ForFile(%q): %v", filename, err)
	}
	doc, err := p.Parse(strings.NewReader(input), filename)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func contents(doc *doctree.Document) []string {
	var out []string
	for _, s := range doc.Sentences() {
		out = append(out, s.Content())
	}
	return out
}

func checkOffsets(t *testing.T, doc *doctree.Document) {
	t.Helper()
	for _, s := range doc.Sentences() {
		if n := len([]rune(s.Content())); n != len(s.Offsets()) {
			t.Errorf("sentence %q: %d characters but %d offsets", s.Content(), n, len(s.Offsets()))
		}
	}
}

func TestTextParser_ParagraphRejoin(t *testing.T) {
	doc := parse(t, "notes.txt", "line one\nline two\n\nnext paragraph", Options{})
	checkOffsets(t, doc)

	got := contents(doc)
	want := []string{"line one line two", "next paragraph"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}

	first := doc.Sentences()[0]
	if sep := first.OffsetAt(8); sep != position.New(2, 0) {
		t.Errorf("expected separator at 2:0, got %v", sep)
	}
	// The separator shares its position with the first character of the
	// joined line.
	if first.OffsetAt(9) != position.New(2, 0) {
		t.Errorf("expected second line text at 2:0, got %v", first.OffsetAt(9))
	}
	if first.OffsetAt(10) != position.New(2, 1) {
		t.Errorf("expected 2:1 after the first joined character, got %v", first.OffsetAt(10))
	}
	second := doc.Sentences()[1]
	if second.LineNumber() != 4 || second.StartColumn() != 0 {
		t.Errorf("expected next paragraph at 4:0, got %d:%d", second.LineNumber(), second.StartColumn())
	}

	paras := doc.Sections()[0].Paragraphs()
	if len(paras) != 2 {
		t.Errorf("expected 2 paragraphs, got %d", len(paras))
	}
}

func TestTextParser_SentenceSplitting(t *testing.T) {
	doc := parse(t, "notes.txt", "First one. Second one.\nThird one", Options{})
	checkOffsets(t, doc)

	got := contents(doc)
	want := []string{"First one.", "Second one.", "Third one"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	sents := doc.Sentences()
	if sents[1].LineNumber() != 1 || sents[1].StartColumn() != 11 {
		t.Errorf("expected second sentence at 1:11, got %d:%d", sents[1].LineNumber(), sents[1].StartColumn())
	}
	if sents[2].LineNumber() != 2 || sents[2].StartColumn() != 0 {
		t.Errorf("expected third sentence at 2:0, got %d:%d", sents[2].LineNumber(), sents[2].StartColumn())
	}
	if !sents[0].IsFirstSentence() || sents[1].IsFirstSentence() {
		t.Error("expected only the first sentence to open the paragraph")
	}
}

func TestTextParser_Abbreviation(t *testing.T) {
	doc := parse(t, "notes.txt", "Dr. Smith arrived. He sat down.", Options{})
	got := contents(doc)
	want := []string{"Dr. Smith arrived.", "He sat down."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTextParser_Japanese(t *testing.T) {
	opts := Options{Symbols: symbol.Default("ja", "")}
	doc := parse(t, "notes.txt", "今日は\n晴れ。明日は雨。", opts)
	checkOffsets(t, doc)

	got := contents(doc)
	want := []string{"今日は晴れ。", "明日は雨。"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if at := doc.Sentences()[0].OffsetAt(3); at != position.New(2, 0) {
		t.Errorf("expected joined character at 2:0, got %v", at)
	}
	if at := doc.Sentences()[1].OffsetAt(0); at != position.New(2, 3) {
		t.Errorf("expected second sentence at 2:3, got %v", at)
	}
	if toks := doc.Sentences()[0].Tokens(); len(toks) == 0 || toks[0].Surface() != "今日" {
		t.Errorf("expected script-class tokens, got %v", toks)
	}
}

func TestTextParser_Tokens(t *testing.T) {
	doc := parse(t, "notes.txt", "The cat sat.", Options{})
	toks := doc.Sentences()[0].Tokens()
	if len(toks) != 6 {
		t.Fatalf("expected 6 tokens, got %v", toks)
	}
	if toks[2].Surface() != "cat" || toks[2].Start() != position.New(1, 4) {
		t.Errorf("unexpected token %v at %v", toks[2], toks[2].Start())
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	doc := parse(t, "empty.txt", "", Options{})
	if n := len(doc.Sentences()); n != 0 {
		t.Errorf("expected no sentences for empty input, got %d", n)
	}
	if doc.FileName() != "empty.txt" {
		t.Errorf("expected file name %q, got %q", "empty.txt", doc.FileName())
	}
}

func TestTextParser_WindowsLineEndings(t *testing.T) {
	doc := parse(t, "notes.txt", "one\r\ntwo.\r\n\r\nthree.", Options{})
	got := contents(doc)
	want := []string{"one two.", "three."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTextParser_Idempotent(t *testing.T) {
	input := "Alpha beta. Gamma\ndelta.\n\nEpsilon."
	a := parse(t, "a.txt", input, Options{})
	b := parse(t, "a.txt", input, Options{})
	if !reflect.DeepEqual(a.Sections(), b.Sections()) {
		t.Error("expected identical input to give equal documents")
	}
}

type brokenTokenizer struct{}

var errAnalyzer = errors.New("analyzer unavailable")

func (brokenTokenizer) Tokenize(string, position.OffsetMap) ([]doctree.Token, error) {
	return nil, errAnalyzer
}

func TestTextParser_TokenizerErrorPropagates(t *testing.T) {
	p, err := ForFile("a.txt", Options{Tokenizer: brokenTokenizer{}})
	if err != nil {
		t.Fatalf("ForFile: %v", err)
	}
	_, err = p.Parse(strings.NewReader("Some text."), "a.txt")
	if !errors.Is(err, errAnalyzer) {
		t.Errorf("expected the tokenizer error, got %v", err)
	}
}

func TestForFile_Unsupported(t *testing.T) {
	_, err := ForFile("image.png", Options{})
	if !errors.Is(err, errs.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if IsSupportedExtension("image.png") || !IsSupportedExtension("README.MD") {
		t.Error("unexpected IsSupportedExtension result")
	}
}

func TestForFile_CustomTokenizer(t *testing.T) {
	tok := tokenizer.Synchronized(tokenizer.Whitespace{})
	doc := parse(t, "a.txt", "Hi there.", Options{Tokenizer: tok})
	if n := len(doc.Sentences()[0].Tokens()); n != 4 {
		t.Errorf("expected 4 tokens, got %d", n)
	}
}
