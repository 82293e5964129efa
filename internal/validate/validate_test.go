package validate

import (
	"strings"
	"testing"

	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/parser"
	"github.com/dgallion1/docproof/internal/position"
	"github.com/dgallion1/docproof/internal/symbol"
)

func parseDoc(t *testing.T, filename, input string) *doctree.Document {
	t.Helper()
	p, err := parser.ForFile(filename, parser.Options{})
	if err != nil {
		t.Fatalf("ForFile: %v", err)
	}
	doc, err := p.Parse(strings.NewReader(input), filename)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func mustValidator(t *testing.T, name string, props map[string]string) Validator {
	t.Helper()
	v, err := New(config.ValidatorConfig{Name: name, Properties: props}, symbol.Default("en", ""))
	if err != nil {
		t.Fatalf("New(%s): %v", name, err)
	}
	return v
}

func validateAll(v Validator, doc *doctree.Document) []Defect {
	var out []Defect
	for _, s := range doc.Sentences() {
		out = append(out, v.Validate(s)...)
	}
	return out
}

func TestSentenceLength_ReportsLongSentences(t *testing.T) {
	v := mustValidator(t, "SentenceLength", map[string]string{"max_len": "10"})
	doc := parseDoc(t, "a.txt", "Short one. This sentence is definitely too long.")

	defects := validateAll(v, doc)
	if len(defects) != 1 {
		t.Fatalf("expected 1 defect, got %v", defects)
	}
	d := defects[0]
	if d.Validator != "SentenceLength" || d.Severity != SeverityError {
		t.Errorf("unexpected defect header %+v", d)
	}
	if d.Args[0] != "37" || d.Args[1] != "10" {
		t.Errorf("expected args [37 10], got %v", d.Args)
	}
	if d.Start != nil || d.Position() != position.New(1, 11) {
		t.Errorf("expected whole-sentence defect at 1:11, got %v", d.Position())
	}
}

func TestSentenceLength_Default(t *testing.T) {
	v := mustValidator(t, "sentencelength", nil)
	doc := parseDoc(t, "a.txt", strings.Repeat("word ", 30)+"end.")
	if n := len(validateAll(v, doc)); n != 1 {
		t.Errorf("expected the 120 character default to fire, got %d defects", n)
	}
}

func TestSentenceLength_BadConfig(t *testing.T) {
	for _, val := range []string{"abc", "0", "-3"} {
		_, err := New(config.ValidatorConfig{Name: "SentenceLength", Properties: map[string]string{"max_len": val}}, symbol.Table{})
		if !errs.IsConfiguration(err) {
			t.Errorf("max_len=%q: expected configuration error, got %v", val, err)
		}
	}
}

func TestPattern_ReportsSpans(t *testing.T) {
	v := mustValidator(t, "Pattern", map[string]string{"patterns": "in + order + to; very + unique"})
	doc := parseDoc(t, "a.txt", "We did it in order to win.")

	defects := validateAll(v, doc)
	if len(defects) != 1 {
		t.Fatalf("expected 1 defect, got %v", defects)
	}
	d := defects[0]
	if *d.Start != position.New(1, 10) || *d.End != position.New(1, 21) {
		t.Errorf("expected span 1:10-1:21, got %v-%v", *d.Start, *d.End)
	}
	if d.Args[0] != "in order to" {
		t.Errorf("expected matched text, got %q", d.Args[0])
	}
	if !strings.Contains(d.Message, `"in order to"`) {
		t.Errorf("unexpected message %q", d.Message)
	}
}

func TestPattern_Modes(t *testing.T) {
	doc := parseDoc(t, "a.txt", "It was very very very good.")

	extend := mustValidator(t, "Pattern", map[string]string{"patterns": "very + very"})
	if n := len(validateAll(extend, doc)); n != 1 {
		t.Errorf("expected non-overlapping extend matches, got %d", n)
	}
	consecutive := mustValidator(t, "Pattern", map[string]string{"patterns": "very + very", "mode": "consecutive"})
	if n := len(validateAll(consecutive, doc)); n != 2 {
		t.Errorf("expected overlapping consecutive windows, got %d", n)
	}
}

func TestPattern_GapTolerant(t *testing.T) {
	v := mustValidator(t, "Pattern", map[string]string{"patterns": "not ~ unless"})
	doc := parseDoc(t, "a.txt", "Do not go unless asked.")
	defects := validateAll(v, doc)
	if len(defects) != 1 || defects[0].Args[0] != "not go unless" {
		t.Errorf("expected gap match, got %v", defects)
	}
}

func TestPattern_BadConfig(t *testing.T) {
	cases := []map[string]string{
		{"patterns": ""},
		{"patterns": " ; "},
		{"patterns": "a ++ b"},
		{"patterns": "a", "mode": "fuzzy"},
	}
	for _, props := range cases {
		_, err := New(config.ValidatorConfig{Name: "Pattern", Properties: props}, symbol.Default("en", ""))
		if !errs.IsConfiguration(err) {
			t.Errorf("%v: expected configuration error, got %v", props, err)
		}
	}
}

func TestInvalidSymbol_ReportsVariants(t *testing.T) {
	v := mustValidator(t, "InvalidSymbol", nil)
	doc := parseDoc(t, "a.txt", "Hello，world.")

	defects := validateAll(v, doc)
	if len(defects) != 1 {
		t.Fatalf("expected 1 defect, got %v", defects)
	}
	d := defects[0]
	if *d.Start != position.New(1, 5) || *d.End != position.New(1, 6) {
		t.Errorf("expected span 1:5-1:6, got %v-%v", *d.Start, *d.End)
	}
	if d.Args[0] != "，" || d.Args[1] != "," {
		t.Errorf("unexpected args %v", d.Args)
	}
}

func TestInvalidSymbol_CleanText(t *testing.T) {
	v := mustValidator(t, "InvalidSymbol", nil)
	doc := parseDoc(t, "a.txt", "Hello, world. All fine here!")
	if defects := validateAll(v, doc); len(defects) != 0 {
		t.Errorf("expected no defects, got %v", defects)
	}
}

func TestNew_UnknownValidator(t *testing.T) {
	_, err := New(config.ValidatorConfig{Name: "Spelling"}, symbol.Table{})
	if !errs.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestFromChecker_Default(t *testing.T) {
	vs, err := FromChecker(config.DefaultChecker("en", ""))
	if err != nil {
		t.Fatalf("FromChecker: %v", err)
	}
	if len(vs) != 2 || vs[0].Name() != "SentenceLength" || vs[1].Name() != "InvalidSymbol" {
		t.Errorf("unexpected validators %v", vs)
	}
}

func TestFromChecker_Level(t *testing.T) {
	c := config.Checker{Lang: "en", Validators: []config.ValidatorConfig{
		{Name: "SentenceLength", Level: config.LevelWarn, Properties: map[string]string{"max_len": "2"}},
	}}
	vs, err := FromChecker(c)
	if err != nil {
		t.Fatalf("FromChecker: %v", err)
	}
	defects := validateAll(vs[0], parseDoc(t, "a.txt", "Too long."))
	if len(defects) != 1 || defects[0].Severity != SeverityWarn {
		t.Errorf("expected one warning, got %v", defects)
	}
}

func TestNames_IncludesBuiltins(t *testing.T) {
	names := strings.Join(Names(), ",")
	for _, want := range []string{"invalidsymbol", "pattern", "sentencelength"} {
		if !strings.Contains(names, want) {
			t.Errorf("expected %s in %s", want, names)
		}
	}
}

func TestDefect_MarshalJSON(t *testing.T) {
	v := mustValidator(t, "InvalidSymbol", nil)
	d := validateAll(v, parseDoc(t, "a.txt", "A，b."))[0]
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	got := string(b)
	for _, want := range []string{`"validator":"InvalidSymbol"`, `"line":1`, `"start":{"line":1,"offset":1}`, `"sentence":"A，b."`} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in %s", want, got)
		}
	}
}
