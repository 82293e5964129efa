package pattern

import (
	"strings"
	"testing"
)

type tok struct {
	surface string
	tags    []string
	reading string
}

func (t tok) Surface() string { return t.surface }
func (t tok) Tags() []string  { return t.tags }
func (t tok) Reading() string { return t.reading }

func words(s string) []tok {
	var out []tok
	for _, w := range strings.Fields(s) {
		out = append(out, tok{surface: w, tags: []string{"X"}, reading: strings.ToLower(w)})
	}
	return out
}

func spanText(spans [][]tok) []string {
	var out []string
	for _, sp := range spans {
		var parts []string
		for _, t := range sp {
			parts = append(parts, t.surface)
		}
		out = append(out, strings.Join(parts, " "))
	}
	return out
}

func TestMatchConsecutive_AllWindows(t *testing.T) {
	p := Sequence(Term{Surface: "A"}, Term{Surface: "B"})
	tokens := words("A B A B")
	spans := MatchConsecutive(p, tokens)
	if len(spans) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(spans))
	}
	if &spans[0][0] != &tokens[0] || &spans[1][0] != &tokens[2] {
		t.Error("expected spans to alias the input at offsets 0 and 2")
	}
}

func TestMatchConsecutive_Overlapping(t *testing.T) {
	p := Sequence(Term{Surface: "A"}, Term{Surface: "A"})
	spans := MatchConsecutive(p, words("A A A"))
	if len(spans) != 2 {
		t.Errorf("expected overlapping windows at 0 and 1, got %v", spanText(spans))
	}
}

func TestMatchConsecutive_IgnoresAdjacency(t *testing.T) {
	p := New(Element{Adjacency: Direct, Term: Term{Surface: "A"}}, Element{Adjacency: Gap, Term: Term{Surface: "B"}})
	if spans := MatchConsecutive(p, words("A X B")); len(spans) != 0 {
		t.Errorf("expected no windows, got %v", spanText(spans))
	}
}

func TestMatchExtend_SameAsConsecutiveForDirect(t *testing.T) {
	p := Sequence(Term{Surface: "A"}, Term{Surface: "B"})
	tokens := words("A B A B")
	spans := MatchExtend(p, tokens)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %v", spanText(spans))
	}
	if &spans[0][0] != &tokens[0] || &spans[1][0] != &tokens[2] {
		t.Error("expected spans at offsets 0 and 2")
	}
}

func TestMatchExtend_NoOverlap(t *testing.T) {
	p := Sequence(Term{Surface: "A"}, Term{Surface: "A"})
	spans := MatchExtend(p, words("A A A"))
	if len(spans) != 1 {
		t.Errorf("expected a single non-overlapping span, got %v", spanText(spans))
	}
}

func TestMatchExtend_GapSkips(t *testing.T) {
	p := New(Element{Adjacency: Direct, Term: Term{Surface: "A"}}, Element{Adjacency: Gap, Term: Term{Surface: "B"}})
	spans := MatchExtend(p, words("A X B"))
	if len(spans) != 1 || len(spans[0]) != 3 {
		t.Fatalf("expected one 3-token span, got %v", spanText(spans))
	}
}

func TestMatchExtend_DirectFailsImmediately(t *testing.T) {
	p := Sequence(Term{Surface: "A"}, Term{Surface: "B"})
	if spans := MatchExtend(p, words("A X B")); len(spans) != 0 {
		t.Errorf("expected no match, got %v", spanText(spans))
	}
}

func TestMatchExtend_RetriesAfterFailure(t *testing.T) {
	p := MustCompile("A ~ B")
	spans := MatchExtend(p, words("A A X B C"))
	got := spanText(spans)
	if len(got) != 1 || got[0] != "A A X B" {
		t.Errorf("expected [A A X B], got %v", got)
	}
}

func TestMatchExtend_LeadingGapTerminates(t *testing.T) {
	p := New(Element{Adjacency: Gap, Term: Term{Surface: "Z"}})
	if spans := MatchExtend(p, words("A B C")); len(spans) != 0 {
		t.Errorf("expected no match, got %v", spanText(spans))
	}
	spans := MatchExtend(p, words("A Z C Z"))
	if got := spanText(spans); len(got) != 2 || got[0] != "A Z" || got[1] != "C Z" {
		t.Errorf("expected [A Z] and [C Z], got %v", got)
	}
}

func TestMatchExtend_LeadingGapSpansSkippedTokens(t *testing.T) {
	p := MustCompile("~ b + c")
	spans := MatchExtend(p, words("x y b c"))
	if got := spanText(spans); len(got) != 1 || got[0] != "x y b c" {
		t.Errorf("expected [x y b c], got %v", got)
	}
	if spans := MatchExtend(p, words("x y b d")); len(spans) != 0 {
		t.Errorf("expected no match when the direct element fails, got %v", spanText(spans))
	}
}

func TestMatchExtend_Empty(t *testing.T) {
	if spans := MatchExtend(Pattern{}, words("A")); spans != nil {
		t.Errorf("expected nil for an empty pattern, got %v", spans)
	}
	if spans := MatchExtend(MustCompile("A"), []tok(nil)); spans != nil {
		t.Errorf("expected nil for no tokens, got %v", spans)
	}
}

func TestTerm_Wildcards(t *testing.T) {
	in := tok{surface: "Cat", tags: []string{"NOUN", "singular"}, reading: "kyat"}
	cases := []struct {
		name string
		term Term
		want bool
	}{
		{"star surface", Term{Surface: "*"}, true},
		{"empty term", Term{}, true},
		{"folded surface", Term{Surface: "cat"}, true},
		{"other surface", Term{Surface: "dog"}, false},
		{"empty tags", Term{Surface: "cat", Tags: nil}, true},
		{"leading tag", Term{Tags: []string{"NOUN"}}, true},
		{"wrong tag", Term{Tags: []string{"VERB"}}, false},
		{"star tag", Term{Tags: []string{"*", "singular"}}, true},
		{"longer tag list", Term{Tags: []string{"NOUN", "singular", "extra"}}, true},
		{"reading", Term{Reading: "KYAT"}, true},
		{"wrong reading", Term{Reading: "neko"}, false},
	}
	for _, tc := range cases {
		if got := tc.term.Matches(in); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestTerm_WildcardOnTokenSide(t *testing.T) {
	in := tok{surface: "*", tags: []string{""}}
	if !(Term{Surface: "anything", Tags: []string{"NOUN"}}).Matches(in) {
		t.Error("expected wildcard token fields to match")
	}
}

func TestNew_CopiesTags(t *testing.T) {
	tags := []string{"NOUN"}
	p := New(Element{Term: Term{Surface: "a", Tags: tags}})
	tags[0] = "VERB"
	if p.Elements()[0].Term.Tags[0] != "NOUN" {
		t.Error("pattern changed through the caller's tag slice")
	}
}

func TestCompile(t *testing.T) {
	p, err := Compile("the + *:NOUN,sg ~ cat::kyat")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	elems := p.Elements()
	if len(elems) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elems))
	}
	if elems[0].Adjacency != Direct || elems[0].Term.Surface != "the" {
		t.Errorf("unexpected first element %+v", elems[0])
	}
	if elems[1].Adjacency != Direct || elems[1].Term.Surface != "*" ||
		strings.Join(elems[1].Term.Tags, ",") != "NOUN,sg" {
		t.Errorf("unexpected second element %+v", elems[1])
	}
	if elems[2].Adjacency != Gap || elems[2].Term.Surface != "cat" || elems[2].Term.Reading != "kyat" {
		t.Errorf("unexpected third element %+v", elems[2])
	}
}

func TestCompile_LeadingGap(t *testing.T) {
	p, err := Compile("~ very")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.Elements()[0].Adjacency != Gap {
		t.Error("expected leading gap element")
	}
	if p.String() != "~ very" {
		t.Errorf("expected round-tripped expression, got %q", p.String())
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, expr := range []string{"", "  ", "a +", "+ a", "a ++ b"} {
		if _, err := Compile(expr); err == nil {
			t.Errorf("expected error for %q", expr)
		}
	}
}

func TestCompile_Japanese(t *testing.T) {
	p := MustCompile("こと + が + できる")
	tokens := []tok{{surface: "こと"}, {surface: "が"}, {surface: "できる"}}
	if spans := MatchExtend(p, tokens); len(spans) != 1 {
		t.Errorf("expected one match, got %d", len(spans))
	}
}
