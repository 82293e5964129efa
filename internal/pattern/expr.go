package pattern

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// exprGrammar is a pattern expression: terms joined by "+" (direct) or "~"
// (gap). A term is surface[:tag,tag...[:reading]].
// Examples: "in + order + to", "the ~ *:NOUN", "~ very:ADV".
type exprGrammar struct {
	LeadingGap bool           `parser:"@\"~\"?"`
	First      *termGrammar   `parser:"@@"`
	Rest       []*stepGrammar `parser:"@@*"`
}

type stepGrammar struct {
	Op   string       `parser:"@(\"+\" | \"~\")"`
	Term *termGrammar `parser:"@@"`
}

type termGrammar struct {
	Surface string   `parser:"@(Word | Star)"`
	Tags    []string `parser:"( \":\" ( @(Word | Star) ( \",\" @(Word | Star) )* )?"`
	Reading string   `parser:"    ( \":\" @(Word | Star) )? )?"`
}

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[^\s+~:,*]+`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Punct", Pattern: `[+~:,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[exprGrammar](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

// Compile parses a pattern expression.
func Compile(expr string) (Pattern, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Pattern{}, fmt.Errorf("empty pattern expression")
	}
	parsed, err := exprParser.ParseString("", expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}

	first := Direct
	if parsed.LeadingGap {
		first = Gap
	}
	elems := []Element{{Adjacency: first, Term: parsed.First.term()}}
	for _, step := range parsed.Rest {
		adj := Direct
		if step.Op == "~" {
			adj = Gap
		}
		elems = append(elems, Element{Adjacency: adj, Term: step.Term.term()})
	}
	return New(elems...), nil
}

// MustCompile is like Compile but panics on error. Use it for patterns
// fixed at compile time.
func MustCompile(expr string) Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (g *termGrammar) term() Term {
	return Term{Surface: g.Surface, Tags: g.Tags, Reading: g.Reading}
}
