// Package pattern finds token patterns in token sequences. It works on any
// token type that exposes a surface, tags and a reading, so it does not
// depend on the document model.
package pattern

import "strings"

// Token is the view of a token the matcher needs.
type Token interface {
	Surface() string
	Tags() []string
	Reading() string
}

// Adjacency says how a pattern element relates to the token before it.
type Adjacency int

const (
	// Direct requires the element to match the very next token.
	Direct Adjacency = iota
	// Gap lets non-matching tokens be skipped before the element matches.
	Gap
)

func (a Adjacency) String() string {
	if a == Gap {
		return "~"
	}
	return "+"
}

// Wildcard matches any value of a field.
const Wildcard = "*"

// Term describes one token to look for. "*" or "" in any field matches
// anything; a tag list shorter than the token's only constrains the
// leading tags.
type Term struct {
	Surface string
	Tags    []string
	Reading string
}

// Matches reports whether tok satisfies the term.
func (t Term) Matches(tok Token) bool {
	return fieldMatches(t.Surface, tok.Surface()) &&
		tagsMatch(t.Tags, tok.Tags()) &&
		fieldMatches(t.Reading, tok.Reading())
}

func (t Term) String() string {
	var b strings.Builder
	b.WriteString(orWildcard(t.Surface))
	if len(t.Tags) > 0 || t.Reading != "" {
		b.WriteByte(':')
		b.WriteString(strings.Join(t.Tags, ","))
	}
	if t.Reading != "" {
		b.WriteByte(':')
		b.WriteString(t.Reading)
	}
	return b.String()
}

func orWildcard(s string) string {
	if s == "" {
		return Wildcard
	}
	return s
}

func isWildcard(s string) bool { return s == "" || s == Wildcard }

func fieldMatches(want, got string) bool {
	if isWildcard(want) || isWildcard(got) {
		return true
	}
	return strings.EqualFold(want, got)
}

func tagsMatch(want, got []string) bool {
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if isWildcard(want[i]) || isWildcard(got[i]) {
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

// Element is one step of a pattern.
type Element struct {
	Adjacency Adjacency
	Term      Term
}

// Pattern is an immutable sequence of elements.
type Pattern struct {
	elems []Element
}

// New builds a pattern. Terms are copied.
func New(elems ...Element) Pattern {
	p := Pattern{elems: make([]Element, len(elems))}
	for i, e := range elems {
		e.Term.Tags = append([]string(nil), e.Term.Tags...)
		p.elems[i] = e
	}
	return p
}

// Sequence builds a pattern whose terms are all directly adjacent.
func Sequence(terms ...Term) Pattern {
	elems := make([]Element, len(terms))
	for i, t := range terms {
		elems[i] = Element{Adjacency: Direct, Term: t}
	}
	return New(elems...)
}

// Len returns the number of elements.
func (p Pattern) Len() int { return len(p.elems) }

// Elements returns a copy of the elements.
func (p Pattern) Elements() []Element { return New(p.elems...).elems }

func (p Pattern) String() string {
	var b strings.Builder
	for i, e := range p.elems {
		if i > 0 {
			b.WriteString(" " + e.Adjacency.String() + " ")
		} else if e.Adjacency == Gap {
			b.WriteString("~ ")
		}
		b.WriteString(e.Term.String())
	}
	return b.String()
}

// MatchConsecutive returns every window of p.Len() tokens whose tokens
// match the terms in order. Adjacency is ignored and windows may overlap.
func MatchConsecutive[T Token](p Pattern, tokens []T) [][]T {
	n := len(p.elems)
	if n == 0 {
		return nil
	}
	var out [][]T
	for i := 0; i+n <= len(tokens); i++ {
		if windowMatches(p.elems, tokens[i:i+n]) {
			out = append(out, tokens[i:i+n:i+n])
		}
	}
	return out
}

func windowMatches[T Token](elems []Element, window []T) bool {
	for i, e := range elems {
		if !e.Term.Matches(window[i]) {
			return false
		}
	}
	return true
}

// MatchExtend scans tokens left to right and returns non-overlapping spans
// matching p. A Direct element must match the next token; a Gap element
// skips tokens until one matches. A span runs from the attempt's first
// token to the last matched token, and the scan resumes after it. A
// failed attempt moves the start forward by one token.
//
// A leading Gap element skips from the attempt start too, so the span
// includes the skipped tokens.
func MatchExtend[T Token](p Pattern, tokens []T) [][]T {
	if len(p.elems) == 0 {
		return nil
	}
	var out [][]T
	start := 0
	for start < len(tokens) {
		end, ok := extendFrom(p.elems, tokens, start)
		if !ok {
			start++
			continue
		}
		out = append(out, tokens[start:end:end])
		start = max(end, start+1)
	}
	return out
}

// extendFrom tries to match elems beginning at tokens[start] and returns the
// exclusive end of the match.
func extendFrom[T Token](elems []Element, tokens []T, start int) (int, bool) {
	pos := start
	for _, e := range elems {
		if e.Adjacency == Gap {
			for pos < len(tokens) && !e.Term.Matches(tokens[pos]) {
				pos++
			}
		}
		if pos >= len(tokens) || !e.Term.Matches(tokens[pos]) {
			return 0, false
		}
		pos++
	}
	return pos, true
}
