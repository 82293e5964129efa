// Package preprocess harvests suppression directives embedded in source
// comments while the source is read line by line.
package preprocess

import "strings"

// Kind is the family of a directive. Rules of one kind never overlap.
type Kind string

const Suppress Kind = "SUPPRESS"

// Rule is a directive active over the half-open line range
// [Line, LineLimit). A LineLimit of 0 leaves the range open.
type Rule struct {
	Kind      Kind
	Line      int
	LineLimit int
	params    []string
}

// NewRule creates a rule declared at line. Empty params apply the rule to
// every validator.
func NewRule(kind Kind, line int, params ...string) Rule {
	r := Rule{Kind: kind, Line: line}
	for _, p := range params {
		if p = strings.TrimSpace(p); p != "" {
			r.params = append(r.params, p)
		}
	}
	return r
}

// Params returns a copy of the validator names the rule is scoped to.
func (r Rule) Params() []string {
	if len(r.params) == 0 {
		return nil
	}
	return append([]string(nil), r.params...)
}

// WithLimit returns a copy of r ending before line limit.
func (r Rule) WithLimit(limit int) Rule {
	r.LineLimit = limit
	r.params = r.Params()
	return r
}

// Covers reports whether line falls inside the rule's active range.
func (r Rule) Covers(line int) bool {
	if line < r.Line {
		return false
	}
	return r.LineLimit <= 0 || line < r.LineLimit
}

// AppliesTo reports whether the rule targets the named validator. Names
// compare case-insensitively with a trailing ".js" removed.
func (r Rule) AppliesTo(validator string) bool {
	if len(r.params) == 0 {
		return true
	}
	name := normalizeName(validator)
	for _, p := range r.params {
		if normalizeName(p) == name {
			return true
		}
	}
	return false
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".js")
}

// Collector accumulates rules, closing the previous rule of the same kind
// when a new one is declared.
type Collector struct {
	rules []Rule
	last  map[Kind]int
}

// Add records a directive of kind declared at line.
func (c *Collector) Add(kind Kind, line int, params ...string) {
	if c.last == nil {
		c.last = make(map[Kind]int)
	}
	if i, ok := c.last[kind]; ok {
		c.rules[i] = c.rules[i].WithLimit(line)
	}
	c.rules = append(c.rules, NewRule(kind, line, params...))
	c.last[kind] = len(c.rules) - 1
}

// Rules returns the rules collected so far.
func (c *Collector) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}
