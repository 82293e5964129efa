// Package suppress drops defects silenced by @suppress directives.
//
// A directive silences a defect when the defect's line lies in the
// directive's range, the directive names the defect's validator (or names
// none), and both the directive and the defect fall within the line span
// of one section.
package suppress

import (
	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/preprocess"
)

// Defect is what the engine needs to know about a reported defect.
type Defect interface {
	ValidatorName() string
	LineNumber() int
}

// Suppressed reports whether any directive in doc silences a defect of
// validator on line.
func Suppressed(doc *doctree.Document, validator string, line int) bool {
	for _, rule := range doc.Rules() {
		if applies(doc, rule, validator, line) {
			return true
		}
	}
	return false
}

// Filter returns the defects no directive silences, in their original order.
func Filter[D Defect](doc *doctree.Document, defects []D) []D {
	rules := doc.Rules()
	if len(rules) == 0 {
		return defects
	}
	out := make([]D, 0, len(defects))
	for _, d := range defects {
		if !Suppressed(doc, d.ValidatorName(), d.LineNumber()) {
			out = append(out, d)
		}
	}
	return out
}

func applies(doc *doctree.Document, rule preprocess.Rule, validator string, line int) bool {
	if rule.Kind != preprocess.Suppress || !rule.Covers(line) || !rule.AppliesTo(validator) {
		return false
	}
	for _, sec := range doc.AllSections() {
		lo, hi, ok := sec.LineRange()
		if !ok {
			continue
		}
		if within(rule.Line, lo, hi) && within(line, lo, hi) {
			return true
		}
	}
	return false
}

func within(line, lo, hi int) bool { return line >= lo && line <= hi }
