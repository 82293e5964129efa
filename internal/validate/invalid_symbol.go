package validate

import (
	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/symbol"
)

// InvalidSymbol reports characters the symbol table lists as invalid
// variants of a symbol, such as a full-width comma in English text.
type InvalidSymbol struct {
	base
	invalid map[rune]symbol.Symbol
}

func newInvalidSymbol(cfg config.ValidatorConfig, symbols symbol.Table) (Validator, error) {
	return &InvalidSymbol{base: newBase("InvalidSymbol", cfg), invalid: symbols.InvalidChars()}, nil
}

func (v *InvalidSymbol) Validate(s *doctree.Sentence) []Defect {
	var out []Defect
	i := 0
	for _, r := range s.Content() {
		if sym, ok := v.invalid[r]; ok {
			out = append(out, v.spanDefect(s, s.OffsetAt(i), s.OffsetAt(i+1),
				"Found invalid symbol %q, use %q instead.", string(r), string(sym.Value)))
		}
		i++
	}
	return out
}
