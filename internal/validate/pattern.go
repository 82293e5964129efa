package validate

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/pattern"
	"github.com/dgallion1/docproof/internal/symbol"
	"github.com/dgallion1/docproof/internal/tokenizer"
)

// Match modes for the Pattern validator.
const (
	ModeExtend      = "extend"
	ModeConsecutive = "consecutive"
)

// Pattern reports every token span matching one of its expressions.
type Pattern struct {
	base
	patterns []pattern.Pattern
	match    func(pattern.Pattern, []doctree.Token) [][]doctree.Token
	sep      string
}

func newPattern(cfg config.ValidatorConfig, symbols symbol.Table) (Validator, error) {
	v := &Pattern{base: newBase("Pattern", cfg), sep: symbols.BrokenLineSeparator()}

	switch mode := strings.ToLower(cfg.Property("mode", ModeExtend)); mode {
	case ModeExtend:
		v.match = pattern.MatchExtend[doctree.Token]
	case ModeConsecutive:
		v.match = pattern.MatchConsecutive[doctree.Token]
	default:
		return nil, errs.Config("Pattern.mode", fmt.Sprintf("unknown mode %q", mode))
	}

	for _, expr := range strings.Split(cfg.Property("patterns", ""), ";") {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}
		p, err := pattern.Compile(expr)
		if err != nil {
			return nil, errs.WrapConfig("Pattern.patterns", err)
		}
		v.patterns = append(v.patterns, p)
	}
	if len(v.patterns) == 0 {
		return nil, errs.Config("Pattern.patterns", "no patterns configured")
	}
	return v, nil
}

func (v *Pattern) Validate(s *doctree.Sentence) []Defect {
	tokens := tokenizer.WithoutSpace(s.Tokens())
	if len(tokens) == 0 {
		return nil
	}
	var out []Defect
	for _, p := range v.patterns {
		for _, span := range v.match(p, tokens) {
			surfaces := make([]string, len(span))
			for i, tok := range span {
				surfaces[i] = tok.Surface()
			}
			out = append(out, v.spanDefect(s, span[0].Start(), span[len(span)-1].End(),
				"Found the expression %q (pattern %s).", strings.Join(surfaces, v.sep), p.String()))
		}
	}
	return out
}
