package validate

import (
	"strconv"

	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/symbol"
)

const defaultMaxSentenceLength = 120

// SentenceLength reports sentences longer than max_len characters.
type SentenceLength struct {
	base
	max int
}

func newSentenceLength(cfg config.ValidatorConfig, _ symbol.Table) (Validator, error) {
	limit, err := cfg.IntProperty("max_len", defaultMaxSentenceLength)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errs.Config("SentenceLength.max_len", "must be positive")
	}
	return &SentenceLength{base: newBase("SentenceLength", cfg), max: limit}, nil
}

func (v *SentenceLength) Validate(s *doctree.Sentence) []Defect {
	if n := s.Len(); n > v.max {
		return []Defect{v.sentenceDefect(s,
			"The length of the sentence (%s) exceeds the maximum of %s.",
			strconv.Itoa(n), strconv.Itoa(v.max))}
	}
	return nil
}
