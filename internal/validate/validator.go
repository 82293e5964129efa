// Package validate runs rule checkers over a parsed document and collects
// the defects they report.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/position"
)

// Severity of a defect, taken from the validator's configured level.
type Severity string

const (
	SeverityError Severity = config.LevelError
	SeverityWarn  Severity = config.LevelWarn
	SeverityInfo  Severity = config.LevelInfo
)

// Validator checks one sentence at a time. Implementations must not keep
// per-call state: one validator may serve several documents concurrently.
type Validator interface {
	Name() string
	Validate(s *doctree.Sentence) []Defect
}

// Defect is one reported problem. Start and End are set when the problem
// covers part of the sentence; End is exclusive.
type Defect struct {
	Validator string
	Severity  Severity
	Sentence  *doctree.Sentence
	Start     *position.LineOffset
	End       *position.LineOffset
	Args      []string
	Message   string
}

// ValidatorName returns the name of the validator that reported d.
func (d Defect) ValidatorName() string { return d.Validator }

// LineNumber is the line the defect starts on.
func (d Defect) LineNumber() int { return d.Position().Line }

// Position is the start of the defect, or of its sentence when the defect
// covers the whole sentence.
func (d Defect) Position() position.LineOffset {
	if d.Start != nil {
		return *d.Start
	}
	if d.Sentence == nil {
		return position.LineOffset{}
	}
	return position.New(d.Sentence.LineNumber(), d.Sentence.StartColumn())
}

func (d Defect) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", d.Position(), d.Severity, d.Validator, d.Message)
}

type defectJSON struct {
	Validator string               `json:"validator"`
	Severity  Severity             `json:"severity"`
	Message   string               `json:"message"`
	Line      int                  `json:"line"`
	Start     *position.LineOffset `json:"start,omitempty"`
	End       *position.LineOffset `json:"end,omitempty"`
	Args      []string             `json:"args,omitempty"`
	Sentence  string               `json:"sentence,omitempty"`
}

func (d Defect) MarshalJSON() ([]byte, error) {
	out := defectJSON{
		Validator: d.Validator,
		Severity:  d.Severity,
		Message:   d.Message,
		Line:      d.LineNumber(),
		Start:     d.Start,
		End:       d.End,
		Args:      d.Args,
	}
	if d.Sentence != nil {
		out.Sentence = d.Sentence.Content()
	}
	return json.Marshal(out)
}

// base carries the name and severity every validator reports with.
type base struct {
	name     string
	severity Severity
}

func newBase(name string, cfg config.ValidatorConfig) base {
	sev := Severity(cfg.Level)
	if sev == "" {
		sev = SeverityError
	}
	return base{name: name, severity: sev}
}

func (b base) Name() string { return b.name }

// sentenceDefect reports a problem with the whole sentence.
func (b base) sentenceDefect(s *doctree.Sentence, format string, args ...string) Defect {
	return Defect{
		Validator: b.name,
		Severity:  b.severity,
		Sentence:  s,
		Args:      args,
		Message:   message(format, args),
	}
}

// spanDefect reports a problem covering [start, end) of the sentence.
func (b base) spanDefect(s *doctree.Sentence, start, end position.LineOffset, format string, args ...string) Defect {
	d := b.sentenceDefect(s, format, args...)
	d.Start = &start
	d.End = &end
	return d
}

func message(format string, args []string) string {
	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a
	}
	return fmt.Sprintf(format, vals...)
}
