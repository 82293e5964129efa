package boundary

import (
	"testing"

	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/symbol"
)

func english(t *testing.T) *Detector {
	t.Helper()
	d, err := FromTable(symbol.Default("en", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func TestEndPosition_SimpleSentence(t *testing.T) {
	d := english(t)
	text := "This is a pen. That is a cat."
	if got := d.EndPosition(text, 0); got != 13 {
		t.Errorf("expected 13, got %d", got)
	}
	if got := d.EndPosition(text, 14); got != len(text)-1 {
		t.Errorf("expected %d, got %d", len(text)-1, got)
	}
}

func TestEndPosition_Abbreviation(t *testing.T) {
	d := english(t)
	text := "Dr. Smith arrived."
	if got := d.EndPosition(text, 0); got != len(text)-1 {
		t.Errorf("expected only the final period to end the sentence, got %d", got)
	}
}

func TestEndPosition_MultiPeriodAbbreviation(t *testing.T) {
	d := english(t)
	text := "He moved to the U.S.A. last year. Then he left."
	want := len("He moved to the U.S.A. last year.") - 1
	if got := d.EndPosition(text, 0); got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestEndPosition_AbbreviationNeedsWordBoundary(t *testing.T) {
	d := english(t)
	text := "I met theDr. Then I left."
	if got := d.EndPosition(text, 0); got != len("I met theDr.")-1 {
		t.Errorf("expected split after theDr., got %d", got)
	}
}

func TestEndPosition_DecimalPoint(t *testing.T) {
	d := english(t)
	text := "Pi is 3.14 roughly. Yes."
	if got := d.EndPosition(text, 0); got != len("Pi is 3.14 roughly.")-1 {
		t.Errorf("expected decimal point to be skipped, got %d", got)
	}
}

func TestEndPosition_QuotationIncluded(t *testing.T) {
	d := english(t)
	text := `He said "stop." Then he went.`
	want := len(`He said "stop."`) - 1
	if got := d.EndPosition(text, 0); got != want {
		t.Errorf("expected end on closing quote at %d, got %d", want, got)
	}
}

func TestEndPosition_RepeatedTerminals(t *testing.T) {
	d := english(t)
	text := "Really?! Yes."
	if got := d.EndPosition(text, 0); got != len("Really?!")-1 {
		t.Errorf("expected end after ?!, got %d", got)
	}
}

func TestEndPosition_NoTerminal(t *testing.T) {
	d := english(t)
	if got := d.EndPosition("no punctuation here", 0); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if got := d.EndPosition("abc.", 10); got != -1 {
		t.Errorf("expected -1 for from beyond length, got %d", got)
	}
}

func TestEndPosition_Japanese(t *testing.T) {
	d, err := FromTable(symbol.Default("ja", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := "これはペンです。あれは猫です。"
	want := len("これはペンです") // byte index of 。
	if got := d.EndPosition(text, 0); got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestEndPosition_JapaneseQuotation(t *testing.T) {
	d, err := FromTable(symbol.Default("ja", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := "彼は「行く。」と言った。"
	want := len("彼は「行く。")
	if got := d.EndPosition(text, 0); got != want {
		t.Errorf("expected end on closing bracket at %d, got %d", want, got)
	}
}

func TestNew_EmptyTerminals(t *testing.T) {
	_, err := New(nil, []rune{'"'})
	if err == nil {
		t.Fatal("expected error for empty terminal set")
	}
	if !errs.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestNew_EscapesClassCharacters(t *testing.T) {
	d, err := New([]rune{'-', ']'}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.EndPosition("a-b", 0); got != 1 {
		t.Errorf("expected dash to be a terminal at 1, got %d", got)
	}
}
