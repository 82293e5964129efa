package parser

import (
	"reflect"
	"testing"

	"github.com/dgallion1/docproof/internal/position"
)

func TestCSVParser_CellPositions(t *testing.T) {
	input := "name,comment\nalice,\"Looks good. Ship it.\"\nbob, \"Say \"\"hi\"\".\"\n"
	doc := parse(t, "data.csv", input, Options{})
	checkOffsets(t, doc)

	got := contents(doc)
	want := []string{"name", "comment", "alice", "Looks good.", "Ship it.", "bob", `Say "hi".`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}

	sents := doc.Sentences()
	if sents[1].OffsetAt(0) != position.New(1, 5) {
		t.Errorf("expected comment header at 1:5, got %v", sents[1].OffsetAt(0))
	}
	if sents[3].OffsetAt(0) != position.New(2, 7) {
		t.Errorf("expected quoted cell at 2:7, got %v", sents[3].OffsetAt(0))
	}
	if sents[4].OffsetAt(0) != position.New(2, 19) {
		t.Errorf("expected second sentence of the cell at 2:19, got %v", sents[4].OffsetAt(0))
	}
	// `bob, "Say ""hi"".` : the doubled quote shifts the following columns.
	if sents[6].OffsetAt(5) != position.New(3, 12) {
		t.Errorf("expected h after the doubled quote at 3:12, got %v", sents[6].OffsetAt(5))
	}
}

func TestCSVParser_EmptyCells(t *testing.T) {
	doc := parse(t, "data.csv", "a,,b\n", Options{})
	if got := contents(doc); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected empty cells to be skipped, got %q", got)
	}
	if n := len(doc.Sections()[0].Paragraphs()); n != 2 {
		t.Errorf("expected one paragraph per non-empty cell, got %d", n)
	}
}
