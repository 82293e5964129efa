package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/position"
)

// CSVParser handles CSV files. Every non-empty cell is checked as its own
// paragraph, positioned where the cell starts in the source.
type CSVParser struct {
	common
}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	lines := bytes.Split(src, []byte("\n"))

	reader := csv.NewReader(bytes.NewReader(src))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	b := doctree.NewBuilder(filename, p.tok)
	var cell posText
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		for i, value := range record {
			line, col := reader.FieldPos(i)
			appendCell(&cell, value, cellStart(lines, line, col))
			if err := p.addParagraph(b, &cell); err != nil {
				return nil, err
			}
			cell.reset()
		}
	}
	return b.Build(), nil
}

// cellStart converts the 1-based line and byte column reported by the csv
// reader into the position of the cell's first character.
func cellStart(lines [][]byte, line, col int) position.LineOffset {
	if line < 1 || line > len(lines) {
		return position.New(line, 0)
	}
	raw := lines[line-1]
	byteCol := min(max(col-1, 0), len(raw))
	at := position.New(line, utf8.RuneCount(raw[:byteCol]))
	if byteCol < len(raw) && raw[byteCol] == '"' {
		at.Offset++
	}
	return at
}

// appendCell adds a cell value starting at start. Quotes inside a quoted
// cell are doubled in the source, and embedded newlines move to the next
// line.
func appendCell(t *posText, value string, start position.LineOffset) {
	at := start
	for _, r := range value {
		if r == '\n' {
			t.appendRune('\n', at)
			at = position.New(at.Line+1, 0)
			continue
		}
		t.appendRune(r, at)
		at.Offset++
		if r == '"' {
			at.Offset++
		}
	}
}
