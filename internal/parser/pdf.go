package parser

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dgallion1/docproof/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// pageBreak separates extracted pages. A form feed on its own line is a
// blank line, so pages never share a paragraph.
const pageBreak = "\n\f\n"

// PDFParser handles PDF files. The extracted text runs through the
// plain-text pipeline, so positions refer to lines of the extracted text.
type PDFParser struct {
	common
	// FallbackPdftotext retries with the pdftotext binary when the
	// library cannot read the file.
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	text, err := pdfText(data)
	if err != nil && p.FallbackPdftotext {
		text, err = pdftotext(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	plain := &TextParser{common: p.common}
	return plain.parseLines(strings.NewReader(text), filename, nil)
}

// pdfText joins the plain text of every readable page. Pages the library
// cannot decode are skipped.
func pdfText(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, pageBreak), nil
}

func pdftotext(data []byte) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", "-", "-")
	cmd.Stdin = bytes.NewReader(data)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return strings.ReplaceAll(string(out), "\f", pageBreak), nil
}
