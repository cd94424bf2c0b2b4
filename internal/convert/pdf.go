// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFConverter extracts the text layer of a PDF in-process.
type PDFConverter struct{}

// Convert implements Converter.
func (PDFConverter) Convert(pdfPath string) (res Result, err error) {
	// The pdf reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing PDF %s: %v", pdfPath, r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	text, err := r.GetPlainText()
	if err != nil {
		return Result{}, fmt.Errorf("extracting text from %s: %w", pdfPath, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(text); err != nil {
		return Result{}, fmt.Errorf("reading text of %s: %w", pdfPath, err)
	}
	if buf.Len() == 0 {
		return Result{}, fmt.Errorf("no text layer in %s", pdfPath)
	}
	return Result{Text: buf.String(), Pages: r.NumPage()}, nil
}
