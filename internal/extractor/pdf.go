//go:build !nopdf

package extractor

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// PDFSupported reports whether this binary can read .pdf documents.
const PDFSupported = true

type ledongthucDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func openPDFDocument(path string) (doc pdfDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: failed to open PDF: %v", ErrExtraction, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("%w: failed to open PDF: %w", ErrExtraction, err)
	}
	return &ledongthucDocument{file: f, reader: r}, nil
}

func (d *ledongthucDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d *ledongthucDocument) PageText(page int) (string, error) {
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func (d *ledongthucDocument) Close() error {
	return d.file.Close()
}
