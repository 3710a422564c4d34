//go:build nopdf

package extractor

// PDFSupported reports whether this binary can read .pdf documents.
const PDFSupported = false

func openPDFDocument(path string) (pdfDocument, error) {
	return nil, ErrPDFUnavailable
}
