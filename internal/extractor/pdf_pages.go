package extractor

import (
	"fmt"
	"strings"
)

// pdfDocument is the subset of a parsed PDF the extractor needs. Pages are
// numbered from 1.
type pdfDocument interface {
	NumPage() int
	PageText(page int) (string, error)
	Close() error
}

func (e *FileExtractor) extractPDF(path string) (content string, err error) {
	doc, err := e.openPDF(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			content = ""
			err = fmt.Errorf("%w: failed to extract PDF content: %v", ErrExtraction, r)
		}
	}()

	var pages []string
	for i := 1; i <= doc.NumPage(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return "", fmt.Errorf("%w: failed to extract PDF content from page %d: %w", ErrExtraction, i, err)
		}
		if strings.TrimSpace(text) == "" {
			e.log.Warn().Int("page", i).Str("path", path).Msgf("Page %d appears to be empty", i)
			continue
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("%w: no text could be extracted from PDF", ErrExtraction)
	}
	return strings.Join(pages, "\n"), nil
}
