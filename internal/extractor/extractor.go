package extractor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Extractor defines the interface for turning a document into plain text.
type Extractor interface {
	// Extract returns the UTF-8 text content of the document at path.
	Extract(ctx context.Context, path string) (content string, err error)
}

// textExtensions lists the extensions read verbatim as UTF-8. The empty
// string stands for files without an extension.
var textExtensions = []string{".txt", ".md", ".rst", ".log", ".csv", ".json", ".xml", ".html", ""}

// SupportedExtensions returns the extensions FileExtractor accepts, in the
// order they are reported to the user.
func SupportedExtensions() []string {
	exts := []string{".pdf"}
	for _, ext := range textExtensions {
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// FileExtractor reads documents from the local filesystem.
type FileExtractor struct {
	log     zerolog.Logger
	openPDF func(path string) (pdfDocument, error)
}

// NewFileExtractor creates an extractor that reports warnings to log.
func NewFileExtractor(log zerolog.Logger) *FileExtractor {
	return &FileExtractor{
		log:     log.With().Str("component", "extractor").Logger(),
		openPDF: openPDFDocument,
	}
}

// Extract implements Extractor.
func (e *FileExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: cannot stat %s: %w", ErrExtraction, path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	ext := extension(path)
	switch {
	case ext == ".pdf":
		return e.extractPDF(path)
	case isTextExtension(ext):
		return readText(path)
	default:
		return "", &UnsupportedTypeError{Extension: ext}
	}
}

func isTextExtension(ext string) bool {
	for _, candidate := range textExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// extension returns the lowercased final suffix of the base name. A name
// whose only dot is the leading one (".bashrc") has no extension.
func extension(path string) string {
	name := strings.TrimPrefix(filepath.Base(path), ".")
	return strings.ToLower(filepath.Ext(name))
}
