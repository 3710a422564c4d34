package extractor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePDF serves page texts from memory. errs maps page numbers to failures.
type fakePDF struct {
	pages  []string
	errs   map[int]error
	closed bool
}

func (f *fakePDF) NumPage() int { return len(f.pages) }

func (f *fakePDF) PageText(page int) (string, error) {
	if err := f.errs[page]; err != nil {
		return "", err
	}
	return f.pages[page-1], nil
}

func (f *fakePDF) Close() error {
	f.closed = true
	return nil
}

func newTestExtractor(buf *bytes.Buffer, doc pdfDocument) *FileExtractor {
	e := NewFileExtractor(zerolog.New(buf))
	if doc != nil {
		e.openPDF = func(string) (pdfDocument, error) { return doc, nil }
	}
	return e
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFileExtractor_Text(t *testing.T) {
	e := newTestExtractor(&bytes.Buffer{}, nil)

	content, err := e.Extract(context.Background(), writeFile(t, "hello.txt", []byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
}

func TestFileExtractor_TextExtensions(t *testing.T) {
	e := newTestExtractor(&bytes.Buffer{}, nil)

	for _, name := range []string{"a.md", "a.RST", "a.log", "a.csv", "a.json", "a.xml", "a.HTML", "README", ".bashrc"} {
		t.Run(name, func(t *testing.T) {
			content, err := e.Extract(context.Background(), writeFile(t, name, []byte("body\n")))
			require.NoError(t, err)
			assert.Equal(t, "body\n", content)
		})
	}
}

func TestFileExtractor_EmptyText(t *testing.T) {
	e := newTestExtractor(&bytes.Buffer{}, nil)

	_, err := e.Extract(context.Background(), writeFile(t, "empty.md", []byte(" \n\t ")))
	require.ErrorIs(t, err, ErrExtraction)
	assert.Contains(t, err.Error(), "document is empty")
}

func TestFileExtractor_InvalidUTF8(t *testing.T) {
	e := newTestExtractor(&bytes.Buffer{}, nil)

	_, err := e.Extract(context.Background(), writeFile(t, "blob.txt", []byte{0xff, 0xfe, 0x00, 0x81}))
	require.ErrorIs(t, err, ErrExtraction)
	assert.Contains(t, err.Error(), "encoding error")
}

func TestFileExtractor_NotFound(t *testing.T) {
	e := newTestExtractor(&bytes.Buffer{}, nil)

	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestFileExtractor_Directory(t *testing.T) {
	e := newTestExtractor(&bytes.Buffer{}, nil)

	_, err := e.Extract(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrNotRegularFile)
}

func TestFileExtractor_UnsupportedType(t *testing.T) {
	e := newTestExtractor(&bytes.Buffer{}, nil)

	_, err := e.Extract(context.Background(), writeFile(t, "data.xyz", []byte("abc")))
	require.ErrorIs(t, err, ErrUnsupportedType)

	var typeErr *UnsupportedTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, ".xyz", typeErr.Extension)
	for _, ext := range SupportedExtensions() {
		assert.Contains(t, err.Error(), ext)
	}
}

func TestFileExtractor_PDFSkipsEmptyPage(t *testing.T) {
	var logs bytes.Buffer
	doc := &fakePDF{pages: []string{"first page", "  \n", "third page"}}
	e := newTestExtractor(&logs, doc)

	content, err := e.Extract(context.Background(), writeFile(t, "paper.PDF", []byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.Equal(t, "first page\nthird page", content)
	assert.True(t, doc.closed)

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"level":"warn"`)
	assert.Contains(t, lines[0], "Page 2 appears to be empty")
}

func TestFileExtractor_PDFNoText(t *testing.T) {
	doc := &fakePDF{pages: []string{"", ""}}
	e := newTestExtractor(&bytes.Buffer{}, doc)

	_, err := e.Extract(context.Background(), writeFile(t, "scan.pdf", []byte("%PDF-1.4")))
	require.ErrorIs(t, err, ErrExtraction)
	assert.Contains(t, err.Error(), "no text could be extracted")
}

func TestFileExtractor_PDFPageError(t *testing.T) {
	pageErr := errors.New("bad font")
	doc := &fakePDF{pages: []string{"a", "b"}, errs: map[int]error{2: pageErr}}
	e := newTestExtractor(&bytes.Buffer{}, doc)

	_, err := e.Extract(context.Background(), writeFile(t, "broken.pdf", []byte("%PDF-1.4")))
	require.ErrorIs(t, err, ErrExtraction)
	require.ErrorIs(t, err, pageErr)
}

func TestFileExtractor_PDFOpenError(t *testing.T) {
	e := newTestExtractor(&bytes.Buffer{}, nil)
	e.openPDF = func(string) (pdfDocument, error) { return nil, ErrPDFUnavailable }

	_, err := e.Extract(context.Background(), writeFile(t, "paper.pdf", []byte("%PDF-1.4")))
	require.ErrorIs(t, err, ErrPDFUnavailable)
}

func TestFileExtractor_CancelledContext(t *testing.T) {
	e := newTestExtractor(&bytes.Buffer{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Extract(ctx, writeFile(t, "hello.txt", []byte("hello")))
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"paper.pdf":         ".pdf",
		"dir.d/Notes.TXT":   ".txt",
		"archive.tar.gz":    ".gz",
		"Makefile":          "",
		".bashrc":           "",
		"/tmp/.config.json": ".json",
	}
	for path, want := range tests {
		assert.Equal(t, want, extension(path), path)
	}
}
