package extractor

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// readText returns the whole file as a string. The file must be valid UTF-8
// and hold something other than whitespace.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read file: %w", ErrExtraction, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not a valid text file (encoding error, detected %s)",
			ErrExtraction, mimetype.Detect(data).String())
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: document is empty", ErrExtraction)
	}
	return content, nil
}
