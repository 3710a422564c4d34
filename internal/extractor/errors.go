package extractor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrNotRegularFile  = errors.New("not a file")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrExtraction      = errors.New("extraction failed")
	// ErrPDFUnavailable is returned for .pdf documents when the binary was
	// built with the nopdf tag.
	ErrPDFUnavailable = errors.New("PDF support not available (rebuild without the nopdf build tag)")
)

// UnsupportedTypeError names the rejected extension and the accepted ones.
type UnsupportedTypeError struct {
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: %s. Supported types: %s",
		ErrUnsupportedType, e.Extension, strings.Join(SupportedExtensions(), ", "))
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
