package vsdxstruct

import (
	"errors"
	"fmt"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a readable vsdx container.
var ErrInvalidFormat = errors.New("invalid vsdx format")

// NotFoundError reports a missing input path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", ErrFileNotFound, e.Path)
}

// Is reports whether target is ErrFileNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// FormatError reports a container that is not a zip archive, or a member
// holding malformed XML. Part is empty for archive-level failures.
type FormatError struct {
	Path string
	Part string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("%v: %s: %v", ErrInvalidFormat, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %s (%s): %v", ErrInvalidFormat, e.Path, e.Part, e.Err)
}

// Is reports whether target is ErrInvalidFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ExtractionError represents a page skipped during extraction.
type ExtractionError struct {
	PageIndex int
	Part      string
	Component string // "page"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in page %d %q (%s): %v", e.PageIndex, e.Part, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(pageIndex int, part, component string, err error) *ExtractionError {
	return &ExtractionError{
		PageIndex: pageIndex,
		Part:      part,
		Component: component,
		Err:       err,
	}
}

// MissingDataWarning records geometry, a master or an edge endpoint absent
// from the document. It is never returned as an error.
type MissingDataWarning = parser.Warning
