package parser

import (
	"errors"
	"fmt"
)

// ErrPartNotFound indicates a requested member is absent from the container.
var ErrPartNotFound = errors.New("part not found")

// PartError reports a container member that could not be read or parsed.
type PartError struct {
	Part string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("part %q: %v", e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

// Warning records data missing from the document. Warnings are never fatal:
// the gap is filled with the unknown sentinel or the item is dropped.
type Warning struct {
	PageIndex int
	ShapeID   string
	Field     string // "geometry", "master", "edge", "id"
	Detail    string
}

func (w Warning) Error() string {
	if w.ShapeID == "" {
		return fmt.Sprintf("page %d: missing %s: %s", w.PageIndex, w.Field, w.Detail)
	}
	return fmt.Sprintf("page %d shape %s: missing %s: %s", w.PageIndex, w.ShapeID, w.Field, w.Detail)
}
