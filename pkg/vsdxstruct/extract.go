package vsdxstruct

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/parser"
)

// Result is the outcome of a successful extraction. A document with no
// retained pages is a valid, empty result.
type Result struct {
	// Document is the extracted model.
	Document models.Document
	// Skipped lists pages that could not be parsed (lenient mode only).
	Skipped []*ExtractionError
	// Warnings lists data gaps filled with sentinels or dropped.
	Warnings []MissingDataWarning
}

// Extract extracts the diagram model of the VSDX file at path.
func Extract(path string, opts Options) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	a, err := parser.OpenArchive(path)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	defer a.Close()

	res, err := parser.ExtractPages(a, opts.parserConfig())
	if err != nil {
		var pe *parser.PartError
		if errors.As(err, &pe) {
			return nil, &FormatError{Path: path, Part: pe.Part, Err: pe.Err}
		}
		return nil, &FormatError{Path: path, Err: err}
	}

	out := &Result{
		Document: models.Document{
			Source: filepath.Base(path),
			Pages:  res.Pages,
		},
		Warnings: res.Warnings,
	}
	for _, sp := range res.Skipped {
		out.Skipped = append(out.Skipped, NewExtractionError(sp.PageIndex, sp.Part, "page", sp.Err))
	}
	return out, nil
}
