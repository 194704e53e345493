package parser

import (
	"errors"
	"log/slog"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

// Extraction modes.
const (
	// ModeLight omits properties and custom outlines.
	ModeLight = "light"
	// ModeStandard applies the classifier.
	ModeStandard = "standard"
	// ModeVerbose keeps every shape.
	ModeVerbose = "verbose"
)

// Config configures ExtractPages.
type Config struct {
	Mode   string
	Rules  ClassifierRules
	Strict bool
	Logger *slog.Logger
}

// SkippedPage is a page part that could not be parsed.
type SkippedPage struct {
	PageIndex int
	Part      string
	Err       error
}

// Result is the outcome of extracting every page of a container.
type Result struct {
	Pages    []models.PageRecord
	Skipped  []SkippedPage
	Warnings []Warning
}

// session holds the state of one extraction call.
type session struct {
	cfg        Config
	logger     *slog.Logger
	texts      TextIndex
	masters    *MasterResolver
	classifier *Classifier
	pages      map[string]PageInfo
	warnings   []Warning
}

func (s *session) warn(w Warning) {
	s.warnings = append(s.warnings, w)
	s.logger.Warn("missing data", "page", w.PageIndex, "shape", w.ShapeID, "field", w.Field, "detail", w.Detail)
}

type loadedPage struct {
	index int
	part  string
	doc   *etree.Document
}

// ExtractPages extracts the page records of a. Pages with malformed XML are
// skipped and reported unless cfg.Strict is set, in which case the first one
// aborts the extraction with its *PartError.
func ExtractPages(a *Archive, cfg Config) (*Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeStandard
	}

	pageIndex, err := readPageIndex(a)
	if err != nil {
		if cfg.Strict {
			return nil, err
		}
		logger.Warn("page index unreadable", "error", err)
	}
	masterIndex, err := readMasterIndex(a)
	if err != nil {
		if cfg.Strict {
			return nil, err
		}
		logger.Warn("master index unreadable", "error", err)
	}

	result := &Result{Pages: []models.PageRecord{}}

	var loaded []loadedPage
	for i, part := range a.PageParts() {
		index := i + 1
		doc, err := a.Document(part)
		if err != nil {
			var pe *PartError
			if cfg.Strict || !errors.As(err, &pe) {
				return nil, err
			}
			logger.Warn("page skipped", "page", index, "part", part, "error", err)
			result.Skipped = append(result.Skipped, SkippedPage{PageIndex: index, Part: part, Err: err})
			continue
		}
		loaded = append(loaded, loadedPage{index: index, part: part, doc: doc})
	}

	docs := make([]*etree.Document, len(loaded))
	for i, p := range loaded {
		docs[i] = p.doc
	}

	s := &session{
		cfg:        cfg,
		logger:     logger,
		texts:      BuildTextIndex(docs),
		masters:    NewMasterResolver(a, masterIndex, logger),
		classifier: NewClassifier(cfg.Rules),
		pages:      pageIndex,
	}

	for _, p := range loaded {
		if page := s.assemblePage(p.index, p.part, p.doc); page != nil {
			result.Pages = append(result.Pages, *page)
		}
	}
	result.Warnings = s.warnings

	logger.Debug("extraction finished",
		"pages", len(result.Pages), "skipped", len(result.Skipped), "warnings", len(result.Warnings))
	return result, nil
}
