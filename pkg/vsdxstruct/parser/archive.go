package parser

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"

	"github.com/beevik/etree"
)

var (
	pagePartPattern   = regexp.MustCompile(`^visio/pages/page\d+\.xml$`)
	masterPartPattern = regexp.MustCompile(`^visio/masters/master\d+\.xml$`)
)

// Archive is a read-only view of a VSDX container.
type Archive struct {
	zr     *zip.Reader
	closer io.Closer
	files  map[string]*zip.File
}

// OpenArchive opens the container at path.
func OpenArchive(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}
	a := newArchive(&rc.Reader)
	a.closer = rc
	return a, nil
}

// NewArchive reads a container from r, whose total length is size.
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}
	return newArchive(zr), nil
}

func newArchive(zr *zip.Reader) *Archive {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	return &Archive{zr: zr, files: files}
}

// Close releases the underlying file, if any.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// PageParts returns the page part names in container order.
func (a *Archive) PageParts() []string {
	return a.match(pagePartPattern)
}

// MasterParts returns the master part names in container order.
func (a *Archive) MasterParts() []string {
	return a.match(masterPartPattern)
}

func (a *Archive) match(re *regexp.Regexp) []string {
	var names []string
	for _, f := range a.zr.File {
		if re.MatchString(f.Name) {
			names = append(names, f.Name)
		}
	}
	return names
}

// Has reports whether the container holds a member called name.
func (a *Archive) Has(name string) bool {
	_, ok := a.files[name]
	return ok
}

// ReadPart returns the raw bytes of a member.
func (a *Archive) ReadPart(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, &PartError{Part: name, Err: ErrPartNotFound}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, &PartError{Part: name, Err: err}
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &PartError{Part: name, Err: err}
	}
	return data, nil
}

// Document parses a member as XML.
func (a *Archive) Document(name string) (*etree.Document, error) {
	data, err := a.ReadPart(name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &PartError{Part: name, Err: err}
	}
	if doc.Root() == nil {
		return nil, &PartError{Part: name, Err: fmt.Errorf("no root element")}
	}
	return doc, nil
}
