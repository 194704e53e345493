package vsdxstruct

import (
	"archive/zip"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const testPage = `<?xml version="1.0" encoding="utf-8"?>
<PageContents xmlns="http://schemas.microsoft.com/office/visio/2012/main">
  <Shapes>
    <Shape ID="1" NameU="Relay"><Cell N="PinX" V="1"/><Cell N="PinY" V="1"/><Text>K1</Text></Shape>
    <Shape ID="2"><Cell N="PinX" V="3"/><Cell N="PinY" V="1"/><Text>K2</Text></Shape>
  </Shapes>
  <Connects><Connect FromSheet="1" ToSheet="2"/></Connects>
</PageContents>`

func writeTestVSDX(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawing.vsdx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietOptions() Options {
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

func TestExtract(t *testing.T) {
	path := writeTestVSDX(t, map[string]string{"visio/pages/page1.xml": testPage})

	res, err := Extract(path, quietOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if res.Document.Source != "drawing.vsdx" {
		t.Errorf("Source = %q", res.Document.Source)
	}
	if len(res.Document.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(res.Document.Pages))
	}
	shapes := res.Document.Pages[0].Shapes
	if len(shapes) != 2 || shapes[0].Name != "K1" {
		t.Fatalf("unexpected shapes: %+v", shapes)
	}
	if len(shapes[0].Connections) != 1 || shapes[0].Connections[0].ToShape != "2" {
		t.Errorf("connections = %+v", shapes[0].Connections)
	}
}

func TestExtractNotFound(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.vsdx"), quietOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected *NotFoundError, got %T", err)
	}
}

func TestExtractInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.vsdx")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Extract(path, quietOptions())
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Part != "" {
		t.Errorf("expected archive-level *FormatError, got %v", err)
	}
}

func TestExtractMalformedPage(t *testing.T) {
	path := writeTestVSDX(t, map[string]string{
		"visio/pages/page1.xml": testPage,
		"visio/pages/page2.xml": `<PageContents><Shapes><Shape ID=1/></Shapes></PageContents>`,
	})

	res, err := Extract(path, quietOptions())
	if err != nil {
		t.Fatalf("lenient Extract failed: %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Part != "visio/pages/page2.xml" || res.Skipped[0].Component != "page" {
		t.Errorf("skipped = %+v", res.Skipped)
	}

	opts := quietOptions()
	opts.Strict = true
	_, err = Extract(path, opts)
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Part != "visio/pages/page2.xml" {
		t.Errorf("expected *FormatError for page2, got %v", err)
	}
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	path := writeTestVSDX(t, map[string]string{"visio/document.xml": `<VisioDocument/>`})

	res, err := Extract(path, quietOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(res.Document.Pages) != 0 {
		t.Errorf("expected no pages, got %d", len(res.Document.Pages))
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		ok       bool
	}{
		{"light", ModeLight, true},
		{"standard", ModeStandard, true},
		{"verbose", ModeVerbose, true},
		{"full", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		mode, ok := ParseMode(tt.input)
		if mode != tt.expected || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %q, %v, expected %q, %v", tt.input, mode, ok, tt.expected, tt.ok)
		}
	}
}
