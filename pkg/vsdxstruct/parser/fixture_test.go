package parser

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
)

const nsVisio = "http://schemas.microsoft.com/office/visio/2012/main"

type part struct {
	name    string
	content string
}

// writeVSDX writes parts, in order, to a zip file in a temp dir.
func writeVSDX(t *testing.T, parts ...part) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vsdx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			t.Fatalf("Failed to write %s: %v", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return path
}

func openFixture(t *testing.T, parts ...part) *Archive {
	t.Helper()
	a, err := OpenArchive(writeVSDX(t, parts...))
	if err != nil {
		t.Fatalf("OpenArchive failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func pageXML(shapes, connects string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<PageContents xmlns="%s"><Shapes>%s</Shapes><Connects>%s</Connects></PageContents>`, nsVisio, shapes, connects)
}

func masterXML(shapes string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<MasterContents xmlns="%s"><Shapes>%s</Shapes></MasterContents>`, nsVisio, shapes)
}

// parseShape parses a single Shape element.
func parseShape(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("Failed to parse shape: %v", err)
	}
	return doc.Root()
}

func testConfig() Config {
	return Config{Mode: ModeStandard, Rules: DefaultClassifierRules()}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// malformedXML fails tokenization (unquoted attribute value).
const malformedXML = `<PageContents><Shapes><Shape ID=1/></Shapes></PageContents>`
