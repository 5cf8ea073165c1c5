package testsupport

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docxStylesPlain = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`

const docxStylesBulleted = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/></w:style>
</w:styles>`

// TemplateOption adjusts a generated template fixture.
type TemplateOption func(*templateFixture)

type templateFixture struct {
	paragraphs  []string
	runProps    string
	bulletStyle bool
}

// WithParagraphs sets the template body paragraphs (one text element each).
func WithParagraphs(paragraphs ...string) TemplateOption {
	return func(f *templateFixture) {
		f.paragraphs = paragraphs
	}
}

// WithRunProperties wraps every paragraph run in the given raw property
// block, e.g. `<w:b/><w:sz w:val="28"/>` for bold 14pt template text.
func WithRunProperties(props string) TemplateOption {
	return func(f *templateFixture) {
		f.runProps = props
	}
}

// WithBulletStyle gives the template a bulleted-list style.
func WithBulletStyle() TemplateOption {
	return func(f *templateFixture) {
		f.bulletStyle = true
	}
}

// WriteTemplate creates a minimal .docx template fixture and returns its
// path.
func WriteTemplate(t *testing.T, options ...TemplateOption) string {
	t.Helper()

	fixture := &templateFixture{}
	for _, opt := range options {
		opt(fixture)
	}

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, text := range fixture.paragraphs {
		body.WriteString(`<w:p><w:r>`)
		if fixture.runProps != "" {
			body.WriteString(`<w:rPr>` + fixture.runProps + `</w:rPr>`)
		}
		body.WriteString(`<w:t xml:space="preserve">`)
		xml.EscapeText(&body, []byte(text))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`<w:sectPr/></w:body></w:document>`)

	styles := docxStylesPlain
	if fixture.bulletStyle {
		styles = docxStylesBulleted
	}

	path := filepath.Join(t.TempDir(), "template.docx")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	w := zip.NewWriter(out)
	entries := map[string]string{
		"[Content_Types].xml": docxContentTypes,
		"_rels/.rels":         docxRels,
		"word/document.xml":   body.String(),
		"word/styles.xml":     styles,
	}
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml"} {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(entries[name])); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close template: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close template file: %v", err)
	}
	return path
}

// DocumentParagraphs opens a rendered .docx and returns the visible text of
// each paragraph, in order, skipping empty ones.
func DocumentParagraphs(t *testing.T, path string) []string {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open document: %v", err)
	}
	defer r.Close()

	var doc *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		t.Fatalf("word/document.xml not found in %s", path)
	}

	rc, err := doc.Open()
	if err != nil {
		t.Fatalf("open document.xml: %v", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var paragraphs []string
	var current strings.Builder
	var inParagraph bool
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "br":
				if inParagraph {
					current.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inParagraph {
				current.Write(el)
			}
		case xml.EndElement:
			if el.Name.Local == "p" && inParagraph {
				inParagraph = false
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		}
	}
	return paragraphs
}

// DocumentXML returns the raw document.xml of a rendered .docx for structural
// assertions (styles, tables, borders).
func DocumentXML(t *testing.T, path string) string {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open document: %v", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		return string(data)
	}
	t.Fatalf("word/document.xml not found in %s", path)
	return ""
}
