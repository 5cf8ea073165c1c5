// Package docx renders drafted content into Word documents by rewriting the
// OOXML inside the template archive directly: the template's zip entries are
// kept verbatim except word/document.xml, which is edited as XML text. The
// format is handled with archive/zip and hand-built OOXML fragments; no
// document library is involved.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const documentPart = "word/document.xml"

// Template is a parsed document template, loaded once and instantiated per
// record. The bulleted-list capability is probed here, once per template,
// never per bullet.
type Template struct {
	parts map[string][]byte
	order []string
	body  string

	// bulletStyle is the style id of the template's bulleted-list style,
	// or "" when the template has none and the plain-marker fallback
	// applies.
	bulletStyle string
}

// Style ids accepted as a bulleted-list capability.
var bulletStyleIDs = []string{"ListBullet", "ListParagraph"}

// OpenTemplate reads a .docx template from disk.
func OpenTemplate(path string) (*Template, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("docx: open template %s: %w", path, err)
	}
	defer r.Close()

	t := &Template{parts: make(map[string][]byte, len(r.File))}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("docx: open entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("docx: read entry %s: %w", f.Name, err)
		}
		t.parts[f.Name] = data
		t.order = append(t.order, f.Name)
	}

	body, ok := t.parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("docx: %s not found in %s", documentPart, path)
	}
	t.body = string(body)
	t.bulletStyle = probeBulletStyle(t.parts["word/styles.xml"])
	return t, nil
}

func probeBulletStyle(styles []byte) string {
	if len(styles) == 0 {
		return ""
	}
	text := string(styles)
	for _, id := range bulletStyleIDs {
		if strings.Contains(text, `w:styleId="`+id+`"`) {
			return id
		}
	}
	return ""
}

// HasBulletStyle reports whether the template carries a bulleted-list style.
func (t *Template) HasBulletStyle() bool {
	return t.bulletStyle != ""
}

// instance returns a mutable working copy of the template body.
func (t *Template) instance() *document {
	return &document{tpl: t, body: t.body}
}

// document is one in-flight render over a template instance.
type document struct {
	tpl  *Template
	body string
}

// paragraphSpan locates raw paragraph elements so text lookups and
// replacements can be scoped to a single paragraph.
type paragraphSpan struct {
	start, end int
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// paragraphs iterates the body's top-level paragraph spans in order.
func (d *document) paragraphs() []paragraphSpan {
	var spans []paragraphSpan
	offset := 0
	for {
		rel := indexParagraphStart(d.body[offset:])
		if rel < 0 {
			return spans
		}
		start := offset + rel
		endRel := strings.Index(d.body[start:], "</w:p>")
		if endRel < 0 {
			return spans
		}
		end := start + endRel + len("</w:p>")
		spans = append(spans, paragraphSpan{start: start, end: end})
		offset = end
	}
}

func indexParagraphStart(s string) int {
	for offset := 0; ; {
		i := strings.Index(s[offset:], "<w:p")
		if i < 0 {
			return -1
		}
		i += offset
		// Reject <w:pPr>, <w:pStyle> and friends.
		rest := s[i+len("<w:p"):]
		if len(rest) > 0 && (rest[0] == ' ' || rest[0] == '>' || rest[0] == '/') {
			return i
		}
		offset = i + len("<w:p")
	}
}

// spanText strips markup from a paragraph span, yielding its visible text.
func (d *document) spanText(span paragraphSpan) string {
	return tagPattern.ReplaceAllString(d.body[span.start:span.end], "")
}

// save writes the rendered document, copying every template entry verbatim
// except the rewritten document part.
func (d *document) save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("docx: mkdir %s: %w", filepath.Dir(path), err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("docx: create %s: %w", path, err)
	}

	w := zip.NewWriter(out)
	for _, name := range d.tpl.order {
		entry, err := w.Create(name)
		if err != nil {
			out.Close()
			return fmt.Errorf("docx: write entry %s: %w", name, err)
		}
		data := d.tpl.parts[name]
		if name == documentPart {
			data = []byte(d.body)
		}
		if _, err := entry.Write(data); err != nil {
			out.Close()
			return fmt.Errorf("docx: write entry %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		out.Close()
		return fmt.Errorf("docx: finalize %s: %w", path, err)
	}
	return out.Close()
}
