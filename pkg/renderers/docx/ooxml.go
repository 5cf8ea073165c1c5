package docx

import (
	"fmt"
	"regexp"
	"strings"
)

// escapeText encodes text for use inside an OOXML text element.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}

// textRuns renders text as run content, turning newlines into explicit line
// breaks inside the run.
func textRuns(text, runProps string) string {
	var b strings.Builder
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		b.WriteString("<w:r>")
		b.WriteString(runProps)
		if i > 0 {
			b.WriteString("<w:br/>")
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escapeText(line))
		b.WriteString("</w:t></w:r>")
	}
	return b.String()
}

// runProps builds explicit run properties. Emphasis is always pinned (bold
// on or off, no underline) so generated text never inherits emphasis from
// template styles.
func runProps(bold bool, size int) string {
	var b strings.Builder
	b.WriteString("<w:rPr>")
	if bold {
		b.WriteString("<w:b/>")
	} else {
		b.WriteString(`<w:b w:val="0"/>`)
	}
	b.WriteString(`<w:u w:val="none"/>`)
	if size > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, size, size)
	}
	b.WriteString("</w:rPr>")
	return b.String()
}

type paraOpts struct {
	style  string
	center bool
	bold   bool
	size   int
}

// paragraph builds one paragraph element.
func paragraph(text string, o paraOpts) string {
	var b strings.Builder
	b.WriteString("<w:p><w:pPr>")
	if o.style != "" {
		fmt.Fprintf(&b, `<w:pStyle w:val="%s"/>`, o.style)
	}
	if o.center {
		b.WriteString(`<w:jc w:val="center"/>`)
	}
	b.WriteString("</w:pPr>")
	b.WriteString(textRuns(text, runProps(o.bold, o.size)))
	b.WriteString("</w:p>")
	return b.String()
}

// heading builds a level-2 section heading.
func heading(text string) string {
	return paragraph(text, paraOpts{style: "Heading2", bold: true})
}

// bullet builds one bullet line, using the template's bulleted-list style
// when present and falling back to a plain marker prefix otherwise.
func bullet(text, styleID, marker string, size int) string {
	if styleID != "" {
		return paragraph(text, paraOpts{style: styleID, size: size})
	}
	return paragraph(marker+" "+text, paraOpts{size: size})
}

// tableCell builds one cell holding a single paragraph.
func tableCell(text string, bold bool, size int) string {
	var b strings.Builder
	b.WriteString(`<w:tc><w:tcPr><w:vAlign w:val="center"/></w:tcPr><w:p>`)
	b.WriteString(textRuns(text, runProps(bold, size)))
	b.WriteString("</w:p></w:tc>")
	return b.String()
}

// table builds a two-column bordered table: one bold header row followed by
// one data row per entry. Every cell is ruled on all four sides with a
// uniform thin line.
func table(headers [2]string, rows [][2]string, headerSize, bodySize int) string {
	var b strings.Builder
	b.WriteString("<w:tbl><w:tblPr>")
	b.WriteString(`<w:tblW w:w="0" w:type="auto"/><w:jc w:val="center"/>`)
	b.WriteString("<w:tblBorders>")
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(&b, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="auto"/>`, edge)
	}
	b.WriteString("</w:tblBorders></w:tblPr>")
	b.WriteString("<w:tblGrid><w:gridCol/><w:gridCol/></w:tblGrid>")

	b.WriteString("<w:tr>")
	b.WriteString(tableCell(headers[0], true, headerSize))
	b.WriteString(tableCell(headers[1], true, headerSize))
	b.WriteString("</w:tr>")

	for _, row := range rows {
		b.WriteString("<w:tr>")
		b.WriteString(tableCell(row[0], false, bodySize))
		b.WriteString(tableCell(row[1], false, bodySize))
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
	return b.String()
}

// replaceAll substitutes every occurrence of the placeholder text in the
// body, preserving the surrounding markup, and reports whether at least one
// occurrence was found. The placeholder must sit inside a single text
// element, which holds for templates authored with plain placeholder
// sentences.
func (d *document) replaceAll(placeholder, replacement string) bool {
	needle := escapeText(placeholder)
	if !strings.Contains(d.body, needle) {
		return false
	}
	d.body = strings.ReplaceAll(d.body, needle, inlineText(replacement))
	return true
}

// replaceInParagraph substitutes the token only inside the first paragraph
// whose text contains the label.
func (d *document) replaceInParagraph(label, token, replacement string) bool {
	needle := escapeText(token)
	for _, span := range d.paragraphs() {
		if !strings.Contains(d.spanText(span), label) {
			continue
		}
		segment := d.body[span.start:span.end]
		if !strings.Contains(segment, needle) {
			continue
		}
		d.body = d.body[:span.start] +
			strings.Replace(segment, needle, inlineText(replacement), 1) +
			d.body[span.end:]
		return true
	}
	return false
}

// inlineText escapes replacement text for splicing into an existing text
// element, converting newlines into in-run breaks.
func inlineText(text string) string {
	escaped := escapeText(text)
	if !strings.Contains(escaped, "\n") {
		return escaped
	}
	return strings.ReplaceAll(escaped, "\n", `</w:t><w:br/><w:t xml:space="preserve">`)
}

// Matches a run opening tag together with its property block, if any. The
// property block always directly follows the opening tag; <w:rPr does not
// match because the char after <w:r must be a space, > or /.
var runOpenPattern = regexp.MustCompile(`(<w:r(?: [^>]*)?>)(?:<w:rPr>.*?</w:rPr>)?`)

// pinBodyRuns rewrites every run's properties to the body size, non-bold, so
// substituted text never inherits emphasis from the template's styled runs.
// Call before any title styling; it levels the whole body.
func (d *document) pinBodyRuns(size int) {
	props := runProps(false, size)
	d.body = runOpenPattern.ReplaceAllString(d.body, "${1}"+props)
}

// restyleTitle rewrites the first paragraph starting with the prefix as a
// centered bold title at the given size.
func (d *document) restyleTitle(prefix string, size int) bool {
	for _, span := range d.paragraphs() {
		text := strings.TrimSpace(d.spanText(span))
		if !strings.HasPrefix(strings.ToLower(text), strings.ToLower(prefix)) {
			continue
		}
		d.body = d.body[:span.start] +
			paragraph(text, paraOpts{center: true, bold: true, size: size}) +
			d.body[span.end:]
		return true
	}
	return false
}

// append inserts built content at the end of the document body, before the
// trailing section properties.
func (d *document) append(fragment string) {
	if fragment == "" {
		return
	}
	insert := strings.LastIndex(d.body, "<w:sectPr")
	if insert < 0 {
		insert = strings.LastIndex(d.body, "</w:body>")
	}
	if insert < 0 {
		d.body += fragment
		return
	}
	d.body = d.body[:insert] + fragment + d.body[insert:]
}
