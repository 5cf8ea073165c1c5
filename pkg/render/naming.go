package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
)

// SanitizeName replaces every character outside [A-Za-z0-9_] with an
// underscore, collapsing runs into a single one. The result is stable across
// runs so document paths support overwrite-in-place regeneration.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

// OutputPath derives the document path for a record and category:
// (output dir)/(sanitized name)/(subfolder)/(prefix)_(zero-padded id)_(sanitized name).docx
// The derivation is pure: identical inputs always yield the identical path.
func OutputPath(outputDir string, cat category.Category, rec record.SourceRecord) string {
	name := SanitizeName(rec.Name)
	file := fmt.Sprintf("%s_%02d_%s.docx", cat.Prefix, rec.ID, name)
	return filepath.Join(outputDir, name, cat.Subfolder, file)
}
