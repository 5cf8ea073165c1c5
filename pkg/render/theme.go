package render

import (
	"strconv"

	theme "github.com/goliatone/go-theme"
)

// Style token keys renderers read from a theme manifest. Font sizes are in
// half-points, matching the units the document format uses.
const (
	TokenFontBody        = "font.body"
	TokenFontTitle       = "font.title"
	TokenFontTableHeader = "font.table.header"
	TokenBulletMarker    = "bullet.marker"
)

// DefaultTheme returns the stock document styling: 11pt body, 16pt title,
// 12pt table headers, and the plain bullet marker used when a template lacks
// a bulleted-list style.
func DefaultTheme() *theme.Manifest {
	return &theme.Manifest{
		Name:    "resl-procurement",
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenFontBody:        "22",
			TokenFontTitle:       "32",
			TokenFontTableHeader: "24",
			TokenBulletMarker:    "•",
		},
	}
}

// Token resolves a string token with a fallback.
func Token(m *theme.Manifest, key, fallback string) string {
	if m == nil {
		return fallback
	}
	if value, ok := m.Tokens[key]; ok && value != "" {
		return value
	}
	return fallback
}

// TokenInt resolves an integer token with a fallback.
func TokenInt(m *theme.Manifest, key string, fallback int) int {
	raw := Token(m, key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
