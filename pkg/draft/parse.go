package draft

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
)

// sanitizer strips any markup the drafting model leaks into narrative text.
var sanitizer = bluemonday.StrictPolicy()

// Parse decodes and validates a raw drafting response for the category.
// Narrative values arriving as sequences are joined line-wise before
// validation, matching how the service occasionally shapes prose. Any shape
// drift yields ErrSchemaMismatch.
func Parse(cat category.Category, raw string) (ContentDraft, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return ContentDraft{}, fmt.Errorf("%w: not a JSON object: %v", ErrSchemaMismatch, err)
	}

	for _, key := range cat.Narrative {
		if value, ok := payload[key]; ok {
			payload[key] = coerceText(value)
		}
	}

	if err := validate(cat, payload); err != nil {
		return ContentDraft{}, err
	}

	out := ContentDraft{Narrative: make(map[string]string, len(cat.Narrative))}
	for _, key := range cat.Narrative {
		text, _ := payload[key].(string)
		out.Narrative[key] = sanitizeText(text)
	}

	for _, key := range cat.Tables {
		rows, err := extractTable(payload[key])
		if err != nil {
			return ContentDraft{}, fmt.Errorf("%w: field %q: %v", ErrSchemaMismatch, key, err)
		}
		if rows != nil {
			if out.Tables == nil {
				out.Tables = make(map[string][]TableRow, len(cat.Tables))
			}
			out.Tables[key] = rows
		}
	}

	for _, key := range cat.Lists {
		items, ok := payload[key].([]any)
		if !ok || len(items) == 0 {
			continue
		}
		if out.Lists == nil {
			out.Lists = make(map[string][]any, len(cat.Lists))
		}
		out.Lists[key] = items
	}

	return out, nil
}

// extractTable converts a tabular field into ordered rows. Each entry must be
// an object exposing the parameter and requirement keys; lookup is
// case-insensitive.
func extractTable(value any) ([]TableRow, error) {
	if value == nil {
		return nil, nil
	}
	entries, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence, got %T", value)
	}

	rows := make([]TableRow, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("entry %d: expected an object, got %T", i, entry)
		}
		parameter, okP := lookupFold(obj, "parameter")
		requirement, okR := lookupFold(obj, "requirement")
		if !okP || !okR {
			return nil, fmt.Errorf("entry %d: missing parameter or requirement key", i)
		}
		rows = append(rows, TableRow{
			Parameter:   sanitizeText(coerceText(parameter)),
			Requirement: sanitizeText(coerceText(requirement)),
		})
	}
	return rows, nil
}

func lookupFold(obj map[string]any, key string) (any, bool) {
	for k, v := range obj {
		if strings.EqualFold(strings.TrimSpace(k), key) {
			return v, true
		}
	}
	return nil, false
}

// coerceText renders a narrative value to plain text: sequences become
// newline-joined lines, scalars are stringified.
func coerceText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			lines = append(lines, coerceText(item))
		}
		return strings.Join(lines, "\n")
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func sanitizeText(text string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(text)))
}
