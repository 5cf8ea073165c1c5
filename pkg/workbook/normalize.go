package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
)

// Column names canonicalized to the identity and name keys.
const (
	columnID   = "cid"
	columnName = "item"
)

// CanonicalColumn maps a raw header cell onto its canonical column name.
// Matching is case-insensitive and substring-tolerant; the empty string means
// the column is not recognized and its values are dropped.
func CanonicalColumn(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case c == "cid" || c == "id":
		return columnID
	case c == "item" || c == "equipment" || c == "equipment name":
		return columnName
	case strings.Contains(c, "description"):
		return record.FieldDescription
	case strings.Contains(c, "impact"):
		return record.FieldImpact
	case strings.Contains(c, "ref") || strings.Contains(c, "nc"):
		return record.FieldRefNo
	case strings.Contains(c, "proposed on") || strings.Contains(c, "date"):
		return record.FieldProposedOn
	case strings.Contains(c, "proposed by"):
		return record.FieldProposedBy
	case strings.Contains(c, "organization"):
		return record.FieldOrgDetails
	case strings.Contains(c, "priority"):
		return record.FieldPriority
	case strings.Contains(c, "assignee"):
		return record.FieldAssignee
	default:
		return ""
	}
}

// headerRow returns the index of the first row whose cells canonicalize to
// both the identity and name columns, or -1. Leading blank or metadata rows
// are skipped by construction.
func headerRow(rows [][]string) int {
	for i, row := range rows {
		var hasID, hasName bool
		for _, cell := range row {
			switch CanonicalColumn(cell) {
			case columnID:
				hasID = true
			case columnName:
				hasName = true
			}
		}
		if hasID && hasName {
			return i
		}
	}
	return -1
}

// Normalize converts raw sheet rows into canonical records. It locates the
// header row, canonicalizes column names, coerces the identity column to an
// integer, and discards rows missing identity or name. Row order is
// preserved.
func Normalize(rows [][]string) ([]record.SourceRecord, error) {
	hdr := headerRow(rows)
	if hdr < 0 {
		return nil, fmt.Errorf("%w: no header row with identity and name tokens", ErrMissingColumns)
	}

	columns := make([]string, len(rows[hdr]))
	for i, cell := range rows[hdr] {
		columns[i] = CanonicalColumn(cell)
	}

	var records []record.SourceRecord
	for _, row := range rows[hdr+1:] {
		rec := record.SourceRecord{ID: -1}
		for i, cell := range row {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			switch columns[i] {
			case columnID:
				if id, ok := coerceID(value); ok {
					rec.ID = id
				}
			case columnName:
				rec.Name = value
			default:
				if rec.Fields == nil {
					rec.Fields = make(map[string]string)
				}
				rec.Fields[columns[i]] = value
			}
		}
		if rec.ID < 0 || rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// coerceID parses an identity cell. Spreadsheets occasionally surface integer
// ids as floats ("7.0"), so a whole-valued float is accepted too.
func coerceID(value string) (int, bool) {
	if id, err := strconv.Atoi(value); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
