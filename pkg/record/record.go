// Package record defines the canonical equipment record produced by the
// workbook normalizer and consumed by the rest of the pipeline. Records are
// keyed by their integer identity; equality for change detection compares the
// display name and every tracked field.
package record

import "strings"

// Canonical field names the normalizer maps workbook columns onto.
const (
	FieldDescription = "description"
	FieldImpact      = "impact"
	FieldRefNo       = "ref_no"
	FieldProposedOn  = "proposed_on"
	FieldProposedBy  = "proposed_by"
	FieldOrgDetails  = "org_details"
	FieldPriority    = "priority"
	FieldAssignee    = "assignee"
)

// TrackedFields lists every canonical field that participates in change
// detection. Order matters only for deterministic iteration in tests.
func TrackedFields() []string {
	return []string{
		FieldDescription,
		FieldImpact,
		FieldRefNo,
		FieldProposedOn,
		FieldProposedBy,
		FieldOrgDetails,
		FieldPriority,
		FieldAssignee,
	}
}

// SourceRecord is one canonicalized row of the equipment workbook.
type SourceRecord struct {
	ID     int               `json:"cid"`
	Name   string            `json:"item"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Field returns the trimmed value of a canonical field, or "" when absent.
func (r SourceRecord) Field(name string) string {
	if r.Fields == nil {
		return ""
	}
	return strings.TrimSpace(r.Fields[name])
}

// Equal reports whether two records carry the same name and tracked fields.
// Identity is deliberately excluded: callers compare records that already
// share an id. A field absent on one side equals an empty value on the other.
func (r SourceRecord) Equal(other SourceRecord) bool {
	if strings.TrimSpace(r.Name) != strings.TrimSpace(other.Name) {
		return false
	}
	for _, field := range TrackedFields() {
		if r.Field(field) != other.Field(field) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so callers can hold records across snapshot
// replacement without aliasing the field map.
func (r SourceRecord) Clone() SourceRecord {
	out := SourceRecord{ID: r.ID, Name: r.Name}
	if len(r.Fields) > 0 {
		out.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			out.Fields[k] = v
		}
	}
	return out
}
