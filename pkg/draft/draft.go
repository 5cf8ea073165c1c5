// Package draft defines the contract with the external content-drafting
// service: the request context built from a record, the ContentDraft the
// service must return, and the schema validation applied before any drafted
// content reaches a renderer. The openai-backed implementation lives in
// internal/draft/openai.
package draft

import (
	"context"
	"errors"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
)

// ErrSchemaMismatch marks a drafting response whose shape drifted from the
// category schema. It is a per-record failure, never fatal to the batch.
var ErrSchemaMismatch = errors.New("draft: response schema mismatch")

// NotProvided is the explicit sentinel used for record fields that are absent
// from the source; the drafting service is told rather than left guessing.
const NotProvided = "N/A"

// TableRow is one entry of a tabular field.
type TableRow struct {
	Parameter   string
	Requirement string
}

// ContentDraft is the validated content drafted for one record. Narrative
// holds the required free-text fields, Tables the ordered parameter/
// requirement pairs, and Lists the bullet groups. List values keep their raw
// decoded shape (strings or nested sequences of strings); renderers flatten
// them depth-first.
type ContentDraft struct {
	Narrative map[string]string
	Tables    map[string][]TableRow
	Lists     map[string][]any
}

// Request carries one record's drafting inputs.
type Request struct {
	Record  record.SourceRecord
	Context map[string]string
}

// Drafter produces a validated ContentDraft for one record. Implementations
// issue exactly one request per call; retry policy belongs to the caller.
type Drafter interface {
	Draft(ctx context.Context, cat category.Category, req Request) (ContentDraft, error)
}

// NewRequest builds the bounded request context from a record's known
// fields, mapping absent fields to the NotProvided sentinel.
func NewRequest(rec record.SourceRecord) Request {
	ctx := map[string]string{"item": rec.Name}
	for _, field := range record.TrackedFields() {
		value := rec.Field(field)
		if value == "" {
			value = NotProvided
		}
		ctx[field] = value
	}
	return Request{Record: rec, Context: ctx}
}
