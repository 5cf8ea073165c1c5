// Package render defines the contract for turning one record's drafted
// content into a structured document artifact at a deterministic output
// location, plus the pieces every renderer shares: the registry, output path
// derivation, bullet flattening, and document style tokens.
package render

import (
	"context"
	"errors"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/draft"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
)

// Rendering failures. Both fail the single record, never the batch.
var (
	// ErrRender marks a document that could not be produced.
	ErrRender = errors.New("render: document failed")

	// ErrPlaceholderMissing marks a template lacking a required placeholder.
	ErrPlaceholderMissing = errors.New("render: placeholder not found in template")
)

// RenderedDocument describes one produced artifact.
type RenderedDocument struct {
	RecordID   int
	OutputPath string
	Category   string
}

// Request carries everything a renderer needs for one record.
type Request struct {
	Category category.Category
	Record   record.SourceRecord
	Draft    draft.ContentDraft

	// OutputDir is the category output directory the derived path is
	// rooted under.
	OutputDir string
}

// Renderer produces a document for one record. Implementations must derive
// the output path purely from the request so reruns overwrite in place.
type Renderer interface {
	Name() string
	Render(ctx context.Context, req Request) (RenderedDocument, error)
}
