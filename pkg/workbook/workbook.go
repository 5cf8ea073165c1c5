// Package workbook defines the contracts for reading the equipment workbook
// into canonical records. The excelize-backed implementation lives in
// internal/workbook/excel; this package carries the reader interface, the
// ingestion error taxonomy, and the pure row-normalization rules so they can
// be exercised without a real spreadsheet on disk.
package workbook

import (
	"context"
	"errors"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
)

// Ingestion failures. All three are fatal to a run: without a valid source
// there is nothing to diff or generate.
var (
	// ErrSourceUnavailable marks a workbook that cannot be read at all,
	// including one exclusively locked by another process.
	ErrSourceUnavailable = errors.New("workbook: source unavailable")

	// ErrMissingSheet marks a workbook without the expected data sheet.
	ErrMissingSheet = errors.New("workbook: sheet not found")

	// ErrMissingColumns marks a sheet where the identity or name column
	// cannot be canonicalized from any header cell.
	ErrMissingColumns = errors.New("workbook: required columns missing")
)

// Reader yields the current canonical record set in source row order.
type Reader interface {
	Records(ctx context.Context) ([]record.SourceRecord, error)
}

// ReaderFunc adapts a function into a Reader.
type ReaderFunc func(ctx context.Context) ([]record.SourceRecord, error)

// Records calls the underlying function.
func (fn ReaderFunc) Records(ctx context.Context) ([]record.SourceRecord, error) {
	return fn(ctx)
}
