// Package excel implements the workbook.Reader contract on top of excelize.
//
// The source workbook commonly lives in a synced folder and can be held open
// with an exclusive lock by Excel or the sync client. The reader therefore
// never parses the source in place: it copies the file to a scoped temporary
// duplicate, parses that, and removes the duplicate on every exit path.
package excel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/workbook"
)

// Reader reads one sheet of an .xlsx workbook into canonical records.
type Reader struct {
	path   string
	sheet  string
	logger *slog.Logger
}

var _ workbook.Reader = (*Reader)(nil)

// Option customises the reader.
type Option func(*Reader)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New constructs a Reader for the given workbook path and sheet name.
func New(path, sheet string, options ...Option) *Reader {
	r := &Reader{
		path:   path,
		sheet:  sheet,
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Records parses the workbook and returns the canonical record set in source
// row order.
func (r *Reader) Records(ctx context.Context) ([]record.SourceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dup, cleanup, err := duplicate(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", workbook.ErrSourceUnavailable, err)
	}
	defer cleanup()

	f, err := excelize.OpenFile(dup)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", workbook.ErrSourceUnavailable, r.path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(r.sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", workbook.ErrMissingSheet, r.sheet)
	}

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", workbook.ErrSourceUnavailable, r.sheet, err)
	}

	records, err := workbook.Normalize(rows)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("workbook parsed", "path", r.path, "sheet", r.sheet, "records", len(records))
	return records, nil
}

// duplicate copies the workbook into a temporary file and returns its path
// together with a cleanup func. The copy is opened read-share so an external
// lock on the original does not propagate.
func duplicate(path string) (string, func(), error) {
	src, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "capequip-*.xlsx")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp.Name(), cleanup, nil
}
