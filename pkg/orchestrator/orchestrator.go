// Package orchestrator drives the full run: ingest the workbook, diff the
// canonical records against the persisted snapshot, draft and render a
// document for every added or modified record, and advance the snapshot.
// Records are processed sequentially in source order; every per-record
// failure is caught at this boundary so sibling records are unaffected.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/draft"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/render"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/snapshot"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/workbook"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithReader injects the workbook reader.
func WithReader(reader workbook.Reader) Option {
	return func(o *Orchestrator) {
		o.reader = reader
	}
}

// WithStore injects the snapshot store.
func WithStore(store snapshot.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithDrafter injects the content-drafting client.
func WithDrafter(drafter draft.Drafter) Option {
	return func(o *Orchestrator) {
		o.drafter = drafter
	}
}

// WithRegistry injects the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRenderer names the renderer used for every document.
func WithRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.rendererName = name
	}
}

// WithCategories selects the document categories produced per record and the
// output directory each category writes under.
func WithCategories(categories []category.Category, outputDirs map[string]string) Option {
	return func(o *Orchestrator) {
		o.categories = categories
		o.outputDirs = outputDirs
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDraftTimeout bounds each drafting call. A timed-out call fails that
// record as a skip; zero disables the bound.
func WithDraftTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.draftTimeout = timeout
	}
}

// WithConfirm registers a hook called with the number of selected records
// before any drafting starts. Returning false aborts the run cleanly.
func WithConfirm(confirm func(selected int) bool) Option {
	return func(o *Orchestrator) {
		o.confirm = confirm
	}
}

// Orchestrator coordinates one pipeline run.
type Orchestrator struct {
	reader       workbook.Reader
	store        snapshot.Store
	drafter      draft.Drafter
	registry     *render.Registry
	rendererName string
	categories   []category.Category
	outputDirs   map[string]string
	logger       *slog.Logger
	draftTimeout time.Duration
	confirm      func(int) bool
}

// New constructs an Orchestrator applying the provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		rendererName: "docx",
		logger:       slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	if len(o.categories) == 0 {
		o.categories = category.All()
	}
	return o
}

// Run executes one full pipeline pass and returns the run report. The error
// is non-nil only for fatal conditions: ingestion failures, missing
// dependencies, or a snapshot that cannot be read or written. Per-record
// failures are recorded in the report, never returned.
func (o *Orchestrator) Run(ctx context.Context) (RunReport, error) {
	var report RunReport

	if err := o.validate(); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	records, err := o.reader.Records(ctx)
	if err != nil {
		return report, fmt.Errorf("orchestrator: read source: %w", err)
	}
	if err := checkUniqueIDs(records); err != nil {
		return report, err
	}
	report.Total = len(records)

	baseline, err := o.store.Load()
	if err != nil {
		return report, fmt.Errorf("orchestrator: load snapshot: %w", err)
	}

	changes := snapshot.Diff(records, baseline)
	report.Added = len(changes.Added)
	report.Modified = len(changes.Modified)
	o.logger.Info("change set resolved",
		"records", len(records), "added", report.Added, "modified", report.Modified)

	if changes.Len() > 0 && o.confirm != nil && !o.confirm(changes.Len()) {
		report.Aborted = true
		o.logger.Info("run aborted before generation")
		return report, nil
	}

	renderer, err := o.registry.Get(o.rendererName)
	if err != nil {
		return report, fmt.Errorf("orchestrator: %w", err)
	}

	rejected := make(map[int]bool)
	for _, rec := range records {
		if !changes.Has(rec.ID) {
			continue
		}
		result := o.process(ctx, renderer, rec)
		report.Results = append(report.Results, result)
		if result.State == StateDone {
			report.Produced++
			report.Documents += len(result.Documents)
		} else {
			report.Skipped++
			rejected[rec.ID] = true
		}
	}

	next := snapshot.Advance(records, baseline, rejected)
	if err := o.store.Save(next); err != nil {
		return report, fmt.Errorf("orchestrator: save snapshot: %w", err)
	}

	o.logger.Info("run complete",
		"attempted", changes.Len(), "produced", report.Produced,
		"skipped", report.Skipped, "documents", report.Documents)
	return report, nil
}

// process drafts and renders one record across the configured categories.
// Failures are caught here: the record is marked failed and the error
// recorded, never propagated.
func (o *Orchestrator) process(ctx context.Context, renderer render.Renderer, rec record.SourceRecord) RecordResult {
	result := RecordResult{Record: rec, State: StatePending}
	request := draft.NewRequest(rec)

	for _, cat := range o.categories {
		content, err := o.draftOne(ctx, cat, request)
		if err != nil {
			result.fail(StageDrafting, err)
			o.logger.Warn("record skipped",
				"record", rec.ID, "name", rec.Name, "category", cat.Name,
				"stage", StageDrafting, "error", err)
			return result
		}
		result.State = StateDrafted

		doc, err := renderer.Render(ctx, render.Request{
			Category:  cat,
			Record:    rec,
			Draft:     content,
			OutputDir: o.outputDirs[cat.Name],
		})
		if err != nil {
			result.fail(StageRendering, err)
			o.logger.Warn("record skipped",
				"record", rec.ID, "name", rec.Name, "category", cat.Name,
				"stage", StageRendering, "error", err)
			return result
		}
		result.State = StateRendered
		result.Documents = append(result.Documents, doc)
	}

	result.State = StateDone
	return result
}

// draftOne issues the single drafting call for one record and category,
// bounded by the configured timeout.
func (o *Orchestrator) draftOne(ctx context.Context, cat category.Category, request draft.Request) (draft.ContentDraft, error) {
	if o.draftTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.draftTimeout)
		defer cancel()
	}
	return o.drafter.Draft(ctx, cat, request)
}

func (o *Orchestrator) validate() error {
	switch {
	case o.reader == nil:
		return errors.New("orchestrator: reader is required")
	case o.store == nil:
		return errors.New("orchestrator: store is required")
	case o.drafter == nil:
		return errors.New("orchestrator: drafter is required")
	case o.registry == nil:
		return errors.New("orchestrator: renderer registry is required")
	}
	return nil
}

func checkUniqueIDs(records []record.SourceRecord) error {
	seen := make(map[int]string, len(records))
	for _, rec := range records {
		if prev, ok := seen[rec.ID]; ok {
			return fmt.Errorf("orchestrator: duplicate record id %d (%q, %q)", rec.ID, prev, rec.Name)
		}
		seen[rec.ID] = rec.Name
	}
	return nil
}
