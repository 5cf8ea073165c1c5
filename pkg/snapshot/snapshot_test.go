package snapshot_test

import (
	"path/filepath"
	"testing"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/snapshot"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/testsupport"
)

func rec(id int, name string, fields map[string]string) record.SourceRecord {
	return record.SourceRecord{ID: id, Name: name, Fields: fields}
}

func TestDiff(t *testing.T) {
	baseline := snapshot.Snapshot{Records: []record.SourceRecord{
		rec(1, "Press A", nil),
		rec(3, "Mill C", map[string]string{record.FieldPriority: "Low"}),
		rec(9, "Removed Upstream", nil),
	}}
	current := []record.SourceRecord{
		rec(1, "Press A1", nil),
		rec(2, "Lathe B", nil),
		rec(3, "Mill C", map[string]string{record.FieldPriority: "Low"}),
	}

	cs := snapshot.Diff(current, baseline)

	if diff := testsupport.CompareGolden([]int{2}, cs.Added); diff != "" {
		t.Fatalf("added mismatch (-want +got):\n%s", diff)
	}
	if diff := testsupport.CompareGolden([]int{1}, cs.Modified); diff != "" {
		t.Fatalf("modified mismatch (-want +got):\n%s", diff)
	}
	if cs.Has(3) || cs.Has(9) {
		t.Fatalf("unchanged or removed records selected: %+v", cs)
	}
}

func TestDiff_FieldChangeSelects(t *testing.T) {
	baseline := snapshot.Snapshot{Records: []record.SourceRecord{
		rec(5, "Oven", map[string]string{record.FieldDescription: "old spec"}),
	}}
	current := []record.SourceRecord{
		rec(5, "Oven", map[string]string{record.FieldDescription: "new spec"}),
	}
	cs := snapshot.Diff(current, baseline)
	if len(cs.Modified) != 1 || cs.Modified[0] != 5 {
		t.Fatalf("want modified {5}, got %+v", cs)
	}
}

func TestDiff_EmptyBaselineAddsEverything(t *testing.T) {
	current := []record.SourceRecord{rec(1, "A", nil), rec(2, "B", nil)}
	cs := snapshot.Diff(current, snapshot.Snapshot{})
	if diff := testsupport.CompareGolden([]int{1, 2}, cs.Added); diff != "" {
		t.Fatalf("added mismatch (-want +got):\n%s", diff)
	}
}

func TestDiff_Idempotence(t *testing.T) {
	current := []record.SourceRecord{
		rec(1, "A", map[string]string{record.FieldDescription: "x"}),
		rec(2, "B", nil),
	}
	cs := snapshot.Diff(current, snapshot.Snapshot{Records: current})
	if cs.Len() != 0 {
		t.Fatalf("want empty change set, got %+v", cs)
	}
}

func TestAdvance_RejectedKeepsBaseline(t *testing.T) {
	baseline := snapshot.Snapshot{Records: []record.SourceRecord{
		rec(1, "Press A", nil),
	}}
	current := []record.SourceRecord{
		rec(1, "Press A1", nil), // modified, but generation failed
		rec(2, "Lathe B", nil),  // added, generation failed
		rec(3, "Mill C", nil),   // added, generation succeeded
	}

	next := snapshot.Advance(current, baseline, map[int]bool{1: true, 2: true})

	want := snapshot.Snapshot{Records: []record.SourceRecord{
		rec(1, "Press A", nil),
		rec(3, "Mill C", nil),
	}}
	if diff := testsupport.CompareGolden(want, next); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	// The failed records must still differ next run, so they are retried.
	retry := snapshot.Diff(current, next)
	if !retry.Has(1) || !retry.Has(2) || retry.Has(3) {
		t.Fatalf("unexpected retry selection: %+v", retry)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "snapshot.json")
	store := snapshot.NewFileStore(path)

	empty, err := store.Load()
	if err != nil {
		t.Fatalf("load absent: %v", err)
	}
	if !empty.Empty() {
		t.Fatalf("want empty snapshot, got %+v", empty)
	}

	saved := snapshot.Snapshot{Records: []record.SourceRecord{
		rec(1, "Press A", map[string]string{record.FieldRefNo: "NC-104"}),
	}}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := testsupport.CompareGolden(saved, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
