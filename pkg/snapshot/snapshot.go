// Package snapshot persists the record set from the last successful run and
// derives the change set that drives regeneration. Snapshots are whole
// values: a store loads and saves the complete record set, never a partial
// update.
package snapshot

import (
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
)

// Snapshot is the ordered record set captured at the end of a run. It is
// read at the start of every run and replaced wholesale at the end.
type Snapshot struct {
	Records []record.SourceRecord `json:"records"`
}

// Lookup returns the snapshot record with the given id.
func (s Snapshot) Lookup(id int) (record.SourceRecord, bool) {
	for _, rec := range s.Records {
		if rec.ID == id {
			return rec, true
		}
	}
	return record.SourceRecord{}, false
}

// Empty reports whether the snapshot holds no records.
func (s Snapshot) Empty() bool {
	return len(s.Records) == 0
}

// ChangeSet identifies the records needing regeneration in the current run.
// Ids appear in current-source order so downstream processing is reproducible
// across runs with identical inputs.
type ChangeSet struct {
	Added    []int
	Modified []int
}

// Len returns the number of selected records.
func (c ChangeSet) Len() int {
	return len(c.Added) + len(c.Modified)
}

// Has reports whether the record id was selected.
func (c ChangeSet) Has(id int) bool {
	for _, v := range c.Added {
		if v == id {
			return true
		}
	}
	for _, v := range c.Modified {
		if v == id {
			return true
		}
	}
	return false
}

// Diff compares the current record set against the baseline snapshot. A
// record is added when its id is absent from the baseline, modified when
// present with a differing name or tracked field, and excluded when fully
// equal. Records present only in the baseline are ignored.
func Diff(current []record.SourceRecord, baseline Snapshot) ChangeSet {
	var cs ChangeSet
	for _, rec := range current {
		base, ok := baseline.Lookup(rec.ID)
		switch {
		case !ok:
			cs.Added = append(cs.Added, rec.ID)
		case !rec.Equal(base):
			cs.Modified = append(cs.Modified, rec.ID)
		}
	}
	return cs
}

// Advance builds the snapshot to persist after a run. A record's new state is
// accepted only once its document generation completed; a rejected record
// keeps its baseline entry (or stays absent) so the same difference shows up
// again on the next run and the record is retried.
func Advance(current []record.SourceRecord, baseline Snapshot, rejected map[int]bool) Snapshot {
	next := Snapshot{Records: make([]record.SourceRecord, 0, len(current))}
	for _, rec := range current {
		if rejected[rec.ID] {
			if base, ok := baseline.Lookup(rec.ID); ok {
				next.Records = append(next.Records, base.Clone())
			}
			continue
		}
		next.Records = append(next.Records, rec.Clone())
	}
	return next
}
