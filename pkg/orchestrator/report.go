package orchestrator

import (
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/render"
)

// State tracks a record through the run. Done and Failed are terminal.
type State int

const (
	StatePending State = iota
	StateDrafted
	StateRendered
	StateDone
	StateFailed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDrafted:
		return "drafted"
	case StateRendered:
		return "rendered"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stages at which a record can fail.
const (
	StageDrafting  = "drafting"
	StageRendering = "rendering"
)

// RecordResult is the outcome for one selected record.
type RecordResult struct {
	Record      record.SourceRecord
	State       State
	FailedStage string
	Err         error
	Documents   []render.RenderedDocument
}

func (r *RecordResult) fail(stage string, err error) {
	r.State = StateFailed
	r.FailedStage = stage
	r.Err = err
}

// RunReport summarises one pipeline run.
type RunReport struct {
	// Total is the number of canonical records read from the source.
	Total int
	// Added and Modified count the change set.
	Added    int
	Modified int
	// Produced and Skipped count selected records by outcome; Documents
	// counts artifacts written.
	Produced  int
	Skipped   int
	Documents int
	// Aborted is set when the confirmation hook declined the run.
	Aborted bool
	// Results holds per-record outcomes in processing order.
	Results []RecordResult
}

// Attempted returns the number of records processing began for.
func (r RunReport) Attempted() int {
	return r.Produced + r.Skipped
}
