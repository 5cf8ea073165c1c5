package draft

import (
	"context"
	"fmt"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
)

// MockDrafter returns deterministic placeholder content without calling an
// external model. Used by dry runs and tests.
type MockDrafter struct{}

var _ Drafter = MockDrafter{}

// Draft builds a schema-valid draft from the record context.
func (MockDrafter) Draft(_ context.Context, cat category.Category, req Request) (ContentDraft, error) {
	out := ContentDraft{Narrative: make(map[string]string, len(cat.Narrative))}
	for _, key := range cat.Narrative {
		out.Narrative[key] = fmt.Sprintf("Placeholder %s section for %s.", key, req.Record.Name)
	}
	for _, key := range cat.Tables {
		if out.Tables == nil {
			out.Tables = make(map[string][]TableRow, len(cat.Tables))
		}
		out.Tables[key] = []TableRow{
			{Parameter: "Capacity", Requirement: "To be confirmed with supplier"},
			{Parameter: "Compliance", Requirement: "CE marked; relevant IEC standards"},
		}
	}
	for _, key := range cat.Lists {
		if out.Lists == nil {
			out.Lists = make(map[string][]any, len(cat.Lists))
		}
		out.Lists[key] = []any{
			"Quotation validity: 90 days",
			[]any{"Delivery terms: DAP site", "Payment terms: against delivery"},
		}
	}
	return out, nil
}
