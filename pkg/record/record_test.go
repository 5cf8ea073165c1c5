package record_test

import (
	"testing"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
)

func TestEqual(t *testing.T) {
	base := record.SourceRecord{ID: 1, Name: "Press", Fields: map[string]string{
		record.FieldDescription: "50T",
	}}

	cases := []struct {
		name  string
		other record.SourceRecord
		want  bool
	}{
		{"identical", record.SourceRecord{ID: 1, Name: "Press", Fields: map[string]string{record.FieldDescription: "50T"}}, true},
		{"different id still equal", record.SourceRecord{ID: 2, Name: "Press", Fields: map[string]string{record.FieldDescription: "50T"}}, true},
		{"name changed", record.SourceRecord{ID: 1, Name: "Press B", Fields: map[string]string{record.FieldDescription: "50T"}}, false},
		{"field changed", record.SourceRecord{ID: 1, Name: "Press", Fields: map[string]string{record.FieldDescription: "60T"}}, false},
		{"field dropped", record.SourceRecord{ID: 1, Name: "Press"}, false},
		{"untracked noise ignored", record.SourceRecord{ID: 1, Name: "Press", Fields: map[string]string{record.FieldDescription: "50T", "scratch": "x"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Equal(tc.other); got != tc.want {
				t.Fatalf("Equal = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	orig := record.SourceRecord{ID: 1, Name: "Press", Fields: map[string]string{record.FieldRefNo: "NC-1"}}
	clone := orig.Clone()
	clone.Fields[record.FieldRefNo] = "NC-2"
	if orig.Field(record.FieldRefNo) != "NC-1" {
		t.Fatalf("clone aliases the original field map")
	}
}
