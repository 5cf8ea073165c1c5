package excel_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Renewable-Energy-Systems/capital-equipment/internal/workbook/excel"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/testsupport"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/workbook"
)

func TestReader_Records(t *testing.T) {
	path := testsupport.WriteWorkbook(t, "cp_list", [][]string{
		{"Capital Equipment 2025"},
		{},
		{"cid", "Item", "Description", "Ref./NC no."},
		{"1", "Hydraulic Press", "50T frame", "NC-104"},
		{"2", "CNC Router #2", "", ""},
	})

	records, err := excel.New(path, "cp_list").Records(testsupport.Context())
	if err != nil {
		t.Fatalf("records: %v", err)
	}

	want := []record.SourceRecord{
		{ID: 1, Name: "Hydraulic Press", Fields: map[string]string{
			record.FieldDescription: "50T frame",
			record.FieldRefNo:       "NC-104",
		}},
		{ID: 2, Name: "CNC Router #2"},
	}
	if diff := testsupport.CompareGolden(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_MissingSheet(t *testing.T) {
	path := testsupport.WriteWorkbook(t, "cp_list", [][]string{
		{"cid", "Item"},
		{"1", "Press"},
	})

	_, err := excel.New(path, "no_such_sheet").Records(testsupport.Context())
	if !errors.Is(err, workbook.ErrMissingSheet) {
		t.Fatalf("want ErrMissingSheet, got %v", err)
	}
}

func TestReader_RemovesScopedDuplicate(t *testing.T) {
	scratch := t.TempDir()
	t.Setenv("TMPDIR", scratch)

	leftovers := func() []string {
		t.Helper()
		matches, err := filepath.Glob(filepath.Join(scratch, "capequip-*.xlsx"))
		if err != nil {
			t.Fatalf("glob: %v", err)
		}
		return matches
	}

	path := testsupport.WriteWorkbook(t, "cp_list", [][]string{
		{"cid", "Item"},
		{"1", "Press"},
	})

	if _, err := excel.New(path, "cp_list").Records(testsupport.Context()); err != nil {
		t.Fatalf("records: %v", err)
	}
	if got := leftovers(); len(got) != 0 {
		t.Fatalf("duplicate left behind after success: %v", got)
	}

	_, err := excel.New(path, "no_such_sheet").Records(testsupport.Context())
	if !errors.Is(err, workbook.ErrMissingSheet) {
		t.Fatalf("want ErrMissingSheet, got %v", err)
	}
	if got := leftovers(); len(got) != 0 {
		t.Fatalf("duplicate left behind after failure: %v", got)
	}
}

func TestReader_SourceUnavailable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.xlsx")
	_, err := excel.New(missing, "cp_list").Records(testsupport.Context())
	if !errors.Is(err, workbook.ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}
}
