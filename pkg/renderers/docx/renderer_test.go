package docx_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/draft"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/record"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/render"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/renderers/docx"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/testsupport"
)

func proposalRenderer(t *testing.T, options ...testsupport.TemplateOption) *docx.Renderer {
	t.Helper()
	cat := category.Proposal()
	if len(options) == 0 {
		paragraphs := []string{"Proposal for Capital Equipment"}
		for _, key := range cat.Narrative {
			paragraphs = append(paragraphs, cat.Placeholders[key])
		}
		options = []testsupport.TemplateOption{testsupport.WithParagraphs(paragraphs...)}
	}
	r, err := docx.New(docx.Config{
		Templates: map[string]string{cat.Name: testsupport.WriteTemplate(t, options...)},
	})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func proposalDraft() draft.ContentDraft {
	cat := category.Proposal()
	narrative := make(map[string]string, len(cat.Narrative))
	for _, key := range cat.Narrative {
		narrative[key] = fmt.Sprintf("Drafted %s text.", key)
	}
	return draft.ContentDraft{Narrative: narrative}
}

func TestRender_ProposalSubstitution(t *testing.T) {
	cat := category.Proposal()
	tpl := testsupport.WriteTemplate(t, testsupport.WithParagraphs(
		"Proposal for Capital Equipment",
		"Background: "+cat.Placeholders["introduction"]+" (end)",
		cat.Placeholders["reason"],
		cat.Placeholders["benefits"],
		cat.Placeholders["operating"],
		cat.Placeholders["roi"],
		cat.Placeholders["timeline"],
		cat.Placeholders["risks"],
		cat.Placeholders["conclusion"],
	))
	r, err := docx.New(docx.Config{Templates: map[string]string{cat.Name: tpl}})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rec := record.SourceRecord{ID: 3, Name: "Vacuum Oven"}
	doc, err := r.Render(testsupport.Context(), render.Request{
		Category:  cat,
		Record:    rec,
		Draft:     proposalDraft(),
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	paragraphs := testsupport.DocumentParagraphs(t, doc.OutputPath)
	joined := strings.Join(paragraphs, "\n")
	if !strings.Contains(joined, "Background: Drafted introduction text. (end)") {
		t.Fatalf("surrounding text not preserved:\n%s", joined)
	}
	for _, key := range cat.Narrative {
		if !strings.Contains(joined, fmt.Sprintf("Drafted %s text.", key)) {
			t.Fatalf("narrative %q missing from output:\n%s", key, joined)
		}
	}
	if strings.Contains(joined, cat.Placeholders["introduction"]) {
		t.Fatal("placeholder text survived substitution")
	}

	wantName := fmt.Sprintf("Proposal_%02d_Vacuum_Oven.docx", rec.ID)
	if filepath.Base(doc.OutputPath) != wantName {
		t.Fatalf("output file = %s, want %s", filepath.Base(doc.OutputPath), wantName)
	}
}

func TestRender_NarrativeDoesNotInheritTemplateEmphasis(t *testing.T) {
	cat := category.Proposal()
	paragraphs := []string{"Proposal for Capital Equipment"}
	for _, key := range cat.Narrative {
		paragraphs = append(paragraphs, cat.Placeholders[key])
	}
	r := proposalRenderer(t,
		testsupport.WithParagraphs(paragraphs...),
		testsupport.WithRunProperties(`<w:b/><w:sz w:val="28"/>`))

	doc, err := r.Render(testsupport.Context(), render.Request{
		Category:  cat,
		Record:    record.SourceRecord{ID: 4, Name: "Furnace"},
		Draft:     proposalDraft(),
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	xmlBody := testsupport.DocumentXML(t, doc.OutputPath)
	if strings.Contains(xmlBody, `w:sz w:val="28"`) {
		t.Fatal("template run size survived body normalization")
	}

	idx := strings.Index(xmlBody, "Drafted introduction text.")
	if idx < 0 {
		t.Fatalf("narrative missing from output:\n%s", xmlBody)
	}
	run := xmlBody[strings.LastIndex(xmlBody[:idx], "<w:r>"):idx]
	if !strings.Contains(run, `<w:b w:val="0"/>`) {
		t.Fatalf("narrative run still bold: %s", run)
	}
	if !strings.Contains(run, `<w:sz w:val="22"/>`) {
		t.Fatalf("narrative run not pinned to body size: %s", run)
	}

	// The restyled title keeps its own emphasis and size.
	tIdx := strings.Index(xmlBody, "Proposal for Capital Equipment")
	title := xmlBody[strings.LastIndex(xmlBody[:tIdx], "<w:r>"):tIdx]
	if !strings.Contains(title, "<w:b/>") || !strings.Contains(title, `<w:sz w:val="32"/>`) {
		t.Fatalf("title lost its styling: %s", title)
	}
}

func TestRender_PlaceholderMissing(t *testing.T) {
	r := proposalRenderer(t, testsupport.WithParagraphs("A template with no placeholders."))

	_, err := r.Render(testsupport.Context(), render.Request{
		Category:  category.Proposal(),
		Record:    record.SourceRecord{ID: 1, Name: "Press"},
		Draft:     proposalDraft(),
		OutputDir: t.TempDir(),
	})
	if !errors.Is(err, render.ErrPlaceholderMissing) {
		t.Fatalf("want ErrPlaceholderMissing, got %v", err)
	}
}

func TestRender_FormFields(t *testing.T) {
	cat := category.Proposal()
	paragraphs := []string{
		"Ref. No: [Enter applicable NC or reference number]",
		"Proposed On: ____________________",
		"Proposed By: ____________________",
	}
	for _, key := range cat.Narrative {
		paragraphs = append(paragraphs, cat.Placeholders[key])
	}
	r := proposalRenderer(t, testsupport.WithParagraphs(paragraphs...))

	rec := record.SourceRecord{ID: 5, Name: "Laser Welder", Fields: map[string]string{
		record.FieldRefNo:      "NC-0042",
		record.FieldProposedOn: "2026-08-12",
	}}
	doc, err := r.Render(testsupport.Context(), render.Request{
		Category:  cat,
		Record:    rec,
		Draft:     proposalDraft(),
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	joined := strings.Join(testsupport.DocumentParagraphs(t, doc.OutputPath), "\n")
	if !strings.Contains(joined, "Ref. No: NC-0042") {
		t.Fatalf("ref no not filled:\n%s", joined)
	}
	if !strings.Contains(joined, "Proposed On: 2026-08-12") {
		t.Fatalf("proposed on not filled:\n%s", joined)
	}
	// Absent fields leave the fill-in rule untouched.
	if !strings.Contains(joined, "Proposed By: ____________________") {
		t.Fatalf("empty field should keep the rule:\n%s", joined)
	}
}

func quotationDraft() draft.ContentDraft {
	return draft.ContentDraft{
		Narrative: map[string]string{
			"introduction": "We invite quotations for the listed equipment.",
			"scope":        "Supply, installation and commissioning.",
		},
		Tables: map[string][]draft.TableRow{
			"tech_table": {
				{Parameter: "Capacity", Requirement: "50 kN"},
				{Parameter: "Power", Requirement: "415 V, 3 ph"},
			},
		},
		Lists: map[string][]any{
			"commercial_terms": {"Validity 90 days", []any{"DAP site", "Net 30"}},
			"docs_required":    {"Calibration certificates"},
		},
	}
}

func TestRender_QuotationLayout(t *testing.T) {
	cat := category.QuotationRequest()
	r, err := docx.New(docx.Config{
		Templates: map[string]string{cat.Name: testsupport.WriteTemplate(t)},
	})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rec := record.SourceRecord{ID: 7, Name: "CNC Router #2"}
	doc, err := r.Render(testsupport.Context(), render.Request{
		Category:  cat,
		Record:    rec,
		Draft:     quotationDraft(),
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	wantRel := filepath.Join("CNC_Router_2", "RFQ", "RFQ_07_CNC_Router_2.docx")
	if !strings.HasSuffix(doc.OutputPath, wantRel) {
		t.Fatalf("output path = %s, want suffix %s", doc.OutputPath, wantRel)
	}

	paragraphs := testsupport.DocumentParagraphs(t, doc.OutputPath)
	joined := strings.Join(paragraphs, "\n")
	for _, want := range []string{
		"RFQ for CNC Router #2",
		"1. Introduction",
		"We invite quotations for the listed equipment.",
		"3. Technical Requirements",
		"Validity 90 days",
		"DAP site",
		"Net 30",
		"Quotation for CNC Router #2 - RESL",
		"7. Confidentiality Clause",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in rendered text:\n%s", want, joined)
		}
	}

	// Section order is preserved.
	intro := strings.Index(joined, "1. Introduction")
	conf := strings.Index(joined, "7. Confidentiality Clause")
	if intro < 0 || conf < 0 || conf < intro {
		t.Fatalf("sections out of order:\n%s", joined)
	}

	xmlBody := testsupport.DocumentXML(t, doc.OutputPath)
	if !strings.Contains(xmlBody, "<w:tbl>") || !strings.Contains(xmlBody, "<w:tblBorders>") {
		t.Fatal("technical table missing or unbordered")
	}
	if !strings.Contains(xmlBody, "Capacity") || !strings.Contains(xmlBody, "50 kN") {
		t.Fatal("table cells missing drafted rows")
	}
}

func TestRender_BulletStyleFallback(t *testing.T) {
	cat := category.QuotationRequest()

	t.Run("without list style", func(t *testing.T) {
		r, err := docx.New(docx.Config{
			Templates: map[string]string{cat.Name: testsupport.WriteTemplate(t)},
		})
		if err != nil {
			t.Fatalf("new renderer: %v", err)
		}
		doc, err := r.Render(testsupport.Context(), render.Request{
			Category:  cat,
			Record:    record.SourceRecord{ID: 1, Name: "Mixer"},
			Draft:     quotationDraft(),
			OutputDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		joined := strings.Join(testsupport.DocumentParagraphs(t, doc.OutputPath), "\n")
		if !strings.Contains(joined, "• Validity 90 days") {
			t.Fatalf("plain bullet marker missing:\n%s", joined)
		}
	})

	t.Run("with list style", func(t *testing.T) {
		r, err := docx.New(docx.Config{
			Templates: map[string]string{cat.Name: testsupport.WriteTemplate(t, testsupport.WithBulletStyle())},
		})
		if err != nil {
			t.Fatalf("new renderer: %v", err)
		}
		doc, err := r.Render(testsupport.Context(), render.Request{
			Category:  cat,
			Record:    record.SourceRecord{ID: 1, Name: "Mixer"},
			Draft:     quotationDraft(),
			OutputDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		xmlBody := testsupport.DocumentXML(t, doc.OutputPath)
		if !strings.Contains(xmlBody, `w:val="ListBullet"`) {
			t.Fatal("bulleted paragraphs should reference the list style")
		}
	})
}

func TestNew_MissingTemplate(t *testing.T) {
	_, err := docx.New(docx.Config{
		Templates: map[string]string{category.NameProposal: filepath.Join(t.TempDir(), "absent.docx")},
	})
	if err == nil {
		t.Fatal("want error for missing template")
	}
}

func TestRender_OverwritesInPlace(t *testing.T) {
	r := proposalRenderer(t)
	outDir := t.TempDir()
	req := render.Request{
		Category:  category.Proposal(),
		Record:    record.SourceRecord{ID: 2, Name: "Shaker"},
		Draft:     proposalDraft(),
		OutputDir: outDir,
	}

	first, err := r.Render(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := r.Render(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first.OutputPath != second.OutputPath {
		t.Fatalf("paths differ: %s vs %s", first.OutputPath, second.OutputPath)
	}
}
