package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capequip.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
workbook:
  path: data/cp_list.xlsx
categories:
  proposal:
    template: templates/proposal.docx
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Workbook.Sheet != "cp_list" {
		t.Fatalf("sheet = %q", cfg.Workbook.Sheet)
	}
	if cfg.Snapshot.Path != filepath.Join("out", "snapshot.json") {
		t.Fatalf("snapshot path = %q", cfg.Snapshot.Path)
	}
	if cfg.Drafting.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", cfg.Drafting.Model)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
	if got := cfg.Categories["proposal"].OutputDir; got != filepath.Join("out", "proposal") {
		t.Fatalf("output dir = %q", got)
	}
}

func TestLoad_ExplicitValuesKept(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
workbook:
  path: data/list.xlsx
  sheet: equipment
snapshot:
  path: state/baseline.json
drafting:
  model: gpt-4o
  timeout_seconds: 45
confirm_threshold: 10
categories:
  quotation-request:
    template: templates/rfq.docx
    output_dir: generated/rfq
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Workbook.Sheet != "equipment" {
		t.Fatalf("sheet = %q", cfg.Workbook.Sheet)
	}
	if cfg.Snapshot.Path != "state/baseline.json" {
		t.Fatalf("snapshot path = %q", cfg.Snapshot.Path)
	}
	if cfg.Drafting.Model != "gpt-4o" || cfg.Drafting.TimeoutSeconds != 45 {
		t.Fatalf("drafting = %+v", cfg.Drafting)
	}
	if cfg.ConfirmThreshold != 10 {
		t.Fatalf("confirm threshold = %d", cfg.ConfirmThreshold)
	}
	if got := cfg.Categories["quotation-request"].OutputDir; got != "generated/rfq" {
		t.Fatalf("output dir = %q", got)
	}
}

func TestLoad_APIKeyFromEnvironmentOnly(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := config.Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Drafting.APIKey != "sk-from-env" {
		t.Fatalf("api key = %q", cfg.Drafting.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing workbook path",
			body: "categories:\n  proposal:\n    template: t.docx\n",
			want: "workbook.path",
		},
		{
			name: "no categories",
			body: "workbook:\n  path: list.xlsx\n",
			want: "category",
		},
		{
			name: "category without template",
			body: "workbook:\n  path: list.xlsx\ncategories:\n  proposal: {}\n",
			want: "template",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.Load(writeConfig(t, tc.body))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("validate = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestValidate_Complete(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
