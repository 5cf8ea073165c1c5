// Command capequip regenerates procurement documents for equipment records
// that are new or changed since the last run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/joho/godotenv"

	internalopenai "github.com/Renewable-Energy-Systems/capital-equipment/internal/draft/openai"
	"github.com/Renewable-Energy-Systems/capital-equipment/internal/workbook/excel"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/config"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/draft"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/orchestrator"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/render"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/renderers/docx"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/snapshot"
)

func main() {
	configPath := flag.String("config", "capequip.yaml", "configuration file path")
	categoryNames := flag.String("categories", "", "comma-separated category names (default: all configured)")
	dryRun := flag.Bool("dry-run", false, "use placeholder drafts and an in-memory snapshot")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	// Missing .env is fine; the environment may carry the key directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	categories, outputDirs, templates, err := selectCategories(cfg, *categoryNames)
	if err != nil {
		fatal(err)
	}

	renderer, err := docx.New(docx.Config{Templates: templates, Logger: logger})
	if err != nil {
		fatal(err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	var drafter draft.Drafter
	var store snapshot.Store
	if *dryRun {
		drafter = draft.MockDrafter{}
		store = snapshot.NewMemoryStore()
	} else {
		client, err := internalopenai.New(internalopenai.Config{
			APIKey:  cfg.Drafting.APIKey,
			Model:   cfg.Drafting.Model,
			BaseURL: cfg.Drafting.BaseURL,
			Logger:  logger,
		})
		if err != nil {
			fatal(err)
		}
		drafter = client
		store = snapshot.NewFileStore(cfg.Snapshot.Path)
	}

	options := []orchestrator.Option{
		orchestrator.WithReader(excel.New(cfg.Workbook.Path, cfg.Workbook.Sheet, excel.WithLogger(logger))),
		orchestrator.WithStore(store),
		orchestrator.WithDrafter(drafter),
		orchestrator.WithRegistry(registry),
		orchestrator.WithCategories(categories, outputDirs),
		orchestrator.WithLogger(logger),
		orchestrator.WithDraftTimeout(time.Duration(cfg.Drafting.TimeoutSeconds) * time.Second),
	}
	if !*yes && cfg.ConfirmThreshold > 0 {
		options = append(options, orchestrator.WithConfirm(confirm(cfg.ConfirmThreshold)))
	}

	report, err := orchestrator.New(options...).Run(context.Background())
	if err != nil {
		fatal(err)
	}
	if report.Aborted {
		fmt.Println("Aborted; no documents were generated.")
		return
	}

	fmt.Printf("%d document(s) written for %d of %d attempted record(s).\n",
		report.Documents, report.Produced, report.Attempted())
	for _, result := range report.Results {
		if result.State == orchestrator.StateFailed {
			fmt.Printf("  skipped %d %q (%s): %v\n",
				result.Record.ID, result.Record.Name, result.FailedStage, result.Err)
		}
	}
	if report.Skipped > 0 {
		os.Exit(1)
	}
}

// selectCategories resolves the requested categories against the configured
// templates and output directories.
func selectCategories(cfg config.Config, names string) ([]category.Category, map[string]string, map[string]string, error) {
	requested := make([]string, 0)
	if strings.TrimSpace(names) == "" {
		// Built-in order keeps per-record category processing stable.
		for _, cat := range category.All() {
			if _, ok := cfg.Categories[cat.Name]; ok {
				requested = append(requested, cat.Name)
			}
		}
	} else {
		for _, name := range strings.Split(names, ",") {
			requested = append(requested, strings.TrimSpace(name))
		}
	}

	var categories []category.Category
	outputDirs := make(map[string]string, len(requested))
	templates := make(map[string]string, len(requested))
	for _, name := range requested {
		cat, err := category.ByName(name)
		if err != nil {
			return nil, nil, nil, err
		}
		catCfg, ok := cfg.Categories[name]
		if !ok {
			return nil, nil, nil, fmt.Errorf("category %q is not configured", name)
		}
		categories = append(categories, cat)
		outputDirs[name] = catCfg.OutputDir
		templates[name] = catCfg.Template
	}
	return categories, outputDirs, templates, nil
}

func confirm(threshold int) func(int) bool {
	return func(selected int) bool {
		if selected <= threshold {
			return true
		}
		ok := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("%d record(s) need regeneration. Continue?", selected),
		}
		if err := survey.AskOne(prompt, &ok); err != nil {
			return false
		}
		return ok
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "capequip:", err)
	os.Exit(2)
}
