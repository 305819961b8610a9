package runtimeconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleRunbook = `---
target_locale: si
korean_locale: ko
workers: 4
sets:
  - common
  - movie
paths:
  common_export: exports/common_msbt_Export
  reports: exports/reports
features:
  incremental: true
  verify: false
coverage:
  driver: sqlite
  dsn: runs.db
logging:
  level: debug
---

# Nightly si regeneration

Rebuild after the 2026-03 asset drop. Ping the loc team if fallback
coverage moves above five percent.
`

func writeRunbook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runbook.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write runbook: %v", err)
	}
	return path
}

func TestLoadRunbook_OverlaysBase(t *testing.T) {
	path := writeRunbook(t, sampleRunbook)

	cfg, runbook, err := LoadRunbook(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadRunbook() error = %v", err)
	}

	if cfg.Workers != 4 {
		t.Fatalf("Workers = %d", cfg.Workers)
	}
	if cfg.Paths.CommonExportDir != "exports/common_msbt_Export" {
		t.Fatalf("CommonExportDir = %q", cfg.Paths.CommonExportDir)
	}
	if cfg.Paths.ReportsDir != "exports/reports" {
		t.Fatalf("ReportsDir = %q", cfg.Paths.ReportsDir)
	}
	// Fields absent from the frontmatter keep the base value.
	if cfg.Paths.KoreanExportDir != "korean_Export" {
		t.Fatalf("KoreanExportDir = %q", cfg.Paths.KoreanExportDir)
	}
	if cfg.TemplateLocale != "english" {
		t.Fatalf("TemplateLocale = %q", cfg.TemplateLocale)
	}
	if cfg.KoreanLocale != "ko" {
		t.Fatalf("KoreanLocale = %q", cfg.KoreanLocale)
	}

	if cfg.Features.Verify {
		t.Fatal("verify: false overlay not applied")
	}
	if !cfg.Features.Incremental {
		t.Fatal("incremental: true overlay not applied")
	}
	// Base true + absent from frontmatter stays true.
	if !cfg.Features.Reports {
		t.Fatal("reports flag lost during overlay")
	}

	if cfg.Coverage.Driver != "sqlite" || cfg.Coverage.DSN != "runs.db" {
		t.Fatalf("coverage = %+v", cfg.Coverage)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Provider != "console" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}

	sets := runbook.Sets()
	if len(sets) != 2 || sets[0] != "common" || sets[1] != "movie" {
		t.Fatalf("Sets() = %v", sets)
	}
	if runbook.Notes == "" || runbook.Notes[0] != '#' {
		t.Fatalf("Notes = %q", runbook.Notes)
	}
}

func TestLoadRunbook_EmptyFrontmatter(t *testing.T) {
	path := writeRunbook(t, "---\n---\n\nJust notes, no overrides.\n")

	cfg, runbook, err := LoadRunbook(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadRunbook() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("config changed without overrides: %+v", cfg)
	}
	if runbook.Notes != "Just notes, no overrides." {
		t.Fatalf("Notes = %q", runbook.Notes)
	}
	if len(runbook.Sets()) != 0 {
		t.Fatalf("Sets() = %v", runbook.Sets())
	}
}

func TestLoadRunbook_MissingFile(t *testing.T) {
	if _, _, err := LoadRunbook(filepath.Join(t.TempDir(), "absent.md"), DefaultConfig()); err == nil {
		t.Fatal("expected error for missing runbook")
	}
}
