package runtimeconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
)

// Runbook is a Markdown operations document whose YAML frontmatter carries a
// config overlay. The Markdown body travels with the run as free-form notes.
type Runbook struct {
	Overlay Config
	Notes   string
	sets    []string
}

type runbookEnvelope struct {
	TargetLocale   string   `yaml:"target_locale"`
	TemplateLocale string   `yaml:"template_locale"`
	SourceLocale   string   `yaml:"source_locale"`
	KoreanLocale   string   `yaml:"korean_locale"`
	Workers        int      `yaml:"workers"`
	Sets           []string `yaml:"sets"`
	Paths          struct {
		CommonExport  string `yaml:"common_export"`
		CommonOutput  string `yaml:"common_output"`
		KoreanExport  string `yaml:"korean_export"`
		TradExport    string `yaml:"trad_export"`
		TargetOutput  string `yaml:"target_output"`
		LogoDiaSource string `yaml:"logo_dia_source"`
		LogoDiaOutput string `yaml:"logo_dia_output"`
		TextDiaSource string `yaml:"text_dia_source"`
		TextDiaOutput string `yaml:"text_dia_output"`
		Reports       string `yaml:"reports"`
	} `yaml:"paths"`
	Features struct {
		Verify        *bool `yaml:"verify"`
		Reports       *bool `yaml:"reports"`
		CoverageStore *bool `yaml:"coverage_store"`
		Incremental   *bool `yaml:"incremental"`
		Validation    *bool `yaml:"validation"`
	} `yaml:"features"`
	Coverage struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"coverage"`
	Logging struct {
		Provider string `yaml:"provider"`
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
	} `yaml:"logging"`
}

// Sets parsed from the runbook, if any. Exposed so callers can restrict a
// run without extra flags.
func (r Runbook) Sets() []string { return r.sets }

// LoadRunbook reads a Markdown runbook from path and applies its frontmatter
// on top of base. Empty frontmatter fields leave base untouched.
func LoadRunbook(path string, base Config) (Config, Runbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return base, Runbook{}, fmt.Errorf("runbook: open %q: %w", path, err)
	}
	defer file.Close()

	var envelope runbookEnvelope
	body, err := frontmatter.Parse(file, &envelope)
	if err != nil {
		return base, Runbook{}, fmt.Errorf("runbook: parse %q: %w", path, err)
	}

	cfg := applyOverlay(base, envelope)
	runbook := Runbook{
		Overlay: cfg,
		Notes:   strings.TrimSpace(string(body)),
		sets:    envelope.Sets,
	}
	return cfg, runbook, nil
}

func applyOverlay(cfg Config, envelope runbookEnvelope) Config {
	setString(&cfg.TargetLocale, envelope.TargetLocale)
	setString(&cfg.TemplateLocale, envelope.TemplateLocale)
	setString(&cfg.SourceLocale, envelope.SourceLocale)
	setString(&cfg.KoreanLocale, envelope.KoreanLocale)
	if envelope.Workers > 0 {
		cfg.Workers = envelope.Workers
	}

	setString(&cfg.Paths.CommonExportDir, envelope.Paths.CommonExport)
	setString(&cfg.Paths.CommonOutputDir, envelope.Paths.CommonOutput)
	setString(&cfg.Paths.KoreanExportDir, envelope.Paths.KoreanExport)
	setString(&cfg.Paths.TradExportDir, envelope.Paths.TradExport)
	setString(&cfg.Paths.TargetOutputDir, envelope.Paths.TargetOutput)
	setString(&cfg.Paths.LogoDiaSourceDir, envelope.Paths.LogoDiaSource)
	setString(&cfg.Paths.LogoDiaOutputDir, envelope.Paths.LogoDiaOutput)
	setString(&cfg.Paths.TextDiaSourceDir, envelope.Paths.TextDiaSource)
	setString(&cfg.Paths.TextDiaOutputDir, envelope.Paths.TextDiaOutput)
	setString(&cfg.Paths.ReportsDir, envelope.Paths.Reports)

	setBool(&cfg.Features.Verify, envelope.Features.Verify)
	setBool(&cfg.Features.Reports, envelope.Features.Reports)
	setBool(&cfg.Features.CoverageStore, envelope.Features.CoverageStore)
	setBool(&cfg.Features.Incremental, envelope.Features.Incremental)
	setBool(&cfg.Features.Validation, envelope.Features.Validation)

	setString(&cfg.Coverage.Driver, envelope.Coverage.Driver)
	setString(&cfg.Coverage.DSN, envelope.Coverage.DSN)

	setString(&cfg.Logging.Provider, envelope.Logging.Provider)
	setString(&cfg.Logging.Level, envelope.Logging.Level)
	setString(&cfg.Logging.Format, envelope.Logging.Format)

	return cfg
}

func setString(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func setBool(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}
