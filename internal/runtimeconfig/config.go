// Package runtimeconfig aggregates the directory layout, feature flags, and
// provider bindings the localegen module is built from.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var ErrTemplateDirRequired = errors.New("localegen config: common export directory is required")
var ErrCommonOutputDirRequired = errors.New("localegen config: common output directory is required")
var ErrKoreanDirRequired = errors.New("localegen config: korean export directory is required")
var ErrTradDirRequired = errors.New("localegen config: trad chinese export directory is required")
var ErrTargetOutputDirRequired = errors.New("localegen config: target export directory is required")
var ErrReportsDirRequired = errors.New("localegen config: reports directory is required when reports are enabled")
var ErrIncrementalRequiresReports = errors.New("localegen config: incremental builds require the reports directory for the manifest")
var ErrWorkersInvalid = errors.New("localegen config: workers must be zero or positive")
var ErrCoverageDriverUnknown = errors.New("localegen config: coverage driver is invalid")
var ErrCoverageDSNRequired = errors.New("localegen config: coverage DSN is required for the sqlite driver")
var ErrLoggingProviderRequired = errors.New("localegen config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("localegen config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("localegen config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("localegen config: logging format is invalid")

// Config aggregates feature flags and bindings for the localegen module.
// Fields use simple types so host applications can populate them from any
// source (flags, runbooks, env).
type Config struct {
	TargetLocale   string
	TemplateLocale string
	SourceLocale   string
	KoreanLocale   string
	Paths          PathConfig
	Workers        int
	Features       Features
	Coverage       CoverageConfig
	Logging        LoggingConfig
}

// PathConfig captures the export-tree layout the pipeline reads and writes.
type PathConfig struct {
	CommonExportDir  string
	CommonOutputDir  string
	KoreanExportDir  string
	TradExportDir    string
	TargetOutputDir  string
	LogoDiaSourceDir string
	LogoDiaOutputDir string
	TextDiaSourceDir string
	TextDiaOutputDir string
	ReportsDir       string
}

// Features toggles module functionality.
type Features struct {
	Verify        bool
	Reports       bool
	CoverageStore bool
	Incremental   bool
	Validation    bool
}

// CoverageConfig selects the run-history backend.
type CoverageConfig struct {
	Driver string
	DSN    string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig reproduces the layout of the game-data repository the
// pipeline was written against.
func DefaultConfig() Config {
	return Config{
		TargetLocale:   "si",
		TemplateLocale: "english",
		SourceLocale:   "trad_chinese",
		KoreanLocale:   "korean",
		Paths: PathConfig{
			CommonExportDir:  "common_msbt_Export",
			CommonOutputDir:  "common_si_msbt_Export",
			KoreanExportDir:  "korean_Export",
			TradExportDir:    "trad_chinese_Export",
			TargetOutputDir:  "si_Export",
			LogoDiaSourceDir: "logo_dia_ko_Export",
			LogoDiaOutputDir: "logo_dia/si",
			TextDiaSourceDir: "text_dia_ko_op_pushbutton_Export",
			TextDiaOutputDir: "text_dia/si",
			ReportsDir:       "reports",
		},
		Workers: 0,
		Features: Features{
			Verify:  true,
			Reports: true,
		},
		Coverage: CoverageConfig{
			Driver: "memory",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Paths.CommonExportDir) == "" {
		return ErrTemplateDirRequired
	}
	if strings.TrimSpace(cfg.Paths.CommonOutputDir) == "" {
		return ErrCommonOutputDirRequired
	}
	if strings.TrimSpace(cfg.Paths.KoreanExportDir) == "" {
		return ErrKoreanDirRequired
	}
	if strings.TrimSpace(cfg.Paths.TradExportDir) == "" {
		return ErrTradDirRequired
	}
	if strings.TrimSpace(cfg.Paths.TargetOutputDir) == "" {
		return ErrTargetOutputDirRequired
	}
	if cfg.Workers < 0 {
		return ErrWorkersInvalid
	}
	if cfg.Features.Reports && strings.TrimSpace(cfg.Paths.ReportsDir) == "" {
		return ErrReportsDirRequired
	}
	if cfg.Features.Incremental && strings.TrimSpace(cfg.Paths.ReportsDir) == "" {
		return ErrIncrementalRequiresReports
	}
	if cfg.Features.CoverageStore {
		driver := strings.ToLower(strings.TrimSpace(cfg.Coverage.Driver))
		switch driver {
		case "", "memory":
		case "sqlite":
			if strings.TrimSpace(cfg.Coverage.DSN) == "" {
				return ErrCoverageDSNRequired
			}
		default:
			return fmt.Errorf("%w: %s", ErrCoverageDriverUnknown, driver)
		}
	}
	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
