// Package localegen generates a target-locale JSON asset tree for game text
// exports: template documents provide structure, translation sources provide
// text, and verification reports capture coverage and structural drift.
package localegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-localegen/internal/assets"
	"github.com/goliatone/go-localegen/internal/coveragestore"
	"github.com/goliatone/go-localegen/internal/logging"
	"github.com/goliatone/go-localegen/internal/logging/console"
	"github.com/goliatone/go-localegen/internal/logging/gologger"
	"github.com/goliatone/go-localegen/internal/pipeline"
	"github.com/goliatone/go-localegen/internal/report"
	"github.com/goliatone/go-localegen/internal/validation"
	"github.com/goliatone/go-localegen/internal/verify"
	"github.com/goliatone/go-localegen/pkg/interfaces"
)

// PipelineService exports the generation pipeline contract.
type PipelineService = pipeline.Service

// BuildOptions exports the pipeline run options.
type BuildOptions = pipeline.BuildOptions

// BuildResult exports the pipeline run result.
type BuildResult = pipeline.BuildResult

// CoverageRepository exports the run-history store contract.
type CoverageRepository = coveragestore.Repository

// CoverageRecord exports the run-history record.
type CoverageRecord = coveragestore.Record

// Checker exports the verification service.
type Checker = verify.Checker

// ReportWriter exports the report artifact writer.
type ReportWriter = report.Writer

// Logger exports the logging contract used across the module.
type Logger = interfaces.Logger

// LoggerProvider exports the logger provider contract.
type LoggerProvider = interfaces.LoggerProvider

// Module is the top level runtime facade wiring logging, the pipeline,
// verification, and the coverage store from one Config.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	pipeline pipeline.Service
	checker  *verify.Checker
	reports  *report.Writer
	coverage coveragestore.Repository
	db       *bun.DB
}

// Option overrides a default collaborator during construction.
type Option func(*Module)

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithCoverageRepository replaces the store built from Config.Coverage.
func WithCoverageRepository(repo coveragestore.Repository) Option {
	return func(m *Module) {
		if repo != nil {
			m.coverage = repo
		}
	}
}

// New constructs the module from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if cfg.Features.CoverageStore && m.coverage == nil {
		repo, db, err := newCoverageRepository(cfg.Coverage)
		if err != nil {
			return nil, err
		}
		m.coverage = repo
		m.db = db
	}

	var validator *validation.DocumentValidator
	if cfg.Features.Validation {
		v, err := validation.NewDocumentValidator()
		if err != nil {
			return nil, err
		}
		validator = v
	}

	m.checker = verify.NewChecker(logging.VerifyLogger(m.provider))
	if cfg.Features.Reports {
		m.reports = report.NewWriter(cfg.Paths.ReportsDir, logging.ReportLogger(m.provider))
	}

	m.pipeline = pipeline.NewService(pipeline.Config{
		TargetLocale:     assets.Locale(cfg.TargetLocale),
		TemplateLocale:   assets.Locale(cfg.TemplateLocale),
		SourceLocale:     assets.Locale(cfg.SourceLocale),
		KoreanLocale:     assets.Locale(cfg.KoreanLocale),
		CommonExportDir:  cfg.Paths.CommonExportDir,
		CommonOutputDir:  cfg.Paths.CommonOutputDir,
		KoreanExportDir:  cfg.Paths.KoreanExportDir,
		TradExportDir:    cfg.Paths.TradExportDir,
		TargetOutputDir:  cfg.Paths.TargetOutputDir,
		LogoDiaSourceDir: cfg.Paths.LogoDiaSourceDir,
		LogoDiaOutputDir: cfg.Paths.LogoDiaOutputDir,
		TextDiaSourceDir: cfg.Paths.TextDiaSourceDir,
		TextDiaOutputDir: cfg.Paths.TextDiaOutputDir,
		ReportsDir:       cfg.Paths.ReportsDir,
		Workers:          cfg.Workers,
		Incremental:      cfg.Features.Incremental,
		Verify:           cfg.Features.Verify,
		Reports:          cfg.Features.Reports,
		Validate:         cfg.Features.Validation,
	}, pipeline.Dependencies{
		Checker:   m.checker,
		Reports:   m.reports,
		Coverage:  m.coverage,
		Validator: validator,
		Logger:    logging.PipelineLogger(m.provider),
	})

	return m, nil
}

// Pipeline returns the generation service.
func (m *Module) Pipeline() PipelineService {
	return m.pipeline
}

// Verifier returns the structure and mapping checker.
func (m *Module) Verifier() *Checker {
	return m.checker
}

// Reports returns the report writer, nil when reports are disabled.
func (m *Module) Reports() *ReportWriter {
	return m.reports
}

// Coverage returns the run-history store, nil when disabled.
func (m *Module) Coverage() CoverageRepository {
	return m.coverage
}

// LoggerProvider returns the provider backing the module's loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Logger returns a module logger for the given namespace suffix.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}

// Close releases the coverage database handle when the module owns one.
func (m *Module) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func newLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level := consoleLevel(cfg.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

func newCoverageRepository(cfg CoverageConfig) (coveragestore.Repository, *bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory":
		return coveragestore.NewMemoryRepository(), nil, nil
	case "sqlite":
		db, err := coveragestore.OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		repo := coveragestore.NewBunRepository(db)
		if err := repo.Init(context.Background()); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrCoverageDriverUnknown, cfg.Driver)
	}
}
