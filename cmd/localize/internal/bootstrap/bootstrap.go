// Package bootstrap builds a configured localegen module for the localize
// CLIs from flag-level options.
package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-localegen"
	"github.com/goliatone/go-localegen/pkg/interfaces"
)

// Options captures configuration shared by localize CLI bootstraps.
type Options struct {
	// Root prefixes every configured directory; defaults to the working dir.
	Root string
	// RunbookPath points at a Markdown runbook whose frontmatter overlays
	// the configuration.
	RunbookPath    string
	Workers        int
	Incremental    bool
	Validation     bool
	CoverageDriver string
	CoverageDSN    string
	LogProvider    string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the localegen module with the pieces CLIs need directly.
type Module struct {
	Module  *localegen.Module
	Config  localegen.Config
	Runbook localegen.Runbook
	Logger  localegen.Logger
}

// BuildModule constructs a localegen module configured from the options.
func BuildModule(opts Options) (*Module, error) {
	cfg := localegen.DefaultConfig()

	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	cfg.Features.Incremental = opts.Incremental
	cfg.Features.Validation = opts.Validation

	if driver := strings.TrimSpace(opts.CoverageDriver); driver != "" {
		cfg.Features.CoverageStore = true
		cfg.Coverage.Driver = driver
	}
	if dsn := strings.TrimSpace(opts.CoverageDSN); dsn != "" {
		cfg.Features.CoverageStore = true
		cfg.Coverage.DSN = dsn
		if strings.TrimSpace(cfg.Coverage.Driver) == "" || cfg.Coverage.Driver == "memory" {
			cfg.Coverage.Driver = "sqlite"
		}
	}
	if provider := strings.TrimSpace(opts.LogProvider); provider != "" {
		cfg.Logging.Provider = provider
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}

	var runbook localegen.Runbook
	if path := strings.TrimSpace(opts.RunbookPath); path != "" {
		overlaid, loaded, err := localegen.LoadRunbook(path, cfg)
		if err != nil {
			return nil, err
		}
		cfg = overlaid
		runbook = loaded
	}

	if root := strings.TrimSpace(opts.Root); root != "" && root != "." {
		cfg.Paths = applyRoot(cfg.Paths, root)
	}

	moduleOpts := []localegen.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, localegen.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := localegen.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise localegen module: %w", err)
	}

	return &Module{
		Module:  module,
		Config:  cfg,
		Runbook: runbook,
		Logger:  module.Logger("localegen.cli"),
	}, nil
}

func applyRoot(paths localegen.PathConfig, root string) localegen.PathConfig {
	paths.CommonExportDir = joinRoot(root, paths.CommonExportDir)
	paths.CommonOutputDir = joinRoot(root, paths.CommonOutputDir)
	paths.KoreanExportDir = joinRoot(root, paths.KoreanExportDir)
	paths.TradExportDir = joinRoot(root, paths.TradExportDir)
	paths.TargetOutputDir = joinRoot(root, paths.TargetOutputDir)
	paths.LogoDiaSourceDir = joinRoot(root, paths.LogoDiaSourceDir)
	paths.LogoDiaOutputDir = joinRoot(root, paths.LogoDiaOutputDir)
	paths.TextDiaSourceDir = joinRoot(root, paths.TextDiaSourceDir)
	paths.TextDiaOutputDir = joinRoot(root, paths.TextDiaOutputDir)
	paths.ReportsDir = joinRoot(root, paths.ReportsDir)
	return paths
}

func joinRoot(root, path string) string {
	if strings.TrimSpace(path) == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
