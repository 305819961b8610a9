package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-localegen/cmd/localize/internal/bootstrap"
	"github.com/goliatone/go-localegen/internal/assets"
	localizecmd "github.com/goliatone/go-localegen/internal/commands/localize"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runVerify(os.Args[1:]); err != nil {
		log.Fatalf("localize verify: %v", err)
	}
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("localize-verify", flag.ExitOnError)
	root := fs.String("root", ".", "Root directory containing the export trees")
	skipReports := fs.Bool("skip-reports", false, "Print findings without persisting report files")
	runbook := fs.String("runbook", "", "Markdown runbook whose frontmatter overlays the configuration")
	logProvider := fs.String("log-provider", "", "Logging provider (console or gologger)")
	logLevel := fs.String("log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Root:        *root,
		RunbookPath: *runbook,
		LogProvider: *logProvider,
		LogLevel:    *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	cfg := module.Config
	handler := localizecmd.NewVerifyHandler(
		module.Module.Verifier(),
		module.Module.Reports(),
		localizecmd.VerifyTargets{
			CommonExportDir: cfg.Paths.CommonExportDir,
			CommonOutputDir: cfg.Paths.CommonOutputDir,
			KoreanExportDir: cfg.Paths.KoreanExportDir,
			TargetOutputDir: cfg.Paths.TargetOutputDir,
			TradExportDir:   cfg.Paths.TradExportDir,
			TemplateLocale:  assets.Locale(cfg.TemplateLocale),
			TargetLocale:    assets.Locale(cfg.TargetLocale),
			SourceLocale:    assets.Locale(cfg.SourceLocale),
			KoreanLocale:    assets.Locale(cfg.KoreanLocale),
		},
		module.Logger,
	)
	return handler.Execute(context.Background(), localizecmd.VerifyCommand{
		SkipReports: *skipReports,
	})
}
