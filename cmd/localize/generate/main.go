package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-localegen/cmd/localize/internal/bootstrap"
	localizecmd "github.com/goliatone/go-localegen/internal/commands/localize"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runGenerate(os.Args[1:]); err != nil {
		log.Fatalf("localize generate: %v", err)
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("localize-generate", flag.ExitOnError)
	root := fs.String("root", ".", "Root directory containing the export trees")
	sets := fs.String("sets", "", "Comma separated build sets to run (common,movie,korean); empty runs all")
	dryRun := fs.Bool("dry-run", false, "Collect diagnostics without writing any output")
	force := fs.Bool("force", false, "Rebuild every file, ignoring the incremental manifest")
	workers := fs.Int("workers", 0, "Worker count for the merge pool (0 uses all CPUs)")
	incremental := fs.Bool("incremental", false, "Skip files whose inputs are unchanged since the last run")
	validate := fs.Bool("validate", false, "Schema-validate template documents before merging")
	runbook := fs.String("runbook", "", "Markdown runbook whose frontmatter overlays the configuration")
	coverageDSN := fs.String("coverage-dsn", "", "SQLite path for the run-history store (empty disables persistence)")
	logProvider := fs.String("log-provider", "", "Logging provider (console or gologger)")
	logLevel := fs.String("log-level", "", "Minimum log level")
	logFormat := fs.String("log-format", "", "Log format for the gologger provider (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Root:        *root,
		RunbookPath: *runbook,
		Workers:     *workers,
		Incremental: *incremental,
		Validation:  *validate,
		CoverageDSN: *coverageDSN,
		LogProvider: *logProvider,
		LogLevel:    *logLevel,
		LogFormat:   *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	runSets := bootstrap.SplitList(*sets)
	if len(runSets) == 0 {
		runSets = module.Runbook.Sets()
	}

	handler := localizecmd.NewGenerateHandler(module.Module.Pipeline(), module.Logger)
	return handler.Execute(context.Background(), localizecmd.GenerateCommand{
		Sets:   runSets,
		DryRun: *dryRun,
		Force:  *force,
		Notes:  module.Runbook.Notes,
	})
}
