package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/goliatone/go-localegen/cmd/localize/internal/bootstrap"
	"github.com/goliatone/go-localegen/internal/report"
	"github.com/goliatone/go-localegen/internal/verify"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runReport(os.Args[1:]); err != nil {
		log.Fatalf("localize report: %v", err)
	}
}

func runReport(args []string) error {
	fs := flag.NewFlagSet("localize-report", flag.ExitOnError)
	root := fs.String("root", ".", "Root directory containing the export trees")
	coverageDSN := fs.String("coverage-dsn", "", "SQLite path of the run-history store; lists recent runs when set")
	limit := fs.Int("limit", 10, "Maximum run-history rows to list")
	htmlOut := fs.String("html", "", "Render the latest run summary to this HTML file (- for stdout)")
	logLevel := fs.String("log-level", "warn", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Root:        *root,
		CoverageDSN: *coverageDSN,
		LogLevel:    *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	if *coverageDSN != "" {
		return printRecentRuns(module, *limit)
	}

	reportsDir := module.Config.Paths.ReportsDir
	summary, err := report.ReadRunSummary(reportsDir)
	if err != nil {
		return err
	}

	// Check artifacts are optional; a run with verification disabled has none.
	var structure *verify.StructureCheck
	if check, err := report.ReadStructureCheck(reportsDir); err == nil {
		structure = &check
	}
	var mapping *verify.MappingCheck
	if check, err := report.ReadMappingCheck(reportsDir); err == nil {
		mapping = &check
	}

	if *htmlOut != "" {
		return writeHTML(*htmlOut, summary, structure, mapping)
	}

	fmt.Print(report.RenderMarkdown(summary, structure, mapping))
	return nil
}

func printRecentRuns(module *bootstrap.Module, limit int) error {
	store := module.Module.Coverage()
	if store == nil {
		return fmt.Errorf("coverage store not configured")
	}

	records, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tLABEL\tLOCALE\tFILES\tFALLBACK\tWORDS\tCOPIED\tCLEAN")
	for _, record := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%t\n",
			record.StartedAt.Format("2006-01-02 15:04"),
			record.Label,
			record.Locale,
			record.Files,
			record.FilesFallback,
			record.WordsTotal,
			record.WordsCopied,
			record.StructureClean,
		)
	}
	return w.Flush()
}

func writeHTML(path string, summary report.RunSummary, structure *verify.StructureCheck, mapping *verify.MappingCheck) error {
	html, err := report.RenderHTML(summary, structure, mapping)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(html)
		return err
	}
	return os.WriteFile(path, html, 0o644)
}
