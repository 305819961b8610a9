package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-localegen/internal/verify"
)

func TestRunLabel(t *testing.T) {
	startedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	label := RunLabel("si", startedAt)
	if label == "" {
		t.Fatal("RunLabel() returned empty label")
	}
	if !strings.HasPrefix(label, "si-2026-03-14") {
		t.Fatalf("RunLabel() = %q, want si-2026-03-14 prefix", label)
	}
	if strings.ContainsAny(label, " :") {
		t.Fatalf("RunLabel() = %q, contains unsafe characters", label)
	}
	if again := RunLabel("si", startedAt); again != label {
		t.Fatalf("RunLabel() not deterministic: %q vs %q", label, again)
	}
}

func TestWriteRunSummary_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(filepath.Join(dir, "reports"), nil)

	summary := RunSummary{
		RunID:      uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962"),
		Label:      "si-2026-03-14-09-26-53",
		Locale:     "si",
		StartedAt:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		FinishedAt: time.Date(2026, 3, 14, 9, 27, 2, 0, time.UTC),
		Notes:      "nightly run",
		Sets: []SetCoverage{
			{Set: "movie", Files: 2, WordsTotal: 10, WordsCopied: 10},
			{Set: "common", Files: 40, FilesFallback: 3, WordsTotal: 900, WordsCopied: 870, WordsFallback: 30},
		},
	}

	if err := writer.WriteRunSummary(summary); err != nil {
		t.Fatalf("WriteRunSummary() error = %v", err)
	}

	loaded, err := ReadRunSummary(writer.Dir())
	if err != nil {
		t.Fatalf("ReadRunSummary() error = %v", err)
	}
	if loaded.RunID != summary.RunID || loaded.Label != summary.Label {
		t.Fatalf("loaded = %+v", loaded)
	}
	if len(loaded.Sets) != 2 || loaded.Sets[0].Set != "common" || loaded.Sets[1].Set != "movie" {
		t.Fatalf("sets not sorted: %+v", loaded.Sets)
	}
	if !loaded.StartedAt.Equal(summary.StartedAt) {
		t.Fatalf("StartedAt = %v", loaded.StartedAt)
	}
}

func TestWriteStructureCheck_SortsDetails(t *testing.T) {
	writer := NewWriter(t.TempDir(), nil)

	check := verify.StructureCheck{
		Summary: verify.StructureSummary{FilesChecked: 2, AllTopKeysEqual: true},
		Details: []verify.StructureReport{
			{TargetFile: "si_zz.json", TemplateFile: "english_zz.json"},
			{TargetFile: "si_aa.json", TemplateFile: "english_aa.json"},
		},
	}
	if err := writer.WriteStructureCheck(check); err != nil {
		t.Fatalf("WriteStructureCheck() error = %v", err)
	}

	loaded, err := ReadStructureCheck(writer.Dir())
	if err != nil {
		t.Fatalf("ReadStructureCheck() error = %v", err)
	}
	if loaded.Details[0].TargetFile != "si_aa.json" || loaded.Details[1].TargetFile != "si_zz.json" {
		t.Fatalf("details not sorted: %+v", loaded.Details)
	}
	if loaded.Summary.FilesChecked != 2 {
		t.Fatalf("summary = %+v", loaded.Summary)
	}
}

func TestWriteMappingCheck_NoHTMLEscape(t *testing.T) {
	writer := NewWriter(t.TempDir(), nil)

	check := verify.MappingCheck{
		Summary: verify.MappingSummary{FilesChecked: 1},
		Details: []verify.MappingReport{
			{SourceFile: "korean_ss_monsname.json", TargetExist: true},
		},
	}
	if err := writer.WriteMappingCheck(check); err != nil {
		t.Fatalf("WriteMappingCheck() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(writer.Dir(), MappingCheckFileName))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if strings.Contains(string(data), `\u003c`) {
		t.Fatal("artifact contains HTML-escaped sequences")
	}
	if !strings.Contains(string(data), `"korean_file": "korean_ss_monsname.json"`) {
		t.Fatalf("artifact missing detail:\n%s", data)
	}
}

func TestReadRunSummary_Missing(t *testing.T) {
	if _, err := ReadRunSummary(t.TempDir()); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestRenderMarkdown(t *testing.T) {
	summary := RunSummary{
		Label:  "si-2026-03-14-09-26-53",
		Locale: "si",
		Notes:  "spot check after asset drop",
		Sets: []SetCoverage{
			{Set: "common", Files: 40, FilesFallback: 3, WordsTotal: 900, WordsCopied: 870, WordsFallback: 30},
		},
	}
	structure := &verify.StructureCheck{
		Summary: verify.StructureSummary{
			FilesChecked:        40,
			AllTopKeysEqual:     true,
			AllLabelCountEqual:  true,
			AllLabelNamesEqual:  true,
			AllWordLengthsEqual: true,
		},
	}
	mapping := &verify.MappingCheck{
		Summary: verify.MappingSummary{FilesChecked: 42, TargetGenerated: 40, TradAvailable: 39},
	}

	md := RenderMarkdown(summary, structure, mapping)

	for _, want := range []string{
		"si-2026-03-14-09-26-53",
		"| common |",
		"spot check after asset drop",
		"40",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	summary := RunSummary{
		Label:  "si-run",
		Locale: "si",
		Sets:   []SetCoverage{{Set: "movie", Files: 2, WordsTotal: 4, WordsCopied: 4}},
	}

	html, err := RenderHTML(summary, nil, nil)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Fatalf("expected rendered table:\n%s", html)
	}
	if !strings.Contains(string(html), "movie") {
		t.Fatalf("expected set row:\n%s", html)
	}
}
