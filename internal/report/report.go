// Package report writes the JSON artifacts produced after a generation run:
// the structural-consistency check, the source/translation mapping check, and
// a run summary that can also be rendered as Markdown or HTML.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-localegen/internal/logging"
	"github.com/goliatone/go-localegen/internal/verify"
	"github.com/goliatone/go-localegen/pkg/interfaces"
)

// Artifact file names under the reports directory.
const (
	StructureCheckFileName = "common_structure_check.json"
	MappingCheckFileName   = "korean_si_mapping_check.json"
	RunSummaryFileName     = "run_summary.json"
)

// SetCoverage aggregates merge coverage for one build set.
type SetCoverage struct {
	Set           string `json:"set"`
	Files         int    `json:"files"`
	FilesFallback int    `json:"files_fallback"`
	WordsTotal    int    `json:"words_total"`
	WordsCopied   int    `json:"words_copied"`
	WordsFallback int    `json:"words_fallback"`
}

// RunSummary describes one generation run end to end.
type RunSummary struct {
	RunID      uuid.UUID     `json:"run_id"`
	Label      string        `json:"label"`
	Locale     string        `json:"locale"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	DryRun     bool          `json:"dry_run,omitempty"`
	Notes      string        `json:"notes,omitempty"`
	Sets       []SetCoverage `json:"sets"`
}

// RunLabel derives a file-safe label for a run from its locale and start
// time. Normalization failures fall back to the raw timestamp form.
func RunLabel(locale string, startedAt time.Time) string {
	raw := fmt.Sprintf("%s %s", locale, startedAt.UTC().Format("2006-01-02 15:04:05"))
	label, err := slug.Normalize(raw)
	if err != nil || label == "" {
		return startedAt.UTC().Format("20060102-150405")
	}
	return label
}

// Writer persists report artifacts under a single directory.
type Writer struct {
	dir    string
	logger interfaces.Logger
}

// NewWriter constructs a report writer. A nil logger defaults to no-op.
func NewWriter(dir string, logger interfaces.Logger) *Writer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the reports directory.
func (w *Writer) Dir() string { return w.dir }

// WriteStructureCheck persists the structure-check artifact with details
// sorted by generated file name for deterministic output.
func (w *Writer) WriteStructureCheck(check verify.StructureCheck) error {
	sort.Slice(check.Details, func(i, j int) bool {
		return check.Details[i].TargetFile < check.Details[j].TargetFile
	})
	return w.write(StructureCheckFileName, check)
}

// WriteMappingCheck persists the mapping-check artifact with details sorted
// by source file name.
func (w *Writer) WriteMappingCheck(check verify.MappingCheck) error {
	sort.Slice(check.Details, func(i, j int) bool {
		return check.Details[i].SourceFile < check.Details[j].SourceFile
	})
	return w.write(MappingCheckFileName, check)
}

// WriteRunSummary persists the run summary with sets sorted by name.
func (w *Writer) WriteRunSummary(summary RunSummary) error {
	sort.Slice(summary.Sets, func(i, j int) bool {
		return summary.Sets[i].Set < summary.Sets[j].Set
	})
	return w.write(RunSummaryFileName, summary)
}

func (w *Writer) write(name string, payload any) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("report: ensure dir %q: %w", w.dir, err)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("report: encode %q: %w", name, err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("report: write %q: %w", path, err)
	}

	w.logger.Debug("report.artifact.written", "artifact", name, "path", path)
	return nil
}

// ReadRunSummary loads a previously written run summary from dir.
func ReadRunSummary(dir string) (RunSummary, error) {
	var summary RunSummary
	if err := readArtifact(dir, RunSummaryFileName, &summary); err != nil {
		return RunSummary{}, err
	}
	return summary, nil
}

// ReadStructureCheck loads a previously written structure-check artifact.
func ReadStructureCheck(dir string) (verify.StructureCheck, error) {
	var check verify.StructureCheck
	if err := readArtifact(dir, StructureCheckFileName, &check); err != nil {
		return verify.StructureCheck{}, err
	}
	return check, nil
}

// ReadMappingCheck loads a previously written mapping-check artifact.
func ReadMappingCheck(dir string) (verify.MappingCheck, error) {
	var check verify.MappingCheck
	if err := readArtifact(dir, MappingCheckFileName, &check); err != nil {
		return verify.MappingCheck{}, err
	}
	return check, nil
}

func readArtifact(dir, name string, payload any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("report: read %q: %w", path, err)
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return fmt.Errorf("report: decode %q: %w", path, err)
	}
	return nil
}
