package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/goliatone/go-localegen/internal/verify"
)

// RenderMarkdown produces a human-readable Markdown digest of a run: overall
// coverage per set plus the verification summaries when available.
func RenderMarkdown(summary RunSummary, structure *verify.StructureCheck, mapping *verify.MappingCheck) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Locale generation run %s\n\n", summary.Label)
	fmt.Fprintf(&b, "- Run ID: `%s`\n", summary.RunID)
	fmt.Fprintf(&b, "- Locale: `%s`\n", summary.Locale)
	fmt.Fprintf(&b, "- Started: %s\n", summary.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Finished: %s\n", summary.FinishedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	if summary.DryRun {
		b.WriteString("- Mode: dry run, no assets written\n")
	}
	b.WriteString("\n## Coverage\n\n")
	b.WriteString("| Set | Files | Fallback files | Words | Copied | Fallback |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, set := range summary.Sets {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %d |\n",
			set.Set, set.Files, set.FilesFallback, set.WordsTotal, set.WordsCopied, set.WordsFallback)
	}

	if structure != nil {
		b.WriteString("\n## Structure check\n\n")
		fmt.Fprintf(&b, "- Files checked: %d\n", structure.Summary.FilesChecked)
		fmt.Fprintf(&b, "- Top-level keys equal: %s\n", checkmark(structure.Summary.AllTopKeysEqual))
		fmt.Fprintf(&b, "- Label counts equal: %s\n", checkmark(structure.Summary.AllLabelCountEqual))
		fmt.Fprintf(&b, "- Label names equal: %s\n", checkmark(structure.Summary.AllLabelNamesEqual))
		fmt.Fprintf(&b, "- Word array lengths equal: %s\n", checkmark(structure.Summary.AllWordLengthsEqual))
	}

	if mapping != nil {
		b.WriteString("\n## Mapping check\n\n")
		fmt.Fprintf(&b, "- Files checked: %d\n", mapping.Summary.FilesChecked)
		fmt.Fprintf(&b, "- Generated: %d\n", mapping.Summary.TargetGenerated)
		fmt.Fprintf(&b, "- Translation source available: %d\n", mapping.Summary.TradAvailable)
	}

	if summary.Notes != "" {
		b.WriteString("\n## Notes\n\n")
		b.WriteString(strings.TrimSpace(summary.Notes))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML converts the Markdown digest to an HTML fragment.
func RenderHTML(summary RunSummary, structure *verify.StructureCheck, mapping *verify.MappingCheck) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	source := RenderMarkdown(summary, structure, mapping)
	if err := md.Convert([]byte(source), &buf); err != nil {
		return nil, fmt.Errorf("report: render html: %w", err)
	}
	return buf.Bytes(), nil
}

func checkmark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
