// Package verify performs the structural-consistency checks run after a
// generation pass: generated documents must mirror their template's key set,
// label list, and word-array shape exactly.
package verify

import (
	"slices"

	"github.com/goliatone/go-localegen/internal/assets"
)

// MissingLabel identifies a template label the generated document lacks.
type MissingLabel struct {
	Index     int    `json:"index"`
	LabelName string `json:"labelName"`
}

// WordLengthMismatch identifies a label whose word array diverged in length.
type WordLengthMismatch struct {
	Index       int `json:"index"`
	TargetLen   int `json:"si_len"`
	TemplateLen int `json:"en_len"`
}

// StructureReport captures the structural comparison of one generated file
// against its template.
type StructureReport struct {
	TargetFile            string               `json:"si_file"`
	TemplateFile          string               `json:"english_file"`
	TopKeysEqual          bool                 `json:"top_keys_equal"`
	LabelCountEqual       bool                 `json:"label_count_equal"`
	LabelNamesEqual       bool                 `json:"label_names_equal"`
	WordLengthsEqual      bool                 `json:"word_arrays_len_equal"`
	MissingLabels         []MissingLabel       `json:"missing_labels"`
	MismatchedWordLengths []WordLengthMismatch `json:"mismatched_word_lengths"`
}

// Clean reports whether every structural check passed.
func (r StructureReport) Clean() bool {
	return r.TopKeysEqual && r.LabelCountEqual && r.LabelNamesEqual && r.WordLengthsEqual
}

// CompareStructure checks a generated document against its template: equal
// top-level key sets, equal label counts, matching label names by position,
// and equal word-array lengths per label. Text differences are expected and
// never reported.
func CompareStructure(target, template *assets.Document, targetFile, templateFile string) StructureReport {
	report := StructureReport{
		TargetFile:            targetFile,
		TemplateFile:          templateFile,
		TopKeysEqual:          slices.Equal(target.TopLevelKeys(), template.TopLevelKeys()),
		LabelNamesEqual:       true,
		WordLengthsEqual:      true,
		MissingLabels:         []MissingLabel{},
		MismatchedWordLengths: []WordLengthMismatch{},
	}

	targetLabels := target.Labels()
	templateLabels := template.Labels()
	report.LabelCountEqual = len(targetLabels) == len(templateLabels)

	for i, templateLabel := range templateLabels {
		if i >= len(targetLabels) {
			report.LabelNamesEqual = false
			report.MissingLabels = append(report.MissingLabels, MissingLabel{
				Index:     i,
				LabelName: templateLabel.Name(),
			})
			continue
		}
		targetLabel := targetLabels[i]
		if targetLabel.Name() != templateLabel.Name() {
			report.LabelNamesEqual = false
		}

		targetWords := targetLabel.Words()
		templateWords := templateLabel.Words()
		if len(targetWords) != len(templateWords) {
			report.WordLengthsEqual = false
			report.MismatchedWordLengths = append(report.MismatchedWordLengths, WordLengthMismatch{
				Index:       i,
				TargetLen:   len(targetWords),
				TemplateLen: len(templateWords),
			})
		}
	}

	return report
}
