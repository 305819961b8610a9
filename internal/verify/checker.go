package verify

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/goliatone/go-localegen/internal/assets"
	"github.com/goliatone/go-localegen/internal/logging"
	"github.com/goliatone/go-localegen/pkg/interfaces"
)

// StructureSummary aggregates per-file structure reports.
type StructureSummary struct {
	FilesChecked        int  `json:"files_checked"`
	AllTopKeysEqual     bool `json:"all_top_keys_equal"`
	AllLabelCountEqual  bool `json:"all_label_count_equal"`
	AllLabelNamesEqual  bool `json:"all_label_names_equal"`
	AllWordLengthsEqual bool `json:"all_word_arrays_len_equal"`
}

// StructureCheck is the structure-report artifact payload.
type StructureCheck struct {
	Summary StructureSummary  `json:"summary"`
	Details []StructureReport `json:"details"`
}

// MappingReport records source/target/translation availability for one file.
type MappingReport struct {
	SourceFile  string `json:"korean_file"`
	TargetExist bool   `json:"si_exists"`
	TradExist   bool   `json:"trad_exists"`
}

// MappingSummary aggregates per-file mapping reports.
type MappingSummary struct {
	FilesChecked    int `json:"files_checked"`
	TargetGenerated int `json:"si_generated"`
	TradAvailable   int `json:"trad_available"`
}

// MappingCheck is the mapping-report artifact payload.
type MappingCheck struct {
	Summary MappingSummary  `json:"summary"`
	Details []MappingReport `json:"details"`
}

// Checker walks locale trees and produces report payloads. Findings are
// report content, never errors; hard errors (unreadable files) are collected
// and joined so one bad file does not abort the pass.
type Checker struct {
	logger interfaces.Logger
}

// NewChecker constructs a checker. A nil logger defaults to no-op.
func NewChecker(logger interfaces.Logger) *Checker {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Checker{logger: logger}
}

// CheckStructure compares every generated target file under targetDir with
// its template counterpart under templateDir. Templates without a generated
// counterpart are skipped (generation coverage is the mapping check's job).
func (c *Checker) CheckStructure(ctx context.Context, templateDir, targetDir string, templateLocale, targetLocale assets.Locale) (StructureCheck, error) {
	check := StructureCheck{
		Summary: StructureSummary{
			AllTopKeysEqual:     true,
			AllLabelCountEqual:  true,
			AllLabelNamesEqual:  true,
			AllWordLengthsEqual: true,
		},
		Details: []StructureReport{},
	}

	names, err := assets.ListLocaleFiles(templateDir, templateLocale)
	if err != nil {
		return check, err
	}

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return check, err
		}

		suffix, ok := templateLocale.Suffix(name)
		if !ok {
			continue
		}
		targetName := targetLocale.FileName(suffix)
		targetPath := filepath.Join(targetDir, targetName)
		if !assets.Exists(targetPath) {
			continue
		}

		template, err := assets.Load(filepath.Join(templateDir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		target, err := assets.Load(targetPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		report := CompareStructure(target, template, targetName, name)
		check.Details = append(check.Details, report)
		check.Summary.FilesChecked++
		check.Summary.AllTopKeysEqual = check.Summary.AllTopKeysEqual && report.TopKeysEqual
		check.Summary.AllLabelCountEqual = check.Summary.AllLabelCountEqual && report.LabelCountEqual
		check.Summary.AllLabelNamesEqual = check.Summary.AllLabelNamesEqual && report.LabelNamesEqual
		check.Summary.AllWordLengthsEqual = check.Summary.AllWordLengthsEqual && report.WordLengthsEqual

		if !report.Clean() {
			logging.WithAssetContext(c.logger, targetPath, targetLocale.String(), "").
				Warn("verify.structure.mismatch",
					"top_keys_equal", report.TopKeysEqual,
					"label_count_equal", report.LabelCountEqual,
					"label_names_equal", report.LabelNamesEqual,
					"word_arrays_len_equal", report.WordLengthsEqual,
				)
		}
	}

	return check, errors.Join(errs...)
}

// CheckMapping records, for every source file under sourceDir, whether the
// generated target and the preferred translation source exist. The manifest
// file named exactly <sourceLocale>.json is skipped.
func (c *Checker) CheckMapping(ctx context.Context, sourceDir, targetDir, tradDir string, sourceLocale, targetLocale, tradLocale assets.Locale) (MappingCheck, error) {
	check := MappingCheck{Details: []MappingReport{}}

	names, err := assets.ListJSONFiles(sourceDir)
	if err != nil {
		return check, err
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return check, err
		}
		// korean.json is a bundle manifest, not a message file.
		if name == sourceLocale.String()+".json" {
			continue
		}

		suffix, ok := sourceLocale.Suffix(name)
		if !ok {
			suffix = name
		}

		report := MappingReport{
			SourceFile:  name,
			TargetExist: assets.Exists(assets.SiblingPath(targetDir, targetLocale, suffix)),
			TradExist:   assets.Exists(assets.SiblingPath(tradDir, tradLocale, suffix)),
		}
		check.Details = append(check.Details, report)
		check.Summary.FilesChecked++
		if report.TargetExist {
			check.Summary.TargetGenerated++
		}
		if report.TradExist {
			check.Summary.TradAvailable++
		}
	}

	return check, nil
}
