// Package merge builds target-locale message documents from a structural
// template and a preferred translation source. Text is copied verbatim; the
// template supplies every structural field and any text the source lacks.
package merge

import (
	"errors"

	"github.com/goliatone/go-localegen/internal/assets"
)

// ErrTemplateRequired indicates ApplyTranslations was called without a template.
var ErrTemplateRequired = errors.New("merge: template document is required")

// FileCoverage records how much of one generated file came from the preferred
// source versus falling back to the template text.
type FileCoverage struct {
	File          string   `json:"file"`
	SourceMissing bool     `json:"source_missing"`
	Labels        int      `json:"labels"`
	MissingLabels []string `json:"missing_labels,omitempty"`
	WordsTotal    int      `json:"words_total"`
	WordsCopied   int      `json:"words_copied"`
	WordsFallback int      `json:"words_fallback"`
}

// FallbackRatio returns the fraction of words that kept template text.
func (c FileCoverage) FallbackRatio() float64 {
	if c.WordsTotal == 0 {
		return 0
	}
	return float64(c.WordsFallback) / float64(c.WordsTotal)
}

// ApplyTranslations clones the template, renames its asset identifier from
// the template locale to the target locale, and replaces word text with the
// source's where a counterpart exists. A nil source keeps every template text
// (the whole file falls back) but still renames the asset.
//
// Labels are aligned by labelName when the source has a matching label and by
// position otherwise; words are aligned by position. Only the str field is
// touched, so structural fields (strWidth, tag arrays, style info) always
// come from the template.
func ApplyTranslations(template, source *assets.Document, templateLocale, targetLocale assets.Locale) (*assets.Document, FileCoverage, error) {
	if template == nil {
		return nil, FileCoverage{}, ErrTemplateRequired
	}

	out := template.Clone()
	out.SetName(assets.RenameAsset(template.Name(), templateLocale, targetLocale))

	coverage := FileCoverage{SourceMissing: source == nil}

	templateLabels := out.Labels()
	coverage.Labels = len(templateLabels)

	var (
		sourceLabels []assets.Label
		byName       map[string]assets.Label
	)
	if source != nil {
		sourceLabels = source.Labels()
		byName = make(map[string]assets.Label, len(sourceLabels))
		for _, label := range sourceLabels {
			if name := label.Name(); name != "" {
				byName[name] = label
			}
		}
	}

	for i, label := range templateLabels {
		words := label.Words()
		coverage.WordsTotal += len(words)

		sourceLabel, ok := resolveLabel(label, i, sourceLabels, byName)
		if !ok {
			coverage.WordsFallback += len(words)
			if source != nil {
				coverage.MissingLabels = append(coverage.MissingLabels, label.Name())
			}
			continue
		}

		sourceWords := sourceLabel.Words()
		for j, word := range words {
			if j < len(sourceWords) {
				// A source entry without a str field keeps the template text.
				if text, ok := sourceWords[j].LookupText(); ok {
					word.SetText(text)
					coverage.WordsCopied++
					continue
				}
			}
			coverage.WordsFallback++
		}
	}

	return out, coverage, nil
}

func resolveLabel(label assets.Label, index int, sourceLabels []assets.Label, byName map[string]assets.Label) (assets.Label, bool) {
	if name := label.Name(); name != "" {
		if match, ok := byName[name]; ok {
			return match, true
		}
	}
	if index < len(sourceLabels) {
		return sourceLabels[index], true
	}
	return assets.Label{}, false
}
