package merge

import (
	"strings"

	"github.com/goliatone/go-localegen/internal/assets"
)

// shortCode maps locale prefixes to the two-letter directory code used by
// format_msbt container paths (assets/format_msbt/<code>/<locale>/<locale>_*).
var shortCode = map[assets.Locale]string{
	assets.LocaleEnglish:     "en",
	assets.LocaleKorean:      "ko",
	assets.LocaleTradChinese: "tr",
	assets.LocaleSimpChinese: "si",
}

// RewriteLocaleTokens rewrites locale identifiers embedded in a document from
// one locale to another: the m_Name and m_AssetBundleName fields (exact match
// or prefixed form) and format_msbt container paths anywhere in the document.
// It returns the number of fields changed.
//
// The target naming is always the current scheme; legacy alternates are never
// emitted.
func RewriteLocaleTokens(doc *assets.Document, from, to assets.Locale) int {
	if doc == nil {
		return 0
	}

	changed := 0
	if next, ok := rewriteIdentifier(doc.Name(), from, to); ok {
		doc.SetName(next)
		changed++
	}
	if next, ok := rewriteIdentifier(doc.BundleName(), from, to); ok {
		doc.SetBundleName(next)
		changed++
	}
	changed += rewritePathsIn(doc.Raw(), from, to)
	return changed
}

func rewriteIdentifier(value string, from, to assets.Locale) (string, bool) {
	switch {
	case value == "":
		return "", false
	case value == from.String():
		return to.String(), true
	case strings.HasPrefix(value, from.Prefix()):
		return to.FileName(strings.TrimPrefix(value, from.Prefix())), true
	default:
		return "", false
	}
}

func rewritePathsIn(value any, from, to assets.Locale) int {
	switch typed := value.(type) {
	case map[string]any:
		changed := 0
		for key, entry := range typed {
			if text, ok := entry.(string); ok {
				if next, ok := rewriteContainerPath(text, from, to); ok {
					typed[key] = next
					changed++
				}
				continue
			}
			changed += rewritePathsIn(entry, from, to)
		}
		return changed
	case []any:
		changed := 0
		for i, entry := range typed {
			if text, ok := entry.(string); ok {
				if next, ok := rewriteContainerPath(text, from, to); ok {
					typed[i] = next
					changed++
				}
				continue
			}
			changed += rewritePathsIn(entry, from, to)
		}
		return changed
	default:
		return 0
	}
}

func rewriteContainerPath(value string, from, to assets.Locale) (string, bool) {
	fromSegment := "assets/format_msbt/" + shortCode[from] + "/" + from.String() + "/" + from.Prefix()
	if !strings.Contains(value, fromSegment) {
		return "", false
	}
	toSegment := "assets/format_msbt/" + shortCode[to] + "/" + to.String() + "/" + to.Prefix()
	return strings.ReplaceAll(value, fromSegment, toSegment), true
}
