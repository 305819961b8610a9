package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Locale identifies a locale prefix used by exported asset file names and
// m_Name identifiers (e.g. english_ss_monsname.json).
type Locale string

const (
	LocaleEnglish     Locale = "english"
	LocaleKorean      Locale = "korean"
	LocaleTradChinese Locale = "trad_chinese"
	LocaleSimpChinese Locale = "si"
)

// String returns the locale prefix.
func (l Locale) String() string { return string(l) }

// Prefix returns the file-name prefix including the trailing underscore.
func (l Locale) Prefix() string { return string(l) + "_" }

// FileName builds the locale-tagged file name for the given suffix.
func (l Locale) FileName(suffix string) string {
	return l.Prefix() + suffix
}

// Suffix strips the locale prefix from name, reporting whether it matched.
// english_ss_monsname.json -> ss_monsname.json.
func (l Locale) Suffix(name string) (string, bool) {
	prefix := l.Prefix()
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	return name[len(prefix):], true
}

// RenameAsset swaps the locale prefix on an m_Name identifier. Names without
// the source prefix are prefixed wholesale, matching the original pipeline.
func RenameAsset(name string, from, to Locale) string {
	if suffix, ok := from.Suffix(name); ok {
		return to.FileName(suffix)
	}
	return to.FileName(name)
}

// ListLocaleFiles enumerates the base names of <locale>_*.json files directly
// under dir, sorted lexically. A missing directory yields an empty slice.
func ListLocaleFiles(dir string, locale Locale) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("assets: read dir %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	prefix := locale.Prefix()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ListJSONFiles enumerates every *.json base name directly under dir, sorted
// lexically. A missing directory yields an empty slice.
func ListJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("assets: read dir %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// SiblingPath resolves the counterpart of a locale-tagged file in another
// directory and locale: SiblingPath("trad", LocaleTradChinese, "ss_x.json")
// -> trad/trad_chinese_ss_x.json.
func SiblingPath(dir string, locale Locale, suffix string) string {
	return filepath.Join(dir, locale.FileName(suffix))
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
