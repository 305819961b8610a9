package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRenameAsset(t *testing.T) {
	cases := []struct {
		name string
		in   string
		from Locale
		to   Locale
		want string
	}{
		{"prefix swap", "english_ss_monsname", LocaleEnglish, LocaleSimpChinese, "si_ss_monsname"},
		{"korean to si", "korean_ss_itemname", LocaleKorean, LocaleSimpChinese, "si_ss_itemname"},
		{"unmatched prefix keeps suffix whole", "ss_monsname", LocaleEnglish, LocaleSimpChinese, "si_ss_monsname"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RenameAsset(tc.in, tc.from, tc.to); got != tc.want {
				t.Fatalf("RenameAsset(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLocale_Suffix(t *testing.T) {
	suffix, ok := LocaleEnglish.Suffix("english_ss_monsname.json")
	if !ok || suffix != "ss_monsname.json" {
		t.Fatalf("Suffix() = %q, %t", suffix, ok)
	}
	if _, ok := LocaleEnglish.Suffix("korean_ss_monsname.json"); ok {
		t.Fatal("expected no match for foreign prefix")
	}
}

func TestListLocaleFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"english_zz.json",
		"english_aa.json",
		"trad_chinese_aa.json",
		"english_readme.txt",
		"korean.json",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}

	names, err := ListLocaleFiles(dir, LocaleEnglish)
	if err != nil {
		t.Fatalf("ListLocaleFiles() error = %v", err)
	}
	want := []string{"english_aa.json", "english_zz.json"}
	if len(names) != len(want) {
		t.Fatalf("ListLocaleFiles() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ListLocaleFiles() = %v, want %v", names, want)
		}
	}
}

func TestListLocaleFiles_MissingDir(t *testing.T) {
	names, err := ListLocaleFiles(filepath.Join(t.TempDir(), "absent"), LocaleEnglish)
	if err != nil {
		t.Fatalf("ListLocaleFiles() error = %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty slice, got %v", names)
	}
}

func TestSiblingPath(t *testing.T) {
	got := SiblingPath("trad_chinese_Export", LocaleTradChinese, "ss_monsname.json")
	want := filepath.Join("trad_chinese_Export", "trad_chinese_ss_monsname.json")
	if got != want {
		t.Fatalf("SiblingPath() = %q, want %q", got, want)
	}
}
