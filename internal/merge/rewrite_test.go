package merge

import (
	"testing"

	"github.com/goliatone/go-localegen/internal/assets"
)

func TestRewriteLocaleTokens(t *testing.T) {
	doc := assets.New(map[string]any{
		"m_Name":            "korean_ss_monsname",
		"m_AssetBundleName": "korean",
		"m_Container": []any{
			[]any{"assets/format_msbt/ko/korean/korean_ss_monsname.json", map[string]any{}},
		},
	})

	changed := RewriteLocaleTokens(doc, assets.LocaleKorean, assets.LocaleSimpChinese)
	if changed != 3 {
		t.Fatalf("changed = %d, want 3", changed)
	}
	if doc.Name() != "si_ss_monsname" {
		t.Fatalf("m_Name = %q", doc.Name())
	}
	if doc.BundleName() != "si" {
		t.Fatalf("m_AssetBundleName = %q", doc.BundleName())
	}
	if got := doc.ContainerPath(); got != "assets/format_msbt/si/si/si_ss_monsname.json" {
		t.Fatalf("container path = %q", got)
	}
}

func TestRewriteLocaleTokens_NoMatchesUntouched(t *testing.T) {
	doc := assets.New(map[string]any{
		"m_Name": "english_ss_monsname",
		"m_Container": []any{
			[]any{"assets/format_msbt/en/english/english_ss_monsname.json", map[string]any{}},
		},
	})

	if changed := RewriteLocaleTokens(doc, assets.LocaleKorean, assets.LocaleSimpChinese); changed != 0 {
		t.Fatalf("changed = %d, want 0", changed)
	}
	if doc.Name() != "english_ss_monsname" {
		t.Fatalf("m_Name mutated to %q", doc.Name())
	}
}

func TestRewriteLocaleTokens_NestedPaths(t *testing.T) {
	doc := assets.New(map[string]any{
		"m_Name": "plain",
		"meta": map[string]any{
			"entries": []any{
				map[string]any{"path": "assets/format_msbt/ko/korean/korean_ss_itemname.json"},
			},
		},
	})

	if changed := RewriteLocaleTokens(doc, assets.LocaleKorean, assets.LocaleSimpChinese); changed != 1 {
		t.Fatalf("changed = %d, want 1", changed)
	}
	entry := doc.Raw()["meta"].(map[string]any)["entries"].([]any)[0].(map[string]any)
	if got := entry["path"].(string); got != "assets/format_msbt/si/si/si_ss_itemname.json" {
		t.Fatalf("nested path = %q", got)
	}
}

func TestRewriteBundle(t *testing.T) {
	source := assets.New(map[string]any{
		"m_Name":            "movie/dia/logo/logo_dia_ko",
		"m_AssetBundleName": "movie/dia/logo/logo_dia_ko",
		"m_Container": []any{
			[]any{"assets/movie/dia/logo/logo_dia_ko.png", map[string]any{"preloadIndex": float64(0)}},
		},
	})

	out, err := RewriteBundle(source, BundleSpec{
		Name:          "movie/dia/logo/logo_dia_si",
		ContainerPath: "assets/movie/dia/logo/logo_dia_si.png",
	})
	if err != nil {
		t.Fatalf("RewriteBundle() error = %v", err)
	}

	if out.Name() != "movie/dia/logo/logo_dia_si" {
		t.Fatalf("m_Name = %q", out.Name())
	}
	if out.BundleName() != "movie/dia/logo/logo_dia_si" {
		t.Fatalf("m_AssetBundleName = %q", out.BundleName())
	}
	if got := out.ContainerPath(); got != "assets/movie/dia/logo/logo_dia_si.png" {
		t.Fatalf("container path = %q", got)
	}
	if source.Name() != "movie/dia/logo/logo_dia_ko" {
		t.Fatalf("source mutated to %q", source.Name())
	}
}

func TestRewriteBundle_NilSource(t *testing.T) {
	if _, err := RewriteBundle(nil, BundleSpec{Name: "x"}); err != ErrBundleSourceRequired {
		t.Fatalf("error = %v, want ErrBundleSourceRequired", err)
	}
}
