package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDocument = `{"m_Name":"english_ss_monsname","strWidth":42,"labelDataArray":[{"labelName":"MONS_001","labelIndex":1,"wordDataArray":[{"str":"Bulbasaur","strWidth":1.5,"patternID":7}]}]}`

func TestDecode_RoundTripFidelity(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	encoded, err := doc.Encode(false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Key order is canonical (sorted); values must survive untouched, with
	// integers staying integers.
	want := `{"labelDataArray":[{"labelIndex":1,"labelName":"MONS_001","wordDataArray":[{"patternID":7,"str":"Bulbasaur","strWidth":1.5}]}],"m_Name":"english_ss_monsname","strWidth":42}`
	got := strings.TrimSuffix(string(encoded), "\n")
	if got != want {
		t.Fatalf("round trip drifted:\nwant: %s\n got: %s", want, got)
	}
}

func TestDecode_RejectsNonObject(t *testing.T) {
	if _, err := Decode(strings.NewReader(`[1,2,3]`)); err == nil {
		t.Fatal("expected error for array root")
	}
}

func TestEncode_NonASCIIVerbatim(t *testing.T) {
	doc := New(map[string]any{"m_Name": "si_test", "labelDataArray": []any{
		map[string]any{"labelName": "L", "wordDataArray": []any{map[string]any{"str": "妙蛙种子"}}},
	}})

	encoded, err := doc.Encode(false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Contains(encoded, []byte("妙蛙种子")) {
		t.Fatalf("expected verbatim CJK text, got %s", encoded)
	}
	if bytes.Contains(encoded, []byte(`\u`)) {
		t.Fatalf("expected no unicode escapes, got %s", encoded)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	clone := doc.Clone()
	clone.SetName("si_ss_monsname")
	clone.Labels()[0].Words()[0].SetText("妙蛙种子")

	if doc.Name() != "english_ss_monsname" {
		t.Fatalf("template name mutated: %s", doc.Name())
	}
	if got := doc.Labels()[0].Words()[0].Text(); got != "Bulbasaur" {
		t.Fatalf("template text mutated: %s", got)
	}
}

func TestDocument_Accessors(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	t.Run("labels", func(t *testing.T) {
		labels := doc.Labels()
		if len(labels) != 1 {
			t.Fatalf("Labels() = %d, want 1", len(labels))
		}
		if labels[0].Name() != "MONS_001" {
			t.Fatalf("label name = %q", labels[0].Name())
		}
		words := labels[0].Words()
		if len(words) != 1 || words[0].Text() != "Bulbasaur" {
			t.Fatalf("unexpected words: %+v", words)
		}
	})

	t.Run("word write-through", func(t *testing.T) {
		doc.Labels()[0].Words()[0].SetText("updated")
		if got := doc.Labels()[0].Words()[0].Text(); got != "updated" {
			t.Fatalf("SetText not visible, got %q", got)
		}
	})

	t.Run("top level keys sorted", func(t *testing.T) {
		keys := doc.TopLevelKeys()
		want := []string{"labelDataArray", "m_Name", "strWidth"}
		if len(keys) != len(want) {
			t.Fatalf("TopLevelKeys() = %v", keys)
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Fatalf("TopLevelKeys() = %v, want %v", keys, want)
			}
		}
	})
}

func TestDocument_ContainerPath(t *testing.T) {
	doc := New(map[string]any{
		"m_Name": "movie/dia/logo/logo_dia_ko",
		"m_Container": []any{
			[]any{"assets/movie/dia/logo/logo_dia_ko.png", map[string]any{"preloadIndex": float64(0)}},
		},
	})

	if got := doc.ContainerPath(); got != "assets/movie/dia/logo/logo_dia_ko.png" {
		t.Fatalf("ContainerPath() = %q", got)
	}

	doc.SetContainerPath("assets/movie/dia/logo/logo_dia_si.png")
	if got := doc.ContainerPath(); got != "assets/movie/dia/logo/logo_dia_si.png" {
		t.Fatalf("SetContainerPath not applied, got %q", got)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "si_test.json")

	doc := New(map[string]any{"m_Name": "si_test"})
	if err := Save(path, doc, false); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Name() != "si_test" {
		t.Fatalf("Load() name = %q", loaded.Name())
	}
}

func TestFormat_PrettyPrints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "si_test.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := Format(path); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted: %v", err)
	}
	if !bytes.Contains(data, []byte("\n  \"")) {
		t.Fatalf("expected two-space indentation, got %s", data)
	}
}
