package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

const (
	manifestFileName    = ".localegen-manifest.json"
	manifestFileVersion = 1
)

// buildManifest stores per-output input hashes from the last successful run
// to support incremental rebuilds. Entries are keyed by output path in
// memory and serialized as a sorted array.
type buildManifest struct {
	Version     int
	GeneratedAt time.Time
	Files       map[string]manifestFile
}

// manifestEnvelope is the on-disk shape.
type manifestEnvelope struct {
	Version     int            `json:"version"`
	GeneratedAt time.Time      `json:"generated_at"`
	Files       []manifestFile `json:"files"`
}

type manifestFile struct {
	Set         string    `json:"set"`
	Output      string    `json:"output"`
	Template    string    `json:"template"`
	Source      string    `json:"source,omitempty"`
	InputHash   string    `json:"input_hash"`
	GeneratedAt time.Time `json:"generated_at"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Files:   map[string]manifestFile{},
	}
}

func loadManifest(path string) (*buildManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newBuildManifest(), nil
		}
		return nil, fmt.Errorf("pipeline: read manifest %q: %w", path, err)
	}
	return parseManifest(data)
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	var envelope manifestEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("pipeline: parse manifest: %w", err)
	}
	manifest := newBuildManifest()
	if envelope.Version != 0 {
		manifest.Version = envelope.Version
	}
	manifest.GeneratedAt = envelope.GeneratedAt
	for _, entry := range envelope.Files {
		manifest.setFile(entry)
	}
	return manifest, nil
}

// upToDate reports whether the output keyed by its path was produced from
// inputs with the same hash.
func (m *buildManifest) upToDate(output, inputHash string) bool {
	if m == nil || inputHash == "" {
		return false
	}
	entry, ok := m.Files[output]
	return ok && entry.InputHash == inputHash
}

func (m *buildManifest) setFile(entry manifestFile) {
	if m == nil || entry.Output == "" {
		return
	}
	m.Files[entry.Output] = entry
}

// marshal emits the manifest with entries sorted by output path so repeated
// runs produce byte-identical files.
func (m *buildManifest) marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	ordered := manifestEnvelope{
		Version:     m.Version,
		GeneratedAt: m.GeneratedAt,
		Files:       make([]manifestFile, 0, len(m.Files)),
	}
	if ordered.Version == 0 {
		ordered.Version = manifestFileVersion
	}
	for _, entry := range m.Files {
		ordered.Files = append(ordered.Files, entry)
	}
	sort.Slice(ordered.Files, func(i, j int) bool {
		return ordered.Files[i].Output < ordered.Files[j].Output
	})
	return json.MarshalIndent(ordered, "", "  ")
}

func computeHash(chunks ...[]byte) string {
	h := sha256.New()
	for _, chunk := range chunks {
		h.Write(chunk)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
