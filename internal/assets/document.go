package assets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Well-known keys inside exported message documents. Everything else is
// opaque structure that must survive a round trip untouched.
const (
	keyName       = "m_Name"
	keyBundleName = "m_AssetBundleName"
	keyContainer  = "m_Container"
	keyLabelData  = "labelDataArray"
	keyLabelName  = "labelName"
	keyWordData   = "wordDataArray"
	keyText       = "str"
)

var (
	// ErrNilDocument indicates an operation was attempted on a nil document.
	ErrNilDocument = errors.New("assets: document is nil")
	// ErrNotObject indicates the decoded JSON root was not an object.
	ErrNotObject = errors.New("assets: document root must be a JSON object")
)

// Document wraps one exported locale JSON file. The payload is kept as raw
// decoded JSON so structural fields the pipeline does not understand (style
// info, tag arrays, placeholder tokens, layout numbers such as strWidth)
// survive a load/merge/save cycle byte-for-byte in value terms.
type Document struct {
	data map[string]any
}

// New wraps an already decoded payload. A nil map yields an empty document.
func New(data map[string]any) *Document {
	if data == nil {
		data = map[string]any{}
	}
	return &Document{data: data}
}

// Raw exposes the underlying payload. Mutations are visible to the document.
func (d *Document) Raw() map[string]any {
	if d == nil {
		return nil
	}
	return d.data
}

// Clone returns a deep copy so merges never mutate their template.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{data: deepCopyMap(d.data)}
}

// Name returns the m_Name asset identifier, or "" when absent.
func (d *Document) Name() string {
	if d == nil {
		return ""
	}
	name, _ := d.data[keyName].(string)
	return name
}

// SetName replaces the m_Name asset identifier.
func (d *Document) SetName(name string) {
	if d == nil {
		return
	}
	d.data[keyName] = name
}

// BundleName returns the m_AssetBundleName field, or "" when absent.
func (d *Document) BundleName() string {
	if d == nil {
		return ""
	}
	name, _ := d.data[keyBundleName].(string)
	return name
}

// SetBundleName replaces the m_AssetBundleName field.
func (d *Document) SetBundleName(name string) {
	if d == nil {
		return
	}
	d.data[keyBundleName] = name
}

// ContainerPath returns the asset path of the first m_Container entry.
// Bundle index documents store entries as ["assets/...", {...}] pairs.
func (d *Document) ContainerPath() string {
	if d == nil {
		return ""
	}
	container, _ := d.data[keyContainer].([]any)
	if len(container) == 0 {
		return ""
	}
	entry, _ := container[0].([]any)
	if len(entry) == 0 {
		return ""
	}
	path, _ := entry[0].(string)
	return path
}

// SetContainerPath rewrites the asset path of the first m_Container entry.
// Documents without a container entry are left untouched.
func (d *Document) SetContainerPath(path string) {
	if d == nil {
		return
	}
	container, _ := d.data[keyContainer].([]any)
	if len(container) == 0 {
		return
	}
	entry, _ := container[0].([]any)
	if len(entry) == 0 {
		return
	}
	entry[0] = path
}

// HasLabels reports whether the document carries a labelDataArray. Bundle
// index documents (e.g. korean.json) do not, and skip the text merge.
func (d *Document) HasLabels() bool {
	if d == nil {
		return false
	}
	labels, ok := d.data[keyLabelData].([]any)
	return ok && labels != nil
}

// Labels returns views over the labelDataArray entries. Mutating a label's
// words writes through to the document.
func (d *Document) Labels() []Label {
	if d == nil {
		return nil
	}
	raw, _ := d.data[keyLabelData].([]any)
	labels := make([]Label, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		labels = append(labels, Label{raw: entry})
	}
	return labels
}

// TopLevelKeys returns the sorted top-level key set, used by structural checks.
func (d *Document) TopLevelKeys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.data))
	for key := range d.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Label is a view over one labelDataArray entry.
type Label struct {
	raw map[string]any
}

// Name returns the labelName field, or "" when absent.
func (l Label) Name() string {
	name, _ := l.raw[keyLabelName].(string)
	return name
}

// Words returns views over the wordDataArray entries.
func (l Label) Words() []Word {
	raw, _ := l.raw[keyWordData].([]any)
	words := make([]Word, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		words = append(words, Word{raw: entry})
	}
	return words
}

// Word is a view over one wordDataArray entry.
type Word struct {
	raw map[string]any
}

// Text returns the display text, or "" when absent.
func (w Word) Text() string {
	text, _ := w.raw[keyText].(string)
	return text
}

// LookupText returns the display text and whether the entry carries a str
// field at all. Entries without one have no text to contribute.
func (w Word) LookupText() (string, bool) {
	text, ok := w.raw[keyText].(string)
	return text, ok
}

// SetText replaces the display text, writing through to the document.
func (w Word) SetText(text string) {
	w.raw[keyText] = text
}

// Decode reads a document from r. Numbers are decoded as json.Number so
// integer layout fields are not rewritten as floats on save.
func Decode(r io.Reader) (*Document, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	data, ok := payload.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return New(data), nil
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %q: %w", path, err)
	}
	defer file.Close()

	doc, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %q: %w", path, err)
	}
	return doc, nil
}

// Encode serialises the document. Output is UTF-8 with HTML escaping disabled
// so CJK text and placeholder tokens are emitted verbatim; compact form has
// no indentation, matching the exported assets.
func (d *Document) Encode(indent bool) ([]byte, error) {
	if d == nil {
		return nil, ErrNilDocument
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(d.data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the document to path, creating parent directories as needed.
func Save(path string, d *Document, indent bool) error {
	data, err := d.Encode(indent)
	if err != nil {
		return fmt.Errorf("assets: encode %q: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("assets: ensure dir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("assets: write %q: %w", path, err)
	}
	return nil
}

// Format re-serialises the file at path with two-space indentation.
func Format(path string) error {
	doc, err := Load(path)
	if err != nil {
		return err
	}
	return Save(path, doc, true)
}

func deepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	copied := make(map[string]any, len(src))
	for key, value := range src {
		copied[key] = deepCopyValue(value)
	}
	return copied
}

func deepCopyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return deepCopyMap(typed)
	case []any:
		copied := make([]any, len(typed))
		for i, item := range typed {
			copied[i] = deepCopyValue(item)
		}
		return copied
	default:
		return typed
	}
}
