package merge

import (
	"errors"

	"github.com/goliatone/go-localegen/internal/assets"
)

// ErrBundleSourceRequired indicates RewriteBundle was called without a source.
var ErrBundleSourceRequired = errors.New("merge: bundle source document is required")

// BundleSpec describes how a movie asset bundle document is re-targeted to a
// new locale variant. The source document (typically the Korean variant)
// supplies every field; only the identifiers below are rewritten.
type BundleSpec struct {
	// Name is the target m_Name / m_AssetBundleName, e.g.
	// movie/dia/logo/logo_dia_si.
	Name string
	// ContainerPath is the target path for the first m_Container entry, e.g.
	// assets/movie/dia/logo/logo_dia_si.png.
	ContainerPath string
}

// RewriteBundle clones the source bundle document and rewrites its asset
// identifiers to the target variant. Sources without a container entry keep
// the remainder of their structure untouched.
func RewriteBundle(source *assets.Document, spec BundleSpec) (*assets.Document, error) {
	if source == nil {
		return nil, ErrBundleSourceRequired
	}

	out := source.Clone()
	out.SetName(spec.Name)
	if out.BundleName() != "" {
		out.SetBundleName(spec.Name)
	}
	if spec.ContainerPath != "" && out.ContainerPath() != "" {
		out.SetContainerPath(spec.ContainerPath)
	}
	return out, nil
}
