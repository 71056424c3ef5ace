package ports

import "rosindex/internal/types"

// ManifestParserPort parses resource manifests on disk into structured
// metadata. The index core never touches manifest XML itself.
type ManifestParserPort interface {
	// Parse reads the manifest of the given kind from dir. It prefers a
	// catkin package.xml when present, falling back to the legacy marker
	// for the kind. Returns an invalid-manifest error on malformed input.
	Parse(dir string, kind types.ManifestKind) (types.Manifest, error)

	// Peek reads just the resource name and metapackage flag from a
	// package.xml path. The crawler uses it to classify directories
	// without paying for a full parse.
	Peek(path string) (name string, metapackage bool, err error)
}
