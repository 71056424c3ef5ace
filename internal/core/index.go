package core

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"rosindex/internal/ports"
	"rosindex/internal/types"
)

// Index locates resources of one kind on an ordered list of search
// paths and caches everything it learns. The location cache is built
// lazily exactly once; an Index never observes filesystem changes made
// after its first scan. Apart from that guarded build, an Index is not
// safe for concurrent use.
type Index struct {
	kind        types.ManifestKind
	searchPaths []string
	parser      ports.ManifestParserPort

	buildOnce sync.Once
	locations map[string]string

	manifests    map[string]types.Manifest
	dependsCache map[string][]string
	visiting     map[string]struct{}
	custom       map[string]any
}

// NewIndex builds an index over the given ordered search paths. Earlier
// paths win when the same resource name appears under several of them.
func NewIndex(kind types.ManifestKind, searchPaths []string, parser ports.ManifestParserPort) *Index {
	return &Index{
		kind:         kind,
		searchPaths:  append([]string(nil), searchPaths...),
		parser:       parser,
		manifests:    map[string]types.Manifest{},
		dependsCache: map[string][]string{},
		visiting:     map[string]struct{}{},
		custom:       map[string]any{},
	}
}

// SearchPaths returns a copy of the configured search paths.
func (ix *Index) SearchPaths() []string {
	return append([]string(nil), ix.searchPaths...)
}

// build scans every search path in reverse order so that entries from
// earlier paths are written last and overwrite colliding names.
func (ix *Index) build(ctx context.Context) {
	ix.buildOnce.Do(func() {
		cache := map[string]string{}
		crawler := Crawler{Kind: ix.kind, Parser: ix.parser}
		for i := len(ix.searchPaths) - 1; i >= 0; i-- {
			crawler.Crawl(ctx, ix.searchPaths[i], cache)
		}
		ix.locations = cache
		log.Ctx(ctx).Debug().
			Str("kind", string(ix.kind)).
			Int("resources", len(cache)).
			Msg("location cache built")
	})
}

// List returns the names of all indexed resources, sorted. The first
// call triggers the crawl.
func (ix *Index) List(ctx context.Context) []string {
	ix.build(ctx)
	names := make([]string, 0, len(ix.locations))
	for name := range ix.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPath returns the directory of a resource, or a NotFoundError
// naming the search paths consulted.
func (ix *Index) GetPath(ctx context.Context, name string) (string, error) {
	ix.build(ctx)
	dir, ok := ix.locations[name]
	if !ok {
		return "", types.NewNotFound(name, ix.searchPaths)
	}
	return dir, nil
}

// GetManifest returns the parsed manifest of a resource, caching it on
// first use. Parse failures are not cached, so a later call re-attempts
// the parse.
func (ix *Index) GetManifest(ctx context.Context, name string) (types.Manifest, error) {
	if m, ok := ix.manifests[name]; ok {
		return m, nil
	}
	dir, err := ix.GetPath(ctx, name)
	if err != nil {
		return types.Manifest{}, err
	}
	m, err := ix.parser.Parse(dir, ix.kind)
	if err != nil {
		return types.Manifest{}, err
	}
	ix.manifests[name] = m
	return m, nil
}

// CustomCache reads an entry from the per-instance scratch cache that
// collaborators may use for derived data.
func (ix *Index) CustomCache(key string) (any, bool) {
	value, ok := ix.custom[key]
	return value, ok
}

// SetCustomCache stores an entry in the per-instance scratch cache.
func (ix *Index) SetCustomCache(key string, value any) {
	ix.custom[key] = value
}
