package core

import (
	"os"
	"strings"
	"sync"

	"rosindex/internal/ports"
)

// Registry hands out shared index instances keyed by their search-path
// configuration, so repeated queries over the same paths reuse one set
// of caches instead of rescanning the filesystem. Entries live for the
// registry's lifetime; there is no eviction. A Registry is safe for
// concurrent use, the indexes it returns are not.
type Registry struct {
	mu       sync.Mutex
	packages map[string]*PackageIndex
	stacks   map[string]*StackIndex
}

func NewRegistry() *Registry {
	return &Registry{
		packages: map[string]*PackageIndex{},
		stacks:   map[string]*StackIndex{},
	}
}

// Package returns the shared package index for the given search paths,
// creating it on first request.
func (r *Registry) Package(searchPaths []string, parser ports.ManifestParserPort) *PackageIndex {
	key := pathsKey(searchPaths)
	r.mu.Lock()
	defer r.mu.Unlock()
	if ix, ok := r.packages[key]; ok {
		return ix
	}
	ix := NewPackageIndex(searchPaths, parser)
	r.packages[key] = ix
	return ix
}

// Stack returns the shared stack index for the given search paths,
// creating it on first request.
func (r *Registry) Stack(searchPaths []string, parser ports.ManifestParserPort) *StackIndex {
	key := pathsKey(searchPaths)
	r.mu.Lock()
	defer r.mu.Unlock()
	if ix, ok := r.stacks[key]; ok {
		return ix
	}
	ix := NewStackIndex(searchPaths, parser)
	r.stacks[key] = ix
	return ix
}

// pathsKey is the canonical form of an ordered search-path list.
func pathsKey(searchPaths []string) string {
	return strings.Join(searchPaths, string(os.PathListSeparator))
}
