package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"rosindex/internal/ports"
	"rosindex/internal/types"
)

// crawlDecision is the per-directory verdict of the classifier: keep
// walking into subdirectories, stop here, or record a resource and stop.
type crawlDecision int

const (
	decisionDescend crawlDecision = iota
	decisionPrune
	decisionRecord
)

// Crawler discovers resources of one kind under a directory tree.
// Resources cannot nest: the first marker match in a subtree wins and
// halts descent below it.
type Crawler struct {
	Kind   types.ManifestKind
	Parser ports.ManifestParserPort
}

// Crawl walks root depth-first, following symlinks, and returns the
// discovered resource names in insertion order with duplicates
// suppressed. When cache is non-nil it is updated in place with
// name->directory for every discovered resource, overwriting prior
// entries for the same name. Unreadable directories are skipped.
func (c Crawler) Crawl(ctx context.Context, root string, cache map[string]string) []string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	seen := map[string]struct{}{}
	var resources []string
	c.walk(ctx, abs, seen, &resources, cache)
	return resources
}

func (c Crawler) walk(ctx context.Context, dir string, seen map[string]struct{}, resources *[]string, cache map[string]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Ctx(ctx).Debug().Str("dir", dir).Err(err).Msg("skipping unreadable directory")
		return
	}

	files := map[string]struct{}{}
	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			subdirs = append(subdirs, name)
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			// Symlinked directories are followed; symlinked files
			// count as plain files.
			info, err := os.Stat(filepath.Join(dir, name))
			if err == nil && info.IsDir() {
				subdirs = append(subdirs, name)
				continue
			}
		}
		files[name] = struct{}{}
	}

	decision, resourceName := c.classify(ctx, dir, files)
	switch decision {
	case decisionPrune:
		return
	case decisionRecord:
		if _, dup := seen[resourceName]; !dup {
			seen[resourceName] = struct{}{}
			*resources = append(*resources, resourceName)
		}
		if cache != nil {
			cache[resourceName] = dir
		}
		return
	}

	for _, sub := range subdirs {
		if strings.HasPrefix(sub, ".") {
			continue
		}
		c.walk(ctx, filepath.Join(dir, sub), seen, resources, cache)
	}
}

// classify decides what a single directory is, given the set of plain
// filenames it contains. The match order mirrors the rospack crawl
// contract: ignore markers first, then package.xml, then the legacy
// marker for the requested kind.
func (c Crawler) classify(ctx context.Context, dir string, files map[string]struct{}) (crawlDecision, string) {
	if _, ok := files[types.CatkinIgnoreFile]; ok {
		return decisionPrune, ""
	}
	if _, ok := files[types.PackageFile]; ok {
		name, metapackage, err := c.Parser.Peek(filepath.Join(dir, types.PackageFile))
		if err != nil {
			log.Ctx(ctx).Warn().Str("dir", dir).Err(err).Msg("skipping unreadable package.xml")
			return decisionPrune, ""
		}
		matches := (c.Kind == types.KindStack && metapackage) ||
			(c.Kind == types.KindPackage && !metapackage)
		if matches && name != "" {
			return decisionRecord, name
		}
	}
	if _, ok := files[types.MarkerFor(c.Kind)]; ok {
		return decisionRecord, filepath.Base(dir)
	}
	// A resource of the other kind lives here; do not descend into it or
	// double-count it.
	if _, ok := files[types.ManifestFile]; ok {
		return decisionPrune, ""
	}
	if _, ok := files[types.PackageFile]; ok {
		return decisionPrune, ""
	}
	if _, ok := files[types.NoSubdirsFile]; ok {
		return decisionPrune, ""
	}
	return decisionDescend, ""
}
