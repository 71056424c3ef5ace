package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"rosindex/internal/ports"
	"rosindex/internal/types"
)

// PackageIndex indexes packages and adds the package-only queries:
// system dependency (rosdep) closures, stack membership, and license
// aggregation over a dependency closure.
type PackageIndex struct {
	*Index

	rosdepsCache   map[string][]string
	rosdepVisiting map[string]struct{}

	// SystemLicenses optionally supplies license strings for rosdep
	// keys. Only consulted when a license query asks for system
	// packages; never on the default resolution path.
	SystemLicenses ports.SystemLicensePort
}

func NewPackageIndex(searchPaths []string, parser ports.ManifestParserPort) *PackageIndex {
	return &PackageIndex{
		Index:          NewIndex(types.KindPackage, searchPaths, parser),
		rosdepsCache:   map[string][]string{},
		rosdepVisiting: map[string]struct{}{},
	}
}

// GetRosdeps returns the system dependencies declared by a package and,
// with implicit, by every package in its dependency closure. Unlike
// GetDepends, unresolvable transitive dependencies are only logged: a
// single broken package must not poison a broad system-dependency
// query.
func (p *PackageIndex) GetRosdeps(ctx context.Context, name string, implicit bool) ([]string, error) {
	if !implicit {
		m, err := p.GetManifest(ctx, name)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), m.Rosdeps...), nil
	}
	return p.implicitRosdeps(ctx, name)
}

func (p *PackageIndex) implicitRosdeps(ctx context.Context, name string) ([]string, error) {
	if cached, ok := p.rosdepsCache[name]; ok {
		return cached, nil
	}
	if _, active := p.rosdepVisiting[name]; active {
		return nil, nil
	}
	p.rosdepVisiting[name] = struct{}{}
	defer delete(p.rosdepVisiting, name)

	// The package's own manifest must resolve; everything below it is
	// best effort.
	own, err := p.GetManifest(ctx, name)
	if err != nil {
		return nil, err
	}

	packages, err := p.GetDepends(ctx, name, true)
	if err != nil {
		var notFound *types.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Ctx(ctx).Warn().
			Str("package", name).
			Strs("unavailable", notFound.Unavailable).
			Msg("rosdep closure computed from partial dependency set")
	}

	rosdeps := map[string]struct{}{}
	for _, pkg := range packages {
		deps, err := p.GetRosdeps(ctx, pkg, false)
		if err != nil {
			log.Ctx(ctx).Warn().Str("package", pkg).Err(err).Msg("skipping rosdeps of unavailable package")
			continue
		}
		for _, dep := range deps {
			rosdeps[dep] = struct{}{}
		}
	}
	for _, dep := range own.Rosdeps {
		rosdeps[dep] = struct{}{}
	}

	result := make([]string, 0, len(rosdeps))
	for dep := range rosdeps {
		result = append(result, dep)
	}
	sort.Strings(result)
	p.rosdepsCache[name] = result
	return result, nil
}

// StackOf returns the name of the stack containing a package, found by
// walking up from the package directory to the nearest stack.xml. An
// empty name means the package is not part of any stack.
func (p *PackageIndex) StackOf(ctx context.Context, name string) (string, error) {
	dir, err := p.GetPath(ctx, name)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, types.StackFile)); err == nil {
			return filepath.Base(dir), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LicenseQuery selects how GetLicenses aggregates and whether system
// packages from the rosdep closure are included.
type LicenseQuery struct {
	Implicit bool

	// GroupByLicense selects license->[packages] grouping; otherwise
	// the result maps package->[licenses].
	GroupByLicense bool

	// IncludeSystem extends the result with licenses of the rosdep
	// closure, looked up through the SystemLicenses port. Keys without
	// a discoverable license get the LicenseNotFound sentinel.
	IncludeSystem bool
}

// GetLicenses aggregates license strings across the dependency closure
// of a package. Group member lists are sorted and deduplicated.
func (p *PackageIndex) GetLicenses(ctx context.Context, name string, query LicenseQuery) (map[string][]string, error) {
	closure, err := p.GetDepends(ctx, name, query.Implicit)
	if err != nil {
		return nil, err
	}

	groups := map[string][]string{}
	add := func(pkg, license string) {
		if license == "" {
			license = types.LicenseNotFound
		}
		if query.GroupByLicense {
			groups[license] = append(groups[license], pkg)
		} else {
			groups[pkg] = append(groups[pkg], license)
		}
	}

	for _, pkgName := range append([]string{name}, closure...) {
		m, err := p.GetManifest(ctx, pkgName)
		if err != nil {
			log.Ctx(ctx).Warn().Str("package", pkgName).Err(err).Msg("license unknown for unresolvable package")
			add(pkgName, types.LicenseNotFound)
			continue
		}
		for _, license := range m.Licenses {
			add(pkgName, license)
		}
		if len(m.Licenses) == 0 {
			add(pkgName, types.LicenseNotFound)
		}
	}

	if query.IncludeSystem && p.SystemLicenses != nil {
		rosdeps, err := p.GetRosdeps(ctx, name, query.Implicit)
		if err != nil {
			return nil, err
		}
		found, err := p.SystemLicenses.Licenses(rosdeps)
		if err != nil {
			return nil, err
		}
		for _, dep := range rosdeps {
			license, ok := found[dep]
			if !ok {
				license = types.LicenseNotFound
			}
			add(dep, license)
		}
	}

	for key, members := range groups {
		sort.Strings(members)
		groups[key] = compactStrings(members)
	}
	return groups, nil
}

// compactStrings removes adjacent duplicates from a sorted slice.
func compactStrings(sorted []string) []string {
	out := sorted[:0]
	for i, value := range sorted {
		if i == 0 || value != sorted[i-1] {
			out = append(out, value)
		}
	}
	return out
}
