package core

import (
	"context"
	"errors"
	"sort"

	"rosindex/internal/types"
)

// GetDepends returns the dependencies of a resource. With implicit set
// it returns the memoized transitive closure; otherwise just the names
// declared in the resource's own manifest.
//
// Closure computation tolerates cycles and partial breakage: when a
// transitive dependency cannot be located, the best-effort closure is
// still cached and returned alongside a NotFoundError that lists the
// unresolvable names. Callers match the error with errors.As to get at
// the partial result.
func (ix *Index) GetDepends(ctx context.Context, name string, implicit bool) ([]string, error) {
	if !implicit {
		m, err := ix.GetManifest(ctx, name)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), m.Depends...), nil
	}
	return ix.implicitDepends(ctx, name)
}

func (ix *Index) implicitDepends(ctx context.Context, name string) ([]string, error) {
	if cached, ok := ix.dependsCache[name]; ok {
		return cached, nil
	}
	if _, active := ix.visiting[name]; active {
		// Cycle back-edge: the caller higher up the stack owns this
		// name's closure; contribute nothing here.
		return nil, nil
	}
	ix.visiting[name] = struct{}{}
	defer delete(ix.visiting, name)

	direct, err := ix.GetDepends(ctx, name, false)
	if err != nil {
		var notFound *types.NotFoundError
		if errors.As(err, &notFound) {
			notFound.AddUnavailable(name)
		}
		return nil, err
	}

	closure := map[string]struct{}{}
	var unavailable []string
	for _, dep := range direct {
		deps, err := ix.implicitDepends(ctx, dep)
		if err != nil {
			var notFound *types.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
			// Keep the partial closure and remember what was missing.
			for _, missing := range notFound.Unavailable {
				unavailable = appendUnique(unavailable, missing)
			}
		}
		for _, d := range deps {
			closure[d] = struct{}{}
		}
	}
	for _, dep := range direct {
		closure[dep] = struct{}{}
	}

	result := make([]string, 0, len(closure))
	for dep := range closure {
		result = append(result, dep)
	}
	sort.Strings(result)

	// Cache even a partial result so the next identical call is cheap.
	ix.dependsCache[name] = result
	if len(unavailable) > 0 {
		sort.Strings(unavailable)
		return result, types.NewDependsNotFound(name, ix.searchPaths, result, unavailable)
	}
	return result, nil
}

// GetDependsOn returns the resources that depend on name, directly or
// (with implicit) transitively. Resources whose manifest is missing or
// malformed are skipped rather than failing the whole query; the
// forward dependency cache keeps repeated reverse lookups cheap.
func (ix *Index) GetDependsOn(ctx context.Context, name string, implicit bool) []string {
	var dependsOn []string
	for _, r := range ix.List(ctx) {
		if r == name {
			continue
		}
		if !implicit {
			m, err := ix.GetManifest(ctx, r)
			if err != nil {
				continue
			}
			if m.HasDepend(name) {
				dependsOn = append(dependsOn, r)
			}
			continue
		}
		deps, err := ix.GetDepends(ctx, r, true)
		if err != nil {
			var notFound *types.NotFoundError
			if !errors.As(err, &notFound) {
				continue
			}
			// A partially resolvable resource still counts when the
			// partial closure already reaches name.
		}
		for _, dep := range deps {
			if dep == name {
				dependsOn = append(dependsOn, r)
				break
			}
		}
	}
	return dependsOn
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
