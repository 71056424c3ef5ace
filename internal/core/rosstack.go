package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosindex/internal/ports"
	"rosindex/internal/types"
)

// StackIndex indexes stacks (legacy stack.xml directories and catkin
// metapackages) and answers stack-level queries.
type StackIndex struct {
	*Index
}

func NewStackIndex(searchPaths []string, parser ports.ManifestParserPort) *StackIndex {
	return &StackIndex{Index: NewIndex(types.KindStack, searchPaths, parser)}
}

// PackagesOf lists the packages contained in a stack's directory. The
// sub-crawl is not cached.
func (s *StackIndex) PackagesOf(ctx context.Context, stack string) ([]string, error) {
	dir, err := s.GetPath(ctx, stack)
	if err != nil {
		return nil, err
	}
	crawler := Crawler{Kind: types.KindPackage, Parser: s.parser}
	return crawler.Crawl(ctx, dir, nil), nil
}

// GetStackVersion returns the version of a stack, read from its
// stack.xml when present, else recovered from a legacy
// rosbuild_make_distribution invocation in the stack's CMakeLists.txt.
// An empty version with a nil error means the stack is unversioned.
func (s *StackIndex) GetStackVersion(ctx context.Context, stack string) (string, error) {
	dir, err := s.GetPath(ctx, stack)
	if err != nil {
		return "", err
	}
	return StackVersionOfDir(dir, s.parser)
}

// StackVersionOfDir resolves a stack version directly from a stack root
// directory, without consulting an index.
func StackVersionOfDir(dir string, parser ports.ManifestParserPort) (string, error) {
	if _, err := os.Stat(filepath.Join(dir, types.StackFile)); err == nil {
		m, err := parser.Parse(dir, types.KindStack)
		if err == nil && m.Version != "" {
			return m.Version, nil
		}
	}
	cmakePath := filepath.Join(dir, types.CMakeListsFile)
	content, err := os.ReadFile(cmakePath)
	if err != nil {
		return "", nil
	}
	return cmakeDistributionVersion(string(content))
}

// cmakeDistributionVersion extracts the argument of the first
// rosbuild_make_distribution(...) invocation.
func cmakeDistributionVersion(text string) (string, error) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "rosbuild_make_distribution") {
			continue
		}
		parts := strings.FieldsFunc(trimmed, func(r rune) bool {
			return r == '(' || r == ')'
		})
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("cannot parse version from CMakeLists.txt line: %s", trimmed))
		}
		return strings.TrimSpace(parts[1]), nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("no rosbuild_make_distribution invocation in CMakeLists.txt")
}

// ExpandToPackages expands a mixed list of package and stack names into
// a package list. Known package names pass through; stack names are
// replaced by their member packages; anything else lands in the second
// return value. The package list may contain duplicates.
func ExpandToPackages(ctx context.Context, names []string, packages *PackageIndex, stacks *StackIndex) (valid []string, unresolved []string) {
	// Force the full crawl up front; cheaper than per-name lookups when
	// expanding many names.
	known := map[string]struct{}{}
	for _, name := range packages.List(ctx) {
		known[name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := known[name]; ok {
			valid = append(valid, name)
			continue
		}
		members, err := stacks.PackagesOf(ctx, name)
		if err != nil {
			unresolved = append(unresolved, name)
			continue
		}
		valid = append(valid, members...)
	}
	return valid, unresolved
}
