package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosindex/internal/adapters"
	"rosindex/internal/core"
	"rosindex/internal/types"
)

type fixedSearchPaths []string

func (f fixedSearchPaths) SearchPaths() ([]string, error) {
	return f, nil
}

func newTestService(t *testing.T, paths ...string) Service {
	t.Helper()
	return Service{
		Parser:     adapters.NewManifestXMLAdapter(),
		SearchPath: fixedSearchPaths(paths),
		Reports:    adapters.NewLicenseReportAdapter(t.TempDir()),
		Registry:   core.NewRegistry(),
	}
}

func writeTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	write := func(rel string, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("pkg_a/package.xml",
		"<package><name>pkg_a</name><version>1.0.0</version><license>BSD</license><depend>pkg_b</depend></package>")
	write("pkg_b/package.xml",
		"<package><name>pkg_b</name><version>2.0.0</version><license>MIT</license></package>")
	write("stack_x/stack.xml",
		"<stack><name>stack_x</name><version>1.2.3</version></stack>")
	write("stack_x/pkg_y/manifest.xml",
		"<package><license>BSD</license></package>")
	return root
}

func TestServiceListAndFind(t *testing.T) {
	root := writeTestTree(t)
	service := newTestService(t, root)
	ctx := context.Background()

	names, err := service.List(ctx, ListRequest{Kind: types.KindPackage})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg_a", "pkg_b", "pkg_y"}, names)

	stacks, err := service.List(ctx, ListRequest{Kind: types.KindStack})
	require.NoError(t, err)
	assert.Equal(t, []string{"stack_x"}, stacks)

	path, err := service.Find(ctx, FindRequest{Name: "pkg_b", Kind: types.KindPackage})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "pkg_b"), path)
}

func TestServiceDependsForwardAndReverse(t *testing.T) {
	root := writeTestTree(t)
	service := newTestService(t, root)
	ctx := context.Background()

	deps, err := service.Depends(ctx, DependsRequest{Name: "pkg_a", Implicit: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg_b"}, deps)

	rdeps, err := service.Depends(ctx, DependsRequest{Name: "pkg_b", Implicit: true, Reverse: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg_a"}, rdeps)
}

func TestServiceExpand(t *testing.T) {
	root := writeTestTree(t)
	service := newTestService(t, root)

	result, err := service.Expand(context.Background(), ExpandRequest{
		Names: []string{"pkg_b", "stack_x", "nothing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg_b", "pkg_y"}, result.Packages)
	assert.Equal(t, []string{"nothing"}, result.Unresolved)
}

func TestServiceStackQueries(t *testing.T) {
	root := writeTestTree(t)
	service := newTestService(t, root)
	ctx := context.Background()

	version, err := service.StackVersion(ctx, StackVersionRequest{Stack: "stack_x"})
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)

	packages, err := service.StackPackages(ctx, StackPackagesRequest{Stack: "stack_x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg_y"}, packages)

	stack, err := service.StackOf(ctx, StackOfRequest{Name: "pkg_y"})
	require.NoError(t, err)
	assert.Equal(t, "stack_x", stack)
}

func TestServiceLicensesWritesReport(t *testing.T) {
	root := writeTestTree(t)
	service := newTestService(t, root)

	result, err := service.Licenses(context.Background(), LicensesRequest{
		Name:           "pkg_a",
		Implicit:       true,
		GroupByLicense: true,
		WriteReport:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg_a"}, result.Groups["BSD"])
	assert.Equal(t, []string{"pkg_b"}, result.Groups["MIT"])
	require.NotEmpty(t, result.ReportPath)
	assert.FileExists(t, result.ReportPath)
	assert.Contains(t, result.ReportPath, "licenses_pkg_a-1.0.0.yml")
}

func TestServiceNoSearchPathsFails(t *testing.T) {
	service := newTestService(t)
	_, err := service.List(context.Background(), ListRequest{Kind: types.KindPackage})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no search paths")
}
