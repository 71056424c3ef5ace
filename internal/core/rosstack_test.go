package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosindex/internal/adapters"
)

func newTestStackIndex(t *testing.T, paths ...string) *StackIndex {
	t.Helper()
	return NewStackIndex(paths, adapters.NewManifestXMLAdapter())
}

func writeStack(t *testing.T, dir string, name string, version string) {
	t.Helper()
	content := "<stack><name>" + name + "</name>"
	if version != "" {
		content += "<version>" + version + "</version>"
	}
	content += "</stack>"
	writeFile(t, filepath.Join(dir, "stack.xml"), content)
}

func TestPackagesOf(t *testing.T) {
	root := t.TempDir()
	stackDir := filepath.Join(root, "stack_x")
	writeStack(t, stackDir, "stack_x", "1.2.3")
	writeFile(t, filepath.Join(stackDir, "pkg_y", "manifest.xml"), legacyXML("BSD", nil, nil))

	ix := newTestStackIndex(t, root)
	packages, err := ix.PackagesOf(context.Background(), "stack_x")
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg_y"}, packages)

	_, err = ix.PackagesOf(context.Background(), "ghost")
	require.Error(t, err)
}

func TestGetStackVersionFromStackXML(t *testing.T) {
	root := t.TempDir()
	writeStack(t, filepath.Join(root, "stack_x"), "stack_x", "1.2.3")

	ix := newTestStackIndex(t, root)
	version, err := ix.GetStackVersion(context.Background(), "stack_x")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}

func TestGetStackVersionFromCMakeLists(t *testing.T) {
	root := t.TempDir()
	stackDir := filepath.Join(root, "stack_x")
	writeStack(t, stackDir, "stack_x", "")
	writeFile(t, filepath.Join(stackDir, "CMakeLists.txt"),
		"cmake_minimum_required(VERSION 2.4.6)\nrosbuild_make_distribution(0.4.2)\n")

	ix := newTestStackIndex(t, root)
	version, err := ix.GetStackVersion(context.Background(), "stack_x")
	require.NoError(t, err)
	assert.Equal(t, "0.4.2", version)
}

func TestGetStackVersionUnversioned(t *testing.T) {
	root := t.TempDir()
	writeStack(t, filepath.Join(root, "stack_x"), "stack_x", "")

	ix := newTestStackIndex(t, root)
	version, err := ix.GetStackVersion(context.Background(), "stack_x")
	require.NoError(t, err)
	assert.Empty(t, version)
}

func TestCMakeDistributionVersion(t *testing.T) {
	version, err := cmakeDistributionVersion("rosbuild_make_distribution(2.0.1)")
	require.NoError(t, err)
	assert.Equal(t, "2.0.1", version)

	_, err = cmakeDistributionVersion("rosbuild_make_distribution()")
	require.Error(t, err)

	_, err = cmakeDistributionVersion("project(something)\n")
	require.Error(t, err)
}

func TestExpandToPackages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg_b", "package.xml"), catkinXML("pkg_b", false))
	stackDir := filepath.Join(root, "stack_x")
	writeStack(t, stackDir, "stack_x", "1.2.3")
	writeFile(t, filepath.Join(stackDir, "pkg_y", "manifest.xml"), legacyXML("BSD", nil, nil))

	packages := newTestPackageIndex(t, root)
	stacks := newTestStackIndex(t, root)
	ctx := context.Background()

	valid, unresolved := ExpandToPackages(ctx, []string{"pkg_b", "stack_x"}, packages, stacks)
	assert.Equal(t, []string{"pkg_b", "pkg_y"}, valid)
	assert.Empty(t, unresolved)

	valid, unresolved = ExpandToPackages(ctx, []string{"pkg_b", "nope"}, packages, stacks)
	assert.Equal(t, []string{"pkg_b"}, valid)
	assert.Equal(t, []string{"nope"}, unresolved)
}
