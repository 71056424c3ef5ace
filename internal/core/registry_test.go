package core

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosindex/internal/adapters"
)

func TestRegistrySharesInstancesPerPathList(t *testing.T) {
	parser := adapters.NewManifestXMLAdapter()
	registry := NewRegistry()
	pathsA := []string{"/opt/ros/one", "/opt/ros/two"}
	pathsB := []string{"/opt/ros/two", "/opt/ros/one"}

	first := registry.Package(pathsA, parser)
	second := registry.Package(pathsA, parser)
	assert.Same(t, first, second)

	// Order is part of the configuration: reversed paths are a
	// different instance.
	third := registry.Package(pathsB, parser)
	assert.NotSame(t, first, third)

	// Package and stack indexes are registered independently.
	stack := registry.Stack(pathsA, parser)
	assert.NotNil(t, stack)
	assert.Same(t, stack, registry.Stack(pathsA, parser))
}

func TestRegistrySharedInstanceReusesCaches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg_a", "package.xml"), catkinXML("pkg_a", false))

	registry := NewRegistry()
	parser := adapters.NewManifestXMLAdapter()
	ctx := context.Background()

	first := registry.Package([]string{root}, parser)
	require.Equal(t, []string{"pkg_a"}, first.List(ctx))

	// The shared instance keeps its location cache: a package added
	// after the first build stays invisible through the registry.
	writeFile(t, filepath.Join(root, "pkg_b", "package.xml"), catkinXML("pkg_b", false))
	second := registry.Package([]string{root}, parser)
	assert.Equal(t, []string{"pkg_a"}, second.List(ctx))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	parser := adapters.NewManifestXMLAdapter()
	paths := []string{"/opt/ros/noetic"}

	var wg sync.WaitGroup
	results := make([]*PackageIndex, 8)
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = registry.Package(paths, parser)
		}(i)
	}
	wg.Wait()
	for _, result := range results[1:] {
		assert.Same(t, results[0], result)
	}
}
