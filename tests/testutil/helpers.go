// Package testutil provides shared test helpers used across integration
// and unit test packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// PackageXML renders a catkin package.xml with runtime dependencies.
func PackageXML(name string, version string, license string, deps ...string) string {
	var b strings.Builder
	b.WriteString("<package format=\"2\">\n")
	fmt.Fprintf(&b, "  <name>%s</name>\n", name)
	if version != "" {
		fmt.Fprintf(&b, "  <version>%s</version>\n", version)
	}
	if license != "" {
		fmt.Fprintf(&b, "  <license>%s</license>\n", license)
	}
	for _, dep := range deps {
		fmt.Fprintf(&b, "  <depend>%s</depend>\n", dep)
	}
	b.WriteString("</package>\n")
	return b.String()
}

// Metapackage renders a package.xml carrying the metapackage marker.
func Metapackage(name string, deps ...string) string {
	var b strings.Builder
	b.WriteString("<package format=\"2\">\n")
	fmt.Fprintf(&b, "  <name>%s</name>\n", name)
	b.WriteString("  <license>BSD</license>\n")
	for _, dep := range deps {
		fmt.Fprintf(&b, "  <depend>%s</depend>\n", dep)
	}
	b.WriteString("  <export><metapackage/></export>\n")
	b.WriteString("</package>\n")
	return b.String()
}

// LegacyManifest renders a rosbuild manifest.xml.
func LegacyManifest(license string, deps []string, rosdeps []string) string {
	var b strings.Builder
	b.WriteString("<package>\n")
	if license != "" {
		fmt.Fprintf(&b, "  <license>%s</license>\n", license)
	}
	for _, dep := range deps {
		fmt.Fprintf(&b, "  <depend package=%q/>\n", dep)
	}
	for _, dep := range rosdeps {
		fmt.Fprintf(&b, "  <rosdep name=%q/>\n", dep)
	}
	b.WriteString("</package>\n")
	return b.String()
}

// StackXML renders a stack.xml.
func StackXML(name string, version string) string {
	if version == "" {
		return fmt.Sprintf("<stack><name>%s</name></stack>\n", name)
	}
	return fmt.Sprintf("<stack><name>%s</name><version>%s</version></stack>\n", name, version)
}
