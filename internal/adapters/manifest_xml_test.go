package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosindex/internal/types"
)

func writeManifest(t *testing.T, dir string, filename string, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseCatkinPackageXML(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "package.xml", `
<package format="2">
  <name> nav_core </name>
  <version>1.17.3</version>
  <license>BSD</license>
  <license>LGPL-2.1</license>
  <depend>geometry_msgs</depend>
  <run_depend>tf2_ros</run_depend>
  <exec_depend>geometry_msgs</exec_depend>
  <build_depend>cmake_modules</build_depend>
</package>`)

	adapter := NewManifestXMLAdapter()
	m, err := adapter.Parse(dir, types.KindPackage)
	require.NoError(t, err)
	assert.Equal(t, "nav_core", m.Name)
	assert.Equal(t, "1.17.3", m.Version)
	assert.Equal(t, []string{"BSD", "LGPL-2.1"}, m.Licenses)
	// Runtime tags only, duplicates collapsed; build_depend is ignored.
	assert.Equal(t, []string{"geometry_msgs", "tf2_ros"}, m.Depends)
	assert.True(t, m.Catkin)
	assert.False(t, m.Metapackage)
}

func TestParseLegacyManifestXML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "laser_drivers")
	writeManifest(t, dir, "manifest.xml", `
<package>
  <license>BSD</license>
  <depend package="roscpp"/>
  <depend package="sensor_msgs"/>
  <rosdep name="libusb-dev"/>
</package>`)

	adapter := NewManifestXMLAdapter()
	m, err := adapter.Parse(dir, types.KindPackage)
	require.NoError(t, err)
	// Legacy manifests carry no name; the directory names the package.
	assert.Equal(t, "laser_drivers", m.Name)
	assert.Equal(t, []string{"roscpp", "sensor_msgs"}, m.Depends)
	assert.Equal(t, []string{"libusb-dev"}, m.Rosdeps)
	assert.False(t, m.Catkin)
}

func TestParseStackXML(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "stack.xml", `
<stack>
  <name>navigation</name>
  <version>1.6.0</version>
  <license>BSD</license>
  <depend stack="geometry"/>
</stack>`)

	adapter := NewManifestXMLAdapter()
	m, err := adapter.Parse(dir, types.KindStack)
	require.NoError(t, err)
	assert.Equal(t, "navigation", m.Name)
	assert.Equal(t, "1.6.0", m.Version)
	assert.Equal(t, []string{"geometry"}, m.Depends)
}

func TestParsePrefersPackageXMLOverLegacy(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "package.xml", "<package><name>modern</name></package>")
	writeManifest(t, dir, "manifest.xml", "<package><license>BSD</license></package>")

	adapter := NewManifestXMLAdapter()
	m, err := adapter.Parse(dir, types.KindPackage)
	require.NoError(t, err)
	assert.Equal(t, "modern", m.Name)
}

func TestParseMissingManifestIsNotFound(t *testing.T) {
	adapter := NewManifestXMLAdapter()
	_, err := adapter.Parse(t.TempDir(), types.KindPackage)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestParseMalformedManifestIsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "package.xml", "<package><name>oops")

	adapter := NewManifestXMLAdapter()
	_, err := adapter.Parse(dir, types.KindPackage)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestPeekReadsNameAndMetapackage(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "package.xml",
		"<package><name>ros_base</name><export><metapackage/></export></package>")

	adapter := NewManifestXMLAdapter()
	name, metapackage, err := adapter.Peek(path)
	require.NoError(t, err)
	assert.Equal(t, "ros_base", name)
	assert.True(t, metapackage)
}

func TestParseCacheInvalidatedByModTime(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "package.xml", "<package><name>first</name></package>")

	adapter := NewManifestXMLAdapter()
	m, err := adapter.Parse(dir, types.KindPackage)
	require.NoError(t, err)
	require.Equal(t, "first", m.Name)

	require.NoError(t, os.WriteFile(path, []byte("<package><name>second</name></package>"), 0644))
	// Force a distinct modification time regardless of clock
	// granularity.
	bumped := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, bumped, bumped))

	m, err = adapter.Parse(dir, types.KindPackage)
	require.NoError(t, err)
	assert.Equal(t, "second", m.Name)
}
