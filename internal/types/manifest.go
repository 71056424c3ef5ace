package types

// ManifestKind selects which marker file a crawl or parse targets.
type ManifestKind string

const (
	// KindPackage targets legacy package manifests (manifest.xml) and
	// catkin package.xml files that are not metapackages.
	KindPackage ManifestKind = "package"
	// KindStack targets legacy stack manifests (stack.xml) and catkin
	// metapackages.
	KindStack ManifestKind = "stack"
)

// Marker filenames recognized on disk. These names are a fixed external
// contract shared with the ROS build tools.
const (
	ManifestFile = "manifest.xml"
	PackageFile  = "package.xml"
	StackFile    = "stack.xml"

	CatkinIgnoreFile = "CATKIN_IGNORE"
	NoSubdirsFile    = "rospack_nosubdirs"

	CMakeListsFile = "CMakeLists.txt"
)

// MarkerFor returns the legacy marker filename for a manifest kind.
func MarkerFor(kind ManifestKind) string {
	if kind == KindStack {
		return StackFile
	}
	return ManifestFile
}

// Manifest is the parsed metadata of a single resource. Dependency and
// rosdep entries are plain names; no version constraints are attached.
type Manifest struct {
	Name    string
	Version string

	// Licenses holds every declared license string. Manifests commonly
	// declare exactly one.
	Licenses []string

	// Depends lists direct source dependencies (package or stack names).
	Depends []string

	// Rosdeps lists system dependency keys resolved outside this tool.
	Rosdeps []string

	// Metapackage is true for package.xml files carrying the
	// <export><metapackage/> marker. Such packages are indexed as stacks.
	Metapackage bool

	// Catkin is true when the manifest came from a package.xml rather
	// than a legacy manifest.xml/stack.xml.
	Catkin bool
}

// License returns the first declared license, or an empty string.
func (m Manifest) License() string {
	if len(m.Licenses) == 0 {
		return ""
	}
	return m.Licenses[0]
}

// HasDepend reports whether name appears among the direct dependencies.
func (m Manifest) HasDepend(name string) bool {
	for _, dep := range m.Depends {
		if dep == name {
			return true
		}
	}
	return false
}

// LicenseNotFound is the sentinel license value recorded for packages
// whose license could not be determined.
const LicenseNotFound = "license_not_found"
