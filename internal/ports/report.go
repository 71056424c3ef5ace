package ports

// LicenseReportPort persists and compares license report mappings.
type LicenseReportPort interface {
	// Write stores the grouped license mapping for a package version and
	// returns the path of the written report.
	Write(pkg string, version string, groups map[string][]string) (string, error)

	// Compare reads two reports and returns the group keys present in
	// the first but missing from the second.
	Compare(pathA string, pathB string) ([]string, error)
}
