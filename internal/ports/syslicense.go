package ports

// SystemLicensePort looks up license strings for system packages
// (rosdep keys) outside the source tree, e.g. from the dpkg database.
type SystemLicensePort interface {
	// Licenses returns a name->license mapping for the requested
	// packages. Packages that cannot be found are simply absent from
	// the result; callers substitute their own sentinel.
	Licenses(names []string) (map[string]string, error)
}
