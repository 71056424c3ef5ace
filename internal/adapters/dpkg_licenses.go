package adapters

import (
	"os/exec"
	"strings"

	debversion "github.com/knqyf263/go-deb-version"

	"rosindex/internal/ports"
	"rosindex/internal/shared"
)

// dpkg-licenses emits one semicolon-delimited line per installed
// package: status;name;version;arch;description;license.
const dpkgLineDelimiter = ";"

// DpkgLicenseAdapter looks up licenses of installed Debian packages by
// running the dpkg-licenses helper script and parsing its output. When
// dpkg reports several entries for the same package, the entry with the
// highest Debian version wins.
type DpkgLicenseAdapter struct {
	// Command is the helper invocation; defaults to ["dpkg-licenses"].
	Command []string

	run func(name string, args ...string) ([]byte, error)
}

func NewDpkgLicenseAdapter() *DpkgLicenseAdapter {
	return &DpkgLicenseAdapter{
		Command: []string{"dpkg-licenses"},
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
	}
}

func (a *DpkgLicenseAdapter) Licenses(names []string) (map[string]string, error) {
	wanted := map[string]struct{}{}
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	output, err := a.run(a.Command[0], a.Command[1:]...)
	if err != nil {
		return nil, shared.CommandError(output, err)
	}

	licenses := map[string]string{}
	versions := map[string]string{}
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Split(line, dpkgLineDelimiter)
		if len(fields) < 6 {
			continue
		}
		name := strings.TrimSpace(fields[1])
		if name == "" {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[name]; !ok {
				continue
			}
		}
		version := strings.TrimSpace(fields[2])
		license := strings.TrimSpace(fields[5])
		if prev, ok := versions[name]; ok && !newerDebVersion(version, prev) {
			continue
		}
		versions[name] = version
		licenses[name] = license
	}
	return licenses, nil
}

// newerDebVersion reports whether candidate is a strictly newer Debian
// version than current. Unparseable versions never displace a parsed
// one.
func newerDebVersion(candidate, current string) bool {
	nextVersion, err := debversion.NewVersion(candidate)
	if err != nil {
		return false
	}
	prevVersion, err := debversion.NewVersion(current)
	if err != nil {
		return true
	}
	return nextVersion.GreaterThan(prevVersion)
}

var _ ports.SystemLicensePort = (*DpkgLicenseAdapter)(nil)
