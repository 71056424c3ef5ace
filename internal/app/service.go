package app

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosindex/internal/adapters"
	"rosindex/internal/core"
	"rosindex/internal/ports"
)

// Service wires the index core to its collaborator ports. It owns the
// instance registry, so repeated queries over the same search paths
// share one set of caches.
type Service struct {
	Parser         ports.ManifestParserPort
	SearchPath     ports.SearchPathPort
	SystemLicenses ports.SystemLicensePort
	Reports        ports.LicenseReportPort
	Registry       *core.Registry
}

func NewService(reportDir string) Service {
	return Service{
		Parser:         adapters.NewManifestXMLAdapter(),
		SearchPath:     adapters.NewROSEnvAdapter(),
		SystemLicenses: adapters.NewDpkgLicenseAdapter(),
		Reports:        adapters.NewLicenseReportAdapter(reportDir),
		Registry:       core.NewRegistry(),
	}
}

// searchPaths returns the explicit override when present, else the
// paths from the environment port. An empty result is an error: every
// query needs at least one directory to search.
func (s Service) searchPaths(override []string) ([]string, error) {
	paths := override
	if len(paths) == 0 {
		var err error
		paths, err = s.SearchPath.SearchPaths()
		if err != nil {
			return nil, err
		}
	}
	if len(paths) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no search paths configured; set ROS_PACKAGE_PATH or pass --ros-path")
	}
	return paths, nil
}

func (s Service) packageIndex(override []string) (*core.PackageIndex, error) {
	paths, err := s.searchPaths(override)
	if err != nil {
		return nil, err
	}
	ix := s.Registry.Package(paths, s.Parser)
	ix.SystemLicenses = s.SystemLicenses
	return ix, nil
}

func (s Service) stackIndex(override []string) (*core.StackIndex, error) {
	paths, err := s.searchPaths(override)
	if err != nil {
		return nil, err
	}
	return s.Registry.Stack(paths, s.Parser), nil
}
