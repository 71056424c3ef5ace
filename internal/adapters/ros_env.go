package adapters

import (
	"os"

	"rosindex/internal/ports"
	"rosindex/internal/shared"
)

// ROSEnvAdapter derives the ordered search-path list from the standard
// ROS environment variables: ROS_ROOT first, then every entry of
// ROS_PACKAGE_PATH in order.
type ROSEnvAdapter struct {
	// Getenv is swappable for tests; defaults to os.Getenv.
	Getenv func(string) string
}

func NewROSEnvAdapter() ROSEnvAdapter {
	return ROSEnvAdapter{Getenv: os.Getenv}
}

func (a ROSEnvAdapter) SearchPaths() ([]string, error) {
	var paths []string
	if root := a.Getenv("ROS_ROOT"); root != "" {
		paths = append(paths, root)
	}
	paths = append(paths, shared.SplitPathList(a.Getenv("ROS_PACKAGE_PATH"))...)
	return paths, nil
}

var _ ports.SearchPathPort = ROSEnvAdapter{}
