package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rosindex/internal/ports"
	"rosindex/internal/shared"
)

// LicenseReportAdapter persists license aggregation results as yaml
// files named licenses_<pkg>-<version>.yml, and diffs two such reports.
type LicenseReportAdapter struct {
	Dir string
}

func NewLicenseReportAdapter(dir string) LicenseReportAdapter {
	return LicenseReportAdapter{Dir: dir}
}

func (a LicenseReportAdapter) Write(pkg string, version string, groups map[string][]string) (string, error) {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	path := filepath.Join(a.Dir, fmt.Sprintf("licenses_%s-%s.yml", pkg, version))

	// Emit keys in sorted order so reports diff cleanly between runs.
	doc := yaml.Node{Kind: yaml.MappingNode}
	for _, key := range shared.SortedKeys(groups) {
		members := append([]string(nil), groups[key]...)
		sort.Strings(members)
		var value yaml.Node
		if err := value.Encode(members); err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode license report").
				WithCause(err)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&value)
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode license report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write license report").
			WithCause(err)
	}
	return path, nil
}

// Compare returns the group keys present in the report at pathA but
// missing from the report at pathB, sorted.
func (a LicenseReportAdapter) Compare(pathA string, pathB string) ([]string, error) {
	groupsA, err := readReport(pathA)
	if err != nil {
		return nil, err
	}
	groupsB, err := readReport(pathB)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, key := range shared.SortedKeys(groupsA) {
		if _, ok := groupsB[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

func readReport(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("license report not found: " + path).
			WithCause(err)
	}
	var groups map[string][]string
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse license report: " + path).
			WithCause(err)
	}
	return groups, nil
}

var _ ports.LicenseReportPort = LicenseReportAdapter{}
