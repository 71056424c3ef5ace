package adapters

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosindex/internal/ports"
	"rosindex/internal/types"
)

// ManifestXMLAdapter parses catkin package.xml files and legacy
// manifest.xml / stack.xml files. Parsed files are cached per path and
// invalidated by modification time.
type ManifestXMLAdapter struct {
	mu    sync.Mutex
	cache map[string]manifestCacheEntry
}

func NewManifestXMLAdapter() *ManifestXMLAdapter {
	return &ManifestXMLAdapter{cache: map[string]manifestCacheEntry{}}
}

type manifestCacheEntry struct {
	modTime  time.Time
	manifest types.Manifest
}

// packageXML models the catkin package.xml tags this tool reads
// (REP-140). Build-only dependency tags are ignored on purpose: the
// index tracks the runtime dependency graph.
type packageXML struct {
	Name       string         `xml:"name"`
	Version    string         `xml:"version"`
	Licenses   []string       `xml:"license"`
	Depend     []simpleDepend `xml:"depend"`
	RunDepend  []simpleDepend `xml:"run_depend"`
	ExecDepend []simpleDepend `xml:"exec_depend"`
	Export     exportSection  `xml:"export"`
}

type exportSection struct {
	Metapackage *struct{} `xml:"metapackage"`
}

type simpleDepend struct {
	Value string `xml:",chardata"`
}

// legacyManifestXML models the rosbuild-era manifest.xml and stack.xml
// files. Dependencies are attributes there, not element text.
type legacyManifestXML struct {
	Name     string         `xml:"name"`
	Version  string         `xml:"version"`
	Licenses []string       `xml:"license"`
	Depends  []legacyDepend `xml:"depend"`
	Rosdeps  []legacyRosdep `xml:"rosdep"`
}

type legacyDepend struct {
	Package string `xml:"package,attr"`
	Stack   string `xml:"stack,attr"`
	Value   string `xml:",chardata"`
}

type legacyRosdep struct {
	Name string `xml:"name,attr"`
}

// Parse reads the manifest of the requested kind from dir. A catkin
// package.xml wins over legacy markers when both are present.
func (a *ManifestXMLAdapter) Parse(dir string, kind types.ManifestKind) (types.Manifest, error) {
	packagePath := filepath.Join(dir, types.PackageFile)
	if _, err := os.Stat(packagePath); err == nil {
		return a.load(packagePath, parseCatkin)
	}
	legacyPath := filepath.Join(dir, types.MarkerFor(kind))
	m, err := a.load(legacyPath, parseLegacy)
	if err != nil {
		return types.Manifest{}, err
	}
	if m.Name == "" {
		// Legacy package manifests carry no name tag; the directory
		// names the resource.
		m.Name = filepath.Base(dir)
	}
	return m, nil
}

// Peek reads just the resource name and metapackage flag of a
// package.xml, for crawl-time classification.
func (a *ManifestXMLAdapter) Peek(path string) (string, bool, error) {
	m, err := a.load(path, parseCatkin)
	if err != nil {
		return "", false, err
	}
	return m.Name, m.Metapackage, nil
}

func (a *ManifestXMLAdapter) load(path string, parse func([]byte) (types.Manifest, error)) (types.Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read manifest " + path).
			WithCause(err)
	}
	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		a.mu.Unlock()
		return entry.manifest, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read manifest " + path).
			WithCause(err)
	}
	m, err := parse(content)
	if err != nil {
		return types.Manifest{}, types.InvalidManifest(path, err)
	}

	a.mu.Lock()
	a.cache[path] = manifestCacheEntry{modTime: info.ModTime(), manifest: m}
	a.mu.Unlock()
	return m, nil
}

func parseCatkin(content []byte) (types.Manifest, error) {
	var pkg packageXML
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return types.Manifest{}, err
	}
	m := types.Manifest{
		Name:        strings.TrimSpace(pkg.Name),
		Version:     strings.TrimSpace(pkg.Version),
		Metapackage: pkg.Export.Metapackage != nil,
		Catkin:      true,
	}
	for _, license := range pkg.Licenses {
		if value := strings.TrimSpace(license); value != "" {
			m.Licenses = append(m.Licenses, value)
		}
	}
	seen := map[string]struct{}{}
	for _, group := range [][]simpleDepend{pkg.Depend, pkg.RunDepend, pkg.ExecDepend} {
		for _, dep := range group {
			value := strings.TrimSpace(dep.Value)
			if value == "" {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			m.Depends = append(m.Depends, value)
		}
	}
	return m, nil
}

func parseLegacy(content []byte) (types.Manifest, error) {
	var pkg legacyManifestXML
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return types.Manifest{}, err
	}
	m := types.Manifest{
		Name:    strings.TrimSpace(pkg.Name),
		Version: strings.TrimSpace(pkg.Version),
	}
	for _, license := range pkg.Licenses {
		if value := strings.TrimSpace(license); value != "" {
			m.Licenses = append(m.Licenses, value)
		}
	}
	for _, dep := range pkg.Depends {
		name := strings.TrimSpace(dep.Package)
		if name == "" {
			name = strings.TrimSpace(dep.Stack)
		}
		if name == "" {
			name = strings.TrimSpace(dep.Value)
		}
		if name != "" {
			m.Depends = append(m.Depends, name)
		}
	}
	for _, dep := range pkg.Rosdeps {
		if name := strings.TrimSpace(dep.Name); name != "" {
			m.Rosdeps = append(m.Rosdeps, name)
		}
	}
	return m, nil
}

var _ ports.ManifestParserPort = (*ManifestXMLAdapter)(nil)
