package app

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"rosindex/internal/core"
	"rosindex/internal/types"
)

// ListRequest selects which resource kind to enumerate.
type ListRequest struct {
	RosPaths []string
	Kind     types.ManifestKind
}

func (s Service) List(ctx context.Context, req ListRequest) ([]string, error) {
	if req.Kind == types.KindStack {
		ix, err := s.stackIndex(req.RosPaths)
		if err != nil {
			return nil, err
		}
		return ix.List(ctx), nil
	}
	ix, err := s.packageIndex(req.RosPaths)
	if err != nil {
		return nil, err
	}
	return ix.List(ctx), nil
}

type FindRequest struct {
	Name     string
	RosPaths []string
	Kind     types.ManifestKind
}

func (s Service) Find(ctx context.Context, req FindRequest) (string, error) {
	assert.NotEmpty(ctx, req.Name, "resource name must be set")
	if req.Kind == types.KindStack {
		ix, err := s.stackIndex(req.RosPaths)
		if err != nil {
			return "", err
		}
		return ix.GetPath(ctx, req.Name)
	}
	ix, err := s.packageIndex(req.RosPaths)
	if err != nil {
		return "", err
	}
	return ix.GetPath(ctx, req.Name)
}

type DependsRequest struct {
	Name     string
	RosPaths []string
	Implicit bool

	// Reverse flips the query to "who depends on Name".
	Reverse bool
}

func (s Service) Depends(ctx context.Context, req DependsRequest) ([]string, error) {
	assert.NotEmpty(ctx, req.Name, "package name must be set")
	ix, err := s.packageIndex(req.RosPaths)
	if err != nil {
		return nil, err
	}
	if req.Reverse {
		return ix.GetDependsOn(ctx, req.Name, req.Implicit), nil
	}
	return ix.GetDepends(ctx, req.Name, req.Implicit)
}

type RosdepsRequest struct {
	Name     string
	RosPaths []string
	Implicit bool
}

func (s Service) Rosdeps(ctx context.Context, req RosdepsRequest) ([]string, error) {
	assert.NotEmpty(ctx, req.Name, "package name must be set")
	ix, err := s.packageIndex(req.RosPaths)
	if err != nil {
		return nil, err
	}
	return ix.GetRosdeps(ctx, req.Name, req.Implicit)
}

type StackOfRequest struct {
	Name     string
	RosPaths []string
}

func (s Service) StackOf(ctx context.Context, req StackOfRequest) (string, error) {
	assert.NotEmpty(ctx, req.Name, "package name must be set")
	ix, err := s.packageIndex(req.RosPaths)
	if err != nil {
		return "", err
	}
	return ix.StackOf(ctx, req.Name)
}

type StackPackagesRequest struct {
	Stack    string
	RosPaths []string
}

func (s Service) StackPackages(ctx context.Context, req StackPackagesRequest) ([]string, error) {
	assert.NotEmpty(ctx, req.Stack, "stack name must be set")
	ix, err := s.stackIndex(req.RosPaths)
	if err != nil {
		return nil, err
	}
	return ix.PackagesOf(ctx, req.Stack)
}

type StackVersionRequest struct {
	Stack    string
	RosPaths []string
}

func (s Service) StackVersion(ctx context.Context, req StackVersionRequest) (string, error) {
	assert.NotEmpty(ctx, req.Stack, "stack name must be set")
	ix, err := s.stackIndex(req.RosPaths)
	if err != nil {
		return "", err
	}
	return ix.GetStackVersion(ctx, req.Stack)
}

type ExpandRequest struct {
	Names    []string
	RosPaths []string
}

type ExpandResult struct {
	Packages   []string
	Unresolved []string
}

func (s Service) Expand(ctx context.Context, req ExpandRequest) (ExpandResult, error) {
	packages, err := s.packageIndex(req.RosPaths)
	if err != nil {
		return ExpandResult{}, err
	}
	stacks, err := s.stackIndex(req.RosPaths)
	if err != nil {
		return ExpandResult{}, err
	}
	valid, unresolved := core.ExpandToPackages(ctx, req.Names, packages, stacks)
	return ExpandResult{Packages: valid, Unresolved: unresolved}, nil
}

type LicensesRequest struct {
	Name           string
	RosPaths       []string
	Implicit       bool
	GroupByLicense bool
	IncludeSystem  bool

	// WriteReport persists the mapping through the report port.
	WriteReport bool
}

type LicensesResult struct {
	Groups map[string][]string

	// ReportPath is set when a report file was written.
	ReportPath string
}

func (s Service) Licenses(ctx context.Context, req LicensesRequest) (LicensesResult, error) {
	assert.NotEmpty(ctx, req.Name, "package name must be set")
	ix, err := s.packageIndex(req.RosPaths)
	if err != nil {
		return LicensesResult{}, err
	}
	groups, err := ix.GetLicenses(ctx, req.Name, core.LicenseQuery{
		Implicit:       req.Implicit,
		GroupByLicense: req.GroupByLicense,
		IncludeSystem:  req.IncludeSystem,
	})
	if err != nil {
		return LicensesResult{}, err
	}
	result := LicensesResult{Groups: groups}
	if req.WriteReport {
		manifest, err := ix.GetManifest(ctx, req.Name)
		if err != nil {
			return LicensesResult{}, err
		}
		path, err := s.Reports.Write(req.Name, manifest.Version, groups)
		if err != nil {
			return LicensesResult{}, err
		}
		result.ReportPath = path
	}
	return result, nil
}
