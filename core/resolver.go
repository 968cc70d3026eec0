package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sizegate/sizegate/internal/contract"
)

// scriptExtensions are the file types picked up by distribution-folder scans.
var scriptExtensions = []string{".js", ".mjs", ".cjs"}

// FileSet holds the resolved paths for one component, partitioned into the
// three disjoint variant groups. Partitioning is a pure function of filename
// suffix, not content.
type FileSet struct {
	Primary []string // files ending with the entry filename
	Runtime []string // files ending with the runtime filename
	Other   []string // everything else
}

// All returns every file in the set.
func (fs *FileSet) All() []string {
	all := make([]string, 0, len(fs.Primary)+len(fs.Runtime)+len(fs.Other))
	all = append(all, fs.Primary...)
	all = append(all, fs.Runtime...)
	all = append(all, fs.Other...)
	return all
}

// Resolver expands include/exclude glob patterns into deduplicated file sets.
type Resolver struct {
	fs contract.FileSystem
}

// NewResolver creates a Resolver on top of the given filesystem.
func NewResolver(fs contract.FileSystem) *Resolver {
	return &Resolver{fs: fs}
}

// Resolve expands every include pattern, unions the matches, and subtracts
// everything matched by the exclude patterns. The result has no duplicates;
// it is returned sorted only so runs are reproducible — callers must not
// depend on ordering.
func (r *Resolver) Resolve(include, exclude []string) ([]string, error) {
	included := make(map[string]struct{})
	for _, pattern := range include {
		matches, err := r.fs.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q failed: %w", pattern, err)
		}
		for _, m := range matches {
			included[m] = struct{}{}
		}
	}

	for _, pattern := range exclude {
		matches, err := r.fs.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q failed: %w", pattern, err)
		}
		for _, m := range matches {
			delete(included, m)
		}
	}

	paths := make([]string, 0, len(included))
	for p := range included {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// ResolveComponent resolves one component's file set. Include-mode components
// land entirely in the Primary group; folder-scan components are partitioned
// by filename suffix into Primary/Runtime/Other.
//
// Result keys derived from these groups: include-mode uses the bare component
// name; folder-scan uses <name>/<entryFilename> for the primary variant,
// <name>/<runtimeFilename> for primary+runtime, and the bare name for the
// full bundle. A component literally named "X/index.js" can therefore alias a
// variant key of a component named "X"; that is an accepted naming constraint.
func (r *Resolver) ResolveComponent(cfg *contract.Config, comp *contract.ComponentConfig) (*FileSet, error) {
	excludes := make([]string, 0, len(cfg.GlobalExcludes)+len(comp.Exclude))
	excludes = append(excludes, cfg.GlobalExcludes...)
	excludes = append(excludes, comp.Exclude...)

	if !comp.FolderScan() {
		paths, err := r.Resolve(comp.Include, excludes)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", comp.Name, err)
		}
		return &FileSet{Primary: paths}, nil
	}

	exists, err := r.fs.DirExists(comp.DistFolderLocation)
	if err != nil {
		return nil, fmt.Errorf("component %q: cannot stat distribution folder %q: %w", comp.Name, comp.DistFolderLocation, err)
	}
	if !exists {
		return nil, fmt.Errorf("component %q: distribution folder %q does not exist", comp.Name, comp.DistFolderLocation)
	}

	// Glob patterns always use forward slashes, independent of the host OS.
	root := strings.TrimSuffix(comp.DistFolderLocation, "/")
	include := make([]string, 0, len(scriptExtensions))
	for _, ext := range scriptExtensions {
		include = append(include, root+"/**/*"+ext)
	}

	paths, err := r.Resolve(include, excludes)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", comp.Name, err)
	}

	set := &FileSet{}
	for _, p := range paths {
		switch {
		case strings.HasSuffix(p, cfg.EntryFilename):
			set.Primary = append(set.Primary, p)
		case strings.HasSuffix(p, cfg.RuntimeFilename):
			set.Runtime = append(set.Runtime, p)
		default:
			set.Other = append(set.Other, p)
		}
	}
	return set, nil
}
