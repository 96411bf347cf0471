// Package runner analyzes many files concurrently.
package runner

import (
	"maps"
	"slices"

	"github.com/yaklabco/docmodel/pkg/config"
)

// Options controls discovery and analysis of multiple files.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// to analyze. Defaults to the keys of Config.Extensions.
	Extensions []string

	// IncludeGlobs are glob patterns relative to WorkingDir. Empty means
	// include everything matching Extensions.
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs limits concurrent workers. 0 or negative means GOMAXPROCS.
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the extensions analyzed by default.
func DefaultExtensions() []string {
	return slices.Sorted(maps.Keys(config.DefaultExtensions()))
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	if o.Config != nil && len(o.Config.Extensions) > 0 {
		return slices.Sorted(maps.Keys(o.Config.Extensions))
	}
	return DefaultExtensions()
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
