// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered overlays,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/scan"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Registry resolves scanner names in config keys.
	// Defaults to scan.DefaultRegistry.
	Registry *scan.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by layering all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (DOCMODEL_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.docmodel.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/docmodel/config.yaml)
//  6. System config (/etc/docmodel/config.yaml)
//  7. Defaults
//
// Each file is decoded over the configuration built so far, so keys absent
// from a file keep their lower-precedence value.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = scan.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		if err := overlayFile(cfg, layer.path); err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeScannerKeys(cfg, registry, result)

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// overlayFile decodes the config file at path over cfg.
func overlayFile(cfg *config.Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	switch {
	case IsTOMLConfig(path):
		err = cfg.OverlayTOML(content)
	case IsYAMLConfig(path):
		err = cfg.OverlayYAML(content)
	default:
		return fmt.Errorf("unsupported config file extension: %s", path)
	}
	if err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	return nil
}

// normalizeScannerKeys converts scanner names to canonical IDs in the config,
// so "functions" and "SCN001" configure the same scanner. When both spellings
// are present the name wins, since names are the documented form.
func normalizeScannerKeys(cfg *config.Config, registry *scan.Registry, result *LoadResult) {
	if len(cfg.Scanners) == 0 {
		return
	}

	normalized := make(map[string]config.ScannerConfig, len(cfg.Scanners))
	seenIDs := make(map[string]string)

	for _, key := range sortedKeys(cfg.Scanners) {
		scannerCfg := cfg.Scanners[key]
		canonicalID, found := registry.CanonicalID(key)
		if !found {
			normalized[key] = scannerCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate scanner configuration: %q and %q both refer to %s; using %q",
					originalKey, key, canonicalID, key))
		}
		seenIDs[canonicalID] = key
		normalized[canonicalID] = scannerCfg
	}

	cfg.Scanners = normalized
}
