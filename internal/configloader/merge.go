package configloader

import (
	"maps"

	"github.com/yaklabco/docmodel/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
//
// DetectLanguage is not merged: false cannot be told apart from unset. File
// layers set it by overlay decoding and the environment sets it directly.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.MinSeverity != "" {
		result.MinSeverity = override.MinSeverity
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.Extensions = mergeExtensions(base.Extensions, override.Extensions)
	result.Scanners = mergeScanners(base.Scanners, override.Scanners)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableScanners != nil {
		result.EnableScanners = override.EnableScanners
	}
	if override.DisableScanners != nil {
		result.DisableScanners = override.DisableScanners
	}
	if override.Kinds != nil {
		result.Kinds = override.Kinds
	}

	return &result
}

func mergeExtensions(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// mergeScanners performs deep merge of scanner configurations.
func mergeScanners(base, override map[string]config.ScannerConfig) map[string]config.ScannerConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.ScannerConfig, len(base)+len(override))
	maps.Copy(result, base)
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeScannerConfig(existing, val)
		} else {
			result[key] = val
		}
	}
	return result
}

// mergeScannerConfig merges individual scanner configurations.
func mergeScannerConfig(base, override config.ScannerConfig) config.ScannerConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Options != nil {
		options := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(options, base.Options)
		maps.Copy(options, override.Options)
		result.Options = options
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
